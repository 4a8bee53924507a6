package round

import (
	"slices"

	"github.com/zeusync/skirmish/internal/game/roster"
)

const DefaultLaserDamage = 1.0

// Rules are the gameplay values a round may override. They are rebuilt from
// DefaultRules for every round, so overrides never leak into the next one.
type Rules struct {
	LaserDamage         float64
	AllowChargingLasers bool
	// ChargingWhitelist may charge even while AllowChargingLasers is false.
	ChargingWhitelist []roster.ParticipantID
	ShowShields       bool
	// DashAttackAllowed decides whether an AI participant may dash-attack.
	// Nil allows everyone.
	DashAttackAllowed func(attacker roster.ParticipantID) bool
}

func DefaultRules() Rules {
	return Rules{
		LaserDamage:         DefaultLaserDamage,
		AllowChargingLasers: true,
		ShowShields:         true,
	}
}

func (r Rules) CanCharge(id roster.ParticipantID) bool {
	return r.AllowChargingLasers || slices.Contains(r.ChargingWhitelist, id)
}

func (r Rules) CanDashAttack(attacker roster.ParticipantID) bool {
	return r.DashAttackAllowed == nil || r.DashAttackAllowed(attacker)
}
