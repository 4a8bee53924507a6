// Package headless provides the display-side collaborators of a round for
// running without a renderer: an arena provider that builds arenas from
// configuration, a presenter that logs, and a driver that simulates play.
package headless

import (
	"fmt"
	"time"

	"github.com/zeusync/skirmish/internal/config"
	"github.com/zeusync/skirmish/internal/core/observability/log"
	"github.com/zeusync/skirmish/internal/core/schedule"
	"github.com/zeusync/skirmish/internal/game/arena"
)

// ArenaProvider builds arenas from their configured definitions. Animations
// take a fixed amount of scheduler time.
type ArenaProvider struct {
	defs    []config.ArenaConfig
	sched   *schedule.Scheduler
	animate time.Duration
	logger  log.Log
}

func NewArenaProvider(defs []config.ArenaConfig, sched *schedule.Scheduler, animate time.Duration, logger log.Log) *ArenaProvider {
	return &ArenaProvider{defs: defs, sched: sched, animate: animate, logger: logger}
}

func (p *ArenaProvider) Names() []string {
	names := make([]string, len(p.defs))
	for i, d := range p.defs {
		names[i] = d.Name
	}
	return names
}

func (p *ArenaProvider) Load(name string) (*arena.Arena, error) {
	for _, d := range p.defs {
		if d.Name == name {
			p.logger.Debug("arena loaded", log.String("arena", name))
			return d.Build(), nil
		}
	}
	return nil, fmt.Errorf("headless: unknown arena %q", name)
}

func (p *ArenaProvider) AnimateIn(a *arena.Arena, done func()) {
	p.after(done)
}

func (p *ArenaProvider) AnimateOut(a *arena.Arena, done func()) {
	p.after(done)
}

func (p *ArenaProvider) after(done func()) {
	if p.animate <= 0 {
		done()
		return
	}
	p.sched.After(p.animate, done)
}
