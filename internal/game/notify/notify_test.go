package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/skirmish/internal/core/events/bus"
	"github.com/zeusync/skirmish/internal/core/observability/log"
	"github.com/zeusync/skirmish/internal/game/roster"
)

func TestOnDeliversTypedPayload(t *testing.T) {
	b := bus.New()
	pub := NewPublisher(b, "test", log.NewNop())
	subs := bus.NewSubscriptions(b)

	var got []Hit
	require.NoError(t, On(subs, func(h Hit) { got = append(got, h) }))

	pub.Emit(Hit{Source: 1, Target: 2})
	pub.Emit(Dashed{Participant: 1})

	require.Len(t, got, 1)
	assert.Equal(t, roster.ParticipantID(2), got[0].Target)

	require.NoError(t, subs.CancelAll())
	pub.Emit(Hit{Source: 3, Target: 4})
	assert.Len(t, got, 1)
}

func TestOnRejectsForeignPayload(t *testing.T) {
	b := bus.New()
	subs := bus.NewSubscriptions(b)
	called := false
	require.NoError(t, On(subs, func(Hit) { called = true }))

	err := b.Publish(bus.NewEvent(TypeParticipantHit, "test", "not a hit"))
	assert.Error(t, err)
	assert.False(t, called)
}

func TestWithSourceSharesBus(t *testing.T) {
	b := bus.New()
	var sources []string
	_, err := b.SubscribeAll(func(ev bus.Event) error {
		sources = append(sources, ev.Source())
		return nil
	})
	require.NoError(t, err)

	pub := NewPublisher(b, "players", log.NewNop())
	pub.WithSource("horde").Emit(Shot{Participant: 1})
	pub.Emit(Shot{Participant: 2})

	assert.Equal(t, []string{"horde", "players"}, sources)
	assert.Same(t, b, pub.Bus())
}
