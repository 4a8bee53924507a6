package bus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testObserver struct {
	publishCount   int
	deliveredCount int
	lastErr        error
}

func (o *testObserver) OnPublish(_ string, _ Event) {
	o.publishCount++
}

func (o *testObserver) OnDelivered(_ string, handlers int, err error, _ int64) {
	o.deliveredCount += handlers
	o.lastErr = err
}

func TestBasicPublishSubscribe(t *testing.T) {
	b := New()
	var got []any
	_, err := b.Subscribe("test.event", func(e Event) error {
		got = append(got, e.Data())
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, b.Publish(NewEvent("test.event", "tester", 123)))
	require.NoError(t, b.Publish(NewEvent("other.event", "tester", 456)))

	assert.Equal(t, []any{123}, got)
}

func TestEachSubscriberReceivesExactlyOnce(t *testing.T) {
	b := New()
	counts := make([]int, 5)
	for i := range counts {
		_, err := b.Subscribe("removed", func(Event) error {
			counts[i]++
			return nil
		})
		require.NoError(t, err)
	}

	require.NoError(t, b.Publish(NewEvent("removed", "spawn", nil)))
	assert.Equal(t, []int{1, 1, 1, 1, 1}, counts)
}

func TestDeliveryFollowsSubscriptionOrder(t *testing.T) {
	b := New()
	var order []string
	_, _ = b.Subscribe("e", func(Event) error { order = append(order, "first"); return nil })
	_, _ = b.SubscribeAll(func(Event) error { order = append(order, "wildcard"); return nil })
	_, _ = b.Subscribe("e", func(Event) error { order = append(order, "second"); return nil })

	_ = b.Publish(NewEvent("e", "src", nil))
	assert.Equal(t, []string{"first", "second", "wildcard"}, order)
}

func TestCancelDuringDeliverySkipsLaterHandler(t *testing.T) {
	b := New()
	var second Subscription
	calls := 0
	_, _ = b.Subscribe("e", func(Event) error {
		calls++
		return second.Cancel()
	})
	second, _ = b.Subscribe("e", func(Event) error {
		calls += 100
		return nil
	})

	_ = b.Publish(NewEvent("e", "src", nil))
	assert.Equal(t, 1, calls)
	assert.False(t, second.IsActive())
	assert.Equal(t, 1, b.SubscriberCount("e"))
}

func TestPublishJoinsHandlerErrors(t *testing.T) {
	b := New()
	errA := errors.New("a")
	errB := errors.New("b")
	_, _ = b.Subscribe("x", func(Event) error { return errA })
	_, _ = b.Subscribe("x", func(Event) error { return errB })

	err := b.Publish(NewEvent("x", "src", nil))
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

func TestSubscribeRejectsBadInput(t *testing.T) {
	b := New()
	_, err := b.Subscribe("", func(Event) error { return nil })
	assert.ErrorIs(t, err, ErrInvalidEventType)
	_, err = b.Subscribe(Wildcard, func(Event) error { return nil })
	assert.ErrorIs(t, err, ErrInvalidEventType)
	_, err = b.Subscribe("x", nil)
	assert.ErrorIs(t, err, ErrNilHandler)
	assert.NoError(t, b.Unsubscribe(nil))
}

func TestObserverMetricsOptional(t *testing.T) {
	b := New()
	_, _ = b.Subscribe("e", func(Event) error { return nil })
	_ = b.Publish(NewEvent("e", "s", nil))
	assert.Zero(t, b.GetMetrics().Published)

	obs := &testObserver{}
	b.AddObserver(obs)
	_ = b.Publish(NewEvent("e", "s", nil))
	m := b.GetMetrics()
	assert.EqualValues(t, 1, m.Published)
	assert.EqualValues(t, 1, m.DeliveredHandlers)
	assert.EqualValues(t, 1, m.SubscribersActive)
	assert.Equal(t, 1, obs.publishCount)
	assert.Equal(t, 1, obs.deliveredCount)

	b.RemoveObserver(obs)
	_ = b.Publish(NewEvent("e", "s", nil))
	assert.Equal(t, 1, obs.publishCount)
}

func TestSubscriptionsCancelAll(t *testing.T) {
	b := New()
	set := NewSubscriptions(b)
	hits := 0
	require.NoError(t, set.Subscribe("a", func(Event) error { hits++; return nil }))
	require.NoError(t, set.Subscribe("b", func(Event) error { hits++; return nil }))
	assert.Equal(t, 2, set.Len())

	require.NoError(t, set.CancelAll())
	assert.Equal(t, 0, set.Len())
	assert.Equal(t, 0, b.SubscriberCount("a"))
	assert.Equal(t, 0, b.SubscriberCount("b"))

	_ = b.Publish(NewEvent("a", "s", nil))
	_ = b.Publish(NewEvent("b", "s", nil))
	assert.Equal(t, 0, hits)
}
