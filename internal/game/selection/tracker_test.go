package selection

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zeusync/skirmish/internal/core/events/bus"
	"github.com/zeusync/skirmish/internal/core/observability/log"
	"github.com/zeusync/skirmish/internal/game/notify"
	"github.com/zeusync/skirmish/internal/storage"
)

type variant struct {
	id   int
	name string
}

func variantID(v variant) int { return v.id }

var (
	modeA = variant{1, "A"}
	modeB = variant{2, "B"}
	modeC = variant{3, "C"}
	all   = []variant{modeA, modeB, modeC}
)

func newTracker(t *testing.T, store Store) (*Tracker, bus.EventBus) {
	t.Helper()
	b := bus.New()
	tr, err := NewTracker(store, notify.NewPublisher(b, "selection", log.NewNop()), log.NewNop())
	require.NoError(t, err)
	return tr, b
}

func TestLeastPlayedFiltersToMinimum(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Save(Key, `{"dataPoints":[{"id":1,"count":2},{"id":3,"count":1}]}`))
	tr, _ := newTracker(t, store)

	assert.Equal(t, []variant{modeB}, LeastPlayed(tr, all, variantID))
	rng := rand.New(rand.NewPCG(7, 7))
	for i := 0; i < 20; i++ {
		v, err := Next(tr, rng, all, variantID)
		require.NoError(t, err)
		assert.Equal(t, modeB, v)
	}

	require.NoError(t, tr.Increment(modeB.id))
	assert.Equal(t, map[int]int{1: 2, 2: 1, 3: 1}, tr.Counts())
	assert.Equal(t, []variant{modeB, modeC}, LeastPlayed(tr, all, variantID))

	seen := map[variant]int{}
	for i := 0; i < 200; i++ {
		v, err := Next(tr, rng, all, variantID)
		require.NoError(t, err)
		seen[v]++
	}
	assert.Zero(t, seen[modeA])
	assert.Greater(t, seen[modeB], 50)
	assert.Greater(t, seen[modeC], 50)
}

func TestSelectionIsDeterministicForFixedSeed(t *testing.T) {
	tr, _ := newTracker(t, storage.NewMemoryStore())
	pick := func() []variant {
		rng := rand.New(rand.NewPCG(42, 1))
		out := make([]variant, 10)
		for i := range out {
			out[i], _ = Next(tr, rng, all, variantID)
		}
		return out
	}
	assert.Equal(t, pick(), pick())
}

func TestIncrementPersistsAndNotifies(t *testing.T) {
	store := storage.NewMemoryStore()
	tr, b := newTracker(t, store)

	var played []notify.Played
	require.NoError(t, notify.On(bus.NewSubscriptions(b), func(p notify.Played) { played = append(played, p) }))

	require.NoError(t, tr.Increment(3))
	require.NoError(t, tr.Increment(1))
	require.NoError(t, tr.Increment(3))

	raw, ok, err := store.Load(Key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"dataPoints":[{"id":1,"count":1},{"id":3,"count":2}]}`, raw)
	assert.Equal(t, []notify.Played{{Mode: 3, Count: 1}, {Mode: 1, Count: 1}, {Mode: 3, Count: 2}}, played)

	reloaded, _ := newTracker(t, store)
	assert.Equal(t, 2, reloaded.Count(3))
}

func TestResetClearsCounts(t *testing.T) {
	store := storage.NewMemoryStore()
	tr, _ := newTracker(t, store)
	require.NoError(t, tr.Increment(1))
	require.NoError(t, tr.Increment(2))

	require.NoError(t, tr.Reset())
	assert.Empty(t, tr.Counts())

	raw, _, _ := store.Load(Key)
	assert.JSONEq(t, `{"dataPoints":[]}`, raw)
}

func TestWatchCountsActivations(t *testing.T) {
	tr, b := newTracker(t, storage.NewMemoryStore())
	subs := bus.NewSubscriptions(b)
	require.NoError(t, tr.Watch(subs))

	pub := notify.NewPublisher(b, "round", log.NewNop())
	pub.Emit(notify.RoundActivated{Round: 1, Mode: 2})
	pub.Emit(notify.RoundActivated{Round: 2, Mode: 2})
	assert.Equal(t, 2, tr.Count(2))

	require.NoError(t, subs.CancelAll())
	pub.Emit(notify.RoundActivated{Round: 3, Mode: 2})
	assert.Equal(t, 2, tr.Count(2))
}

func TestCorruptTableStartsEmpty(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Save(Key, "{not json"))
	core, logs := observer.New(zapcore.DebugLevel)
	tr, err := NewTracker(store, notify.NewPublisher(bus.New(), "selection", log.NewNop()),
		log.Wrap(zap.New(core), log.LevelDebug))
	require.NoError(t, err)

	assert.Empty(t, tr.Counts())
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

type failingStore struct{}

func (failingStore) Load(string) (string, bool, error) {
	return "", false, errors.New("disk gone")
}

func (failingStore) Save(string, string) error {
	return errors.New("disk gone")
}

func TestStoreFailures(t *testing.T) {
	_, err := NewTracker(failingStore{}, notify.NewPublisher(bus.New(), "s", log.NewNop()), log.NewNop())
	assert.Error(t, err)
}

func TestChooseEmpty(t *testing.T) {
	_, err := Choose[variant](rand.New(rand.NewPCG(1, 1)), nil)
	assert.ErrorIs(t, err, ErrNoVariants)
	assert.Nil(t, LeastPlayed(&Tracker{counts: map[int]int{}}, []variant(nil), variantID))
}
