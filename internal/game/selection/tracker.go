// Package selection picks the next round variant, favouring the ones played
// least, and keeps the persisted play-count table.
package selection

import (
	"encoding/json"
	"fmt"
	"maps"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/zeusync/skirmish/internal/core/events/bus"
	"github.com/zeusync/skirmish/internal/core/observability/log"
	"github.com/zeusync/skirmish/internal/game/notify"
)

// Key is the store key the play-count table is saved under.
const Key = "round.played"

// Store persists the table as an opaque string.
type Store interface {
	Load(key string) (string, bool, error)
	Save(key, value string) error
}

type dataPoint struct {
	ID    int `json:"id"`
	Count int `json:"count"`
}

type table struct {
	DataPoints []dataPoint `json:"dataPoints"`
}

// Tracker is the play-count table. Counts only change through Increment and
// Reset, and every change is saved before it is announced.
type Tracker struct {
	mu        sync.RWMutex
	store     Store
	counts    map[int]int
	publisher *notify.Publisher
	logger    log.Log
}

// NewTracker loads the table from store. A corrupt table is logged and
// replaced by an empty one.
func NewTracker(store Store, publisher *notify.Publisher, logger log.Log) (*Tracker, error) {
	t := &Tracker{
		store:     store,
		counts:    make(map[int]int),
		publisher: publisher,
		logger:    logger,
	}
	raw, ok, err := store.Load(Key)
	if err != nil {
		return nil, fmt.Errorf("selection: load play counts: %w", err)
	}
	if !ok {
		return t, nil
	}
	var tbl table
	if err := json.Unmarshal([]byte(raw), &tbl); err != nil {
		logger.Error("discarding unreadable play counts", log.Error(err))
		return t, nil
	}
	for _, dp := range tbl.DataPoints {
		t.counts[dp.ID] = dp.Count
	}
	return t, nil
}

func (t *Tracker) Count(id int) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.counts[id]
}

// Counts returns a copy of the table.
func (t *Tracker) Counts() map[int]int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return maps.Clone(t.counts)
}

// Increment adds one play for id, saves and announces it.
func (t *Tracker) Increment(id int) error {
	t.mu.Lock()
	t.counts[id]++
	count := t.counts[id]
	err := t.saveLocked()
	t.mu.Unlock()
	if err != nil {
		return err
	}
	t.publisher.Emit(notify.Played{Mode: id, Count: count})
	return nil
}

// Reset clears every count.
func (t *Tracker) Reset() error {
	t.mu.Lock()
	ids := make([]int, 0, len(t.counts))
	for id := range t.counts {
		ids = append(ids, id)
	}
	clear(t.counts)
	err := t.saveLocked()
	t.mu.Unlock()
	if err != nil {
		return err
	}
	sort.Ints(ids)
	for _, id := range ids {
		t.publisher.Emit(notify.Played{Mode: id})
	}
	return nil
}

// Watch counts a play every time a round is activated.
func (t *Tracker) Watch(subs *bus.Subscriptions) error {
	return notify.On(subs, func(ev notify.RoundActivated) {
		if err := t.Increment(ev.Mode); err != nil {
			t.logger.Error("failed to record play", log.Int("mode", ev.Mode), log.Error(err))
		}
	})
}

func (t *Tracker) saveLocked() error {
	tbl := table{DataPoints: make([]dataPoint, 0, len(t.counts))}
	for id, count := range t.counts {
		tbl.DataPoints = append(tbl.DataPoints, dataPoint{ID: id, Count: count})
	}
	sort.Slice(tbl.DataPoints, func(i, j int) bool { return tbl.DataPoints[i].ID < tbl.DataPoints[j].ID })

	raw, err := json.Marshal(tbl)
	if err != nil {
		return fmt.Errorf("selection: encode play counts: %w", err)
	}
	if err := t.store.Save(Key, string(raw)); err != nil {
		return fmt.Errorf("selection: save play counts: %w", err)
	}
	return nil
}

// LeastPlayed returns the variants whose play count equals the minimum over
// available, keeping their order.
func LeastPlayed[V any](t *Tracker, available []V, id func(V) int) []V {
	if len(available) == 0 {
		return nil
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	least := t.counts[id(available[0])]
	for _, v := range available[1:] {
		least = min(least, t.counts[id(v)])
	}
	out := make([]V, 0, len(available))
	for _, v := range available {
		if t.counts[id(v)] == least {
			out = append(out, v)
		}
	}
	return out
}

// Choose picks uniformly among candidates.
func Choose[V any](rng *rand.Rand, candidates []V) (V, error) {
	var zero V
	if len(candidates) == 0 {
		return zero, ErrNoVariants
	}
	return candidates[rng.IntN(len(candidates))], nil
}

// Next is LeastPlayed followed by Choose.
func Next[V any](t *Tracker, rng *rand.Rand, available []V, id func(V) int) (V, error) {
	return Choose(rng, LeastPlayed(t, available, id))
}
