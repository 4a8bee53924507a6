package arena

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slots(n int) []Slot {
	positions := make([]Vec3, n)
	for i := range positions {
		positions[i] = Vec3{X: float64(i)}
	}
	return toSlots(positions)
}

func TestSlotForWrapsIntoRange(t *testing.T) {
	for s := 1; s <= 6; s++ {
		list := slots(s)
		for idx := 0; idx < 20; idx++ {
			got := SlotFor(list, idx)
			assert.Equal(t, idx%s, got.Index, "slots=%d index=%d", s, idx)
			assert.GreaterOrEqual(t, got.Index, 0)
			assert.Less(t, got.Index, s)
		}
	}
}

func TestSlotForNegativeIndex(t *testing.T) {
	assert.Equal(t, 2, SlotFor(slots(3), -1).Index)
}

func TestSlotForPanicsWithoutSlots(t *testing.T) {
	assert.Panics(t, func() { SlotFor(nil, 0) })
}

func TestDisposedArenaIsEmpty(t *testing.T) {
	a := New("pit", []Vec3{{X: 1}}, []Vec3{{X: 2}, {X: 3}}, map[string]Area{"hill": {Radius: 2}})
	assert.Len(t, a.Slots(PlayerSlots), 1)
	assert.Len(t, a.Slots(AISlots), 2)
	_, ok := a.SpecialArea("hill")
	assert.True(t, ok)

	require.NoError(t, a.Err())
	a.Dispose()
	assert.ErrorIs(t, a.Err(), ErrDisposed)
	assert.Empty(t, a.Slots(PlayerSlots))
	_, ok = a.SpecialArea("hill")
	assert.False(t, ok)
}

type mapProvider map[string]*Arena

func (m mapProvider) Load(name string) (*Arena, error) {
	if a, ok := m[name]; ok {
		return a, nil
	}
	return nil, errors.New("missing")
}
func (m mapProvider) Names() []string { return nil }
func (mapProvider) AnimateIn(_ *Arena, f func()) { f() }
func (mapProvider) AnimateOut(_ *Arena, f func()) { f() }

func TestStageDisposesPreviousArena(t *testing.T) {
	first := New("a", []Vec3{{}}, nil, nil)
	second := New("b", []Vec3{{}, {}}, nil, nil)
	stage := NewStage(mapProvider{"a": first, "b": second})

	_, err := stage.Load("a")
	require.NoError(t, err)
	_, err = stage.Load("b")
	require.NoError(t, err)

	assert.True(t, first.Disposed())
	assert.Same(t, second, stage.Loaded())
	assert.Len(t, stage.Slots(PlayerSlots), 2)

	_, err = stage.Load("zzz")
	assert.Error(t, err)
	assert.Same(t, second, stage.Loaded())

	stage.Unload()
	assert.Nil(t, stage.Loaded())
	assert.Empty(t, stage.Slots(PlayerSlots))
}
