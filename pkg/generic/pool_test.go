package generic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type box struct{ v int }

func TestPoolReusesValues(t *testing.T) {
	p := NewPool(func() *box { return &box{} }, func(b *box) { b.v = 0 })

	a := p.Get()
	a.v = 7
	p.Put(a)
	assert.Equal(t, 1, p.Idle())

	b := p.Get()
	assert.Same(t, a, b)
	assert.Zero(t, b.v)
	assert.Equal(t, 1, p.Created())

	_ = p.Get()
	assert.Equal(t, 2, p.Created())
}

func TestHotPool(t *testing.T) {
	p := NewHotPool(func() *box { return &box{} }, nil, 3)
	assert.Equal(t, 3, p.Idle())
	p.Get()
	p.Get()
	assert.Equal(t, 1, p.Idle())
	assert.Equal(t, 3, p.Created())
}
