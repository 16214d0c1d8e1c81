package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultisetAddAndCount(t *testing.T) {
	var m Multiset[string]
	m.Add("a")
	m.Add("a")
	m.Add("b")

	assert.Equal(t, 2, m.Count("a"))
	assert.Equal(t, 1, m.Count("b"))
	assert.Equal(t, 0, m.Count("c"))
	assert.Equal(t, 3, m.Len())
}

func TestMultisetDiscardDropsZeroEntries(t *testing.T) {
	m := NewMultiset("a", "a")
	m.Discard("a")
	assert.Equal(t, 1, m.Count("a"))
	m.Discard("a")
	assert.Equal(t, 0, m.Count("a"))
	assert.True(t, m.Empty())

	// discarding an absent element is a no-op
	m.Discard("z")
	assert.True(t, m.Empty())
}

func TestMultisetContainsIsSubsetCheck(t *testing.T) {
	full := NewMultiset("a", "a", "b")
	assert.True(t, full.Contains(NewMultiset("a")))
	assert.True(t, full.Contains(NewMultiset("a", "a")))
	assert.False(t, full.Contains(NewMultiset("a", "a", "a")))
	assert.False(t, full.Contains(NewMultiset("c")))
}

func TestMultisetEqual(t *testing.T) {
	a := NewMultiset("a", "b", "b")
	b := NewMultiset("b", "a", "b")
	c := NewMultiset("a", "b")
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestMultisetCloneIsIndependent(t *testing.T) {
	orig := NewMultiset("a")
	clone := orig.Clone()
	clone.Add("b")
	assert.Equal(t, 0, orig.Count("b"))
	assert.Equal(t, 1, clone.Count("b"))
}

func TestMultisetUnionIsPerElementMax(t *testing.T) {
	a := NewMultiset("x", "x")
	b := NewMultiset("x", "y")
	u := a.Union(b)
	assert.Equal(t, 2, u.Count("x"))
	assert.Equal(t, 1, u.Count("y"))
}

func TestMultisetIntersectionIsPerElementMin(t *testing.T) {
	a := NewMultiset("x", "x", "y")
	b := NewMultiset("x", "y", "y")
	i := a.Intersection(b)
	assert.Equal(t, 1, i.Count("x"))
	assert.Equal(t, 1, i.Count("y"))
}

func TestMultisetPlusIsAdditive(t *testing.T) {
	a := NewMultiset("x")
	b := NewMultiset("x", "y")
	sum := a.Plus(b)
	assert.Equal(t, 2, sum.Count("x"))
	assert.Equal(t, 1, sum.Count("y"))
}

func TestMultisetMinusClampsAtZero(t *testing.T) {
	a := NewMultiset("x")
	b := NewMultiset("x", "x")
	diff := b.Minus(a)
	assert.Equal(t, 1, diff.Count("x"))

	diff2 := a.Minus(b)
	assert.Equal(t, 0, diff2.Count("x"))
}

func TestMultisetTimes(t *testing.T) {
	a := NewMultiset("x", "y")
	tripled := a.Times(3)
	assert.Equal(t, 3, tripled.Count("x"))
	assert.Equal(t, 3, tripled.Count("y"))
	assert.True(t, a.Times(0).Empty())
}

func TestMultisetOrderedKeysIsSorted(t *testing.T) {
	m := NewMultiset("b", "a", "c", "a")
	keys := m.OrderedKeys(func(a, b string) bool { return a < b })
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestMultisetSetIsSupport(t *testing.T) {
	m := NewMultiset("a", "a", "b")
	s := m.Set()
	assert.True(t, s.Has("a"))
	assert.True(t, s.Has("b"))
	assert.Equal(t, 2, s.Len())
}
