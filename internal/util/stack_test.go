package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStackPushPopOrder(t *testing.T) {
	var s Stack[int]
	s.Push(1)
	s.Push(2)
	s.Push(3)

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, 3, s.Peek())
	assert.Equal(t, 3, s.Pop())
	assert.Equal(t, 2, s.Pop())
	assert.Equal(t, 1, s.Pop())
	assert.Equal(t, 0, s.Len())
}

func TestStackPopEmptyPanics(t *testing.T) {
	var s Stack[int]
	assert.Panics(t, func() { s.Pop() })
}
