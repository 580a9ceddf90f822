package dataflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVecHandoffTakeInnerEmpties(t *testing.T) {
	h := NewVecHandoff[int]()
	assert.True(t, h.IsEmpty())

	h.PushAll([]int{1, 2, 3})
	require.False(t, h.IsEmpty())
	assert.Equal(t, 3, h.Len())

	got := h.TakeInner()
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.True(t, h.IsEmpty())
	assert.Nil(t, h.TakeInner())
}

func TestTeeingHandoffEachReaderSeesFullSequence(t *testing.T) {
	h := NewTeeingHandoff[int]()
	r1 := h.Tee()
	r2 := h.Tee()

	h.PushAll([]int{10, 20, 30})

	assert.Equal(t, []int{10, 20, 30}, r1.TakeInner())
	// r2 hasn't taken yet: handoff must still report non-empty.
	assert.False(t, h.IsEmpty())
	assert.Equal(t, []int{10, 20, 30}, r2.TakeInner())
	assert.True(t, h.IsEmpty())
}

func TestTeeingHandoffReadersProgressIndependently(t *testing.T) {
	h := NewTeeingHandoff[string]()
	fast := h.Tee()
	slow := h.Tee()

	h.Push("a")
	h.Push("b")
	assert.Equal(t, []string{"a", "b"}, fast.TakeInner())

	h.Push("c")
	// fast has only "c" left; slow still has everything.
	assert.Equal(t, []string{"c"}, fast.TakeInner())
	assert.Equal(t, []string{"a", "b", "c"}, slow.TakeInner())
	assert.True(t, h.IsEmpty())
}

func TestTeeingHandoffLateTeeOnlySeesFuturePushes(t *testing.T) {
	h := NewTeeingHandoff[int]()
	h.Push(1)
	late := h.Tee()
	h.Push(2)

	assert.Equal(t, []int{2}, late.TakeInner())
}

func TestTickDelayedHandoffDoubleBuffers(t *testing.T) {
	th := newTickDelayedHandoff[int]()
	assert.True(t, th.IsEmpty())

	th.write.Push(7)
	// Written this tick, not yet visible to the reader.
	assert.True(t, th.IsEmpty())

	th.advanceTick()
	assert.False(t, th.IsEmpty())
	assert.Equal(t, []int{7}, th.read.TakeInner())

	th.advanceTick()
	assert.True(t, th.IsEmpty())
}
