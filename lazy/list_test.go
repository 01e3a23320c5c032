package lazy

import (
	"testing"

	"gotest.tools/v3/assert"
)

func TestTransformList(t *testing.T) {
	var calls []int
	l := TransformList(ListOf([]int{1, 2, 3, 4}), func(i int) int {
		calls = append(calls, i)
		return i * i
	})
	assert.Equal(t, len(calls), 0)
	assert.Equal(t, l.Len(), 4)

	assert.Equal(t, l.Get(1), 4)
	assert.DeepEqual(t, calls, []int{2})

	assert.DeepEqual(t, l.View().Collect(), []int{1, 4, 9, 16})
}

func TestListAll(t *testing.T) {
	l := ListOf([]string{"a", "b", "c"})
	var idx []int
	for i, s := range l.All() {
		idx = append(idx, i)
		if s == "b" {
			break
		}
	}
	assert.DeepEqual(t, idx, []int{0, 1})
}

func TestListGetPanics(t *testing.T) {
	l := ListOf([]int{1})
	defer func() {
		assert.Assert(t, recover() != nil)
	}()
	l.Get(1)
}
