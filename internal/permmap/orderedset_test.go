package permmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedSet(t *testing.T) {
	var s OrderedSet[string]

	assert.True(t, s.Add("b"))
	assert.True(t, s.Add("a"))
	assert.False(t, s.Add("b"))
	s.AddAll("c", "a", "d")

	assert.Equal(t, []string{"b", "a", "c", "d"}, s.Items())
	assert.Equal(t, 4, s.Len())
	assert.True(t, s.Contains("c"))
	assert.False(t, s.Contains("z"))
}

func TestOrderedSet_ZeroValue(t *testing.T) {
	var s OrderedSet[int]

	assert.False(t, s.Contains(1))
	assert.NotNil(t, s.Items())
	assert.Zero(t, s.Len())
}

func TestOrderedSet_ItemsIsCopy(t *testing.T) {
	s := NewOrderedSet(1, 2, 2, 3)

	items := s.Items()
	items[0] = 99

	assert.Equal(t, []int{1, 2, 3}, s.Items())
}
