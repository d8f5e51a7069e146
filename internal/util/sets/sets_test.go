package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := New("b", "a")
	s.Add("c")
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("z"))
	assert.Equal(t, []string{"a", "b", "c"}, Sorted(s))
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"form", "input", "overlay"}, Unique("form", "input", "form", "overlay", "input"))
	assert.NotNil(t, Unique[string]())
	assert.Empty(t, Unique[string]())
}
