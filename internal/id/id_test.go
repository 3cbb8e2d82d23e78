package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsUniqueAndNonEmpty(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		v := New()
		assert.NotEmpty(t, v)
		assert.False(t, seen[v], "ids must not repeat")
		seen[v] = true
	}
}
