package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	got, err := Generate("book")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "book-"))
	// 5 chars of prefix + dash + 21-char nanoid.
	assert.Len(t, got, len("book-")+21)
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := MustGenerate("log")
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
