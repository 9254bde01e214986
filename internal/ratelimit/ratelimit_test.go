package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllow_Burst(t *testing.T) {
	krl := New(1, 2)
	defer krl.Stop()

	assert.True(t, krl.Allow("isbndb"))
	assert.True(t, krl.Allow("isbndb"))
	// Burst exhausted.
	assert.False(t, krl.Allow("isbndb"))
}

func TestAllow_IndependentKeys(t *testing.T) {
	krl := New(1, 1)
	defer krl.Stop()

	assert.True(t, krl.Allow("isbndb"))
	assert.False(t, krl.Allow("isbndb"))

	// A different upstream has its own bucket.
	assert.True(t, krl.Allow("openlibrary"))
}

func TestWait_ContextCancellation(t *testing.T) {
	krl := New(0.001, 1)
	defer krl.Stop()

	require.True(t, krl.Allow("slow"))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := krl.Wait(ctx, "slow")
	assert.Error(t, err)
}

func TestStop_Idempotent(t *testing.T) {
	krl := New(1, 1)
	krl.Stop()
	krl.Stop()
}
