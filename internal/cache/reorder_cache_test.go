package cache

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReorderKeyDeterministic(t *testing.T) {
	key := ReorderKey{TenantID: "t1", From: "2025-01-01", To: "2025-01-31", LeadTimeDays: 7, Z: 1.65}
	assert.Equal(t, buildReorderKey(key), buildReorderKey(key))

	other := key
	other.Z = 1.96
	assert.NotEqual(t, buildReorderKey(key), buildReorderKey(other),
		"any parameter that affects the math must change the key")
}

func TestBuildReorderKeyTenantPrefix(t *testing.T) {
	key := buildReorderKey(ReorderKey{TenantID: "t1"})
	assert.True(t, strings.HasPrefix(key, "reorder:stats:t1:"),
		"tenant must be part of the prefix so invalidation can scan it")
}

func TestNoopReorderCache(t *testing.T) {
	c := NewNoopReorderCache()
	ctx := context.Background()

	_, ok, err := c.Get(ctx, ReorderKey{TenantID: "t1"})
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, ReorderKey{TenantID: "t1"}, nil))
	require.NoError(t, c.InvalidateTenant(ctx, "t1"))
}
