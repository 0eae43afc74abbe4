package upload

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTTLCacheExpiry(t *testing.T) {
	// Arrange
	cache := NewTTLCache(30 * time.Millisecond)
	cache.Put("klucz", &Result{RelativePath: "a/photo/x.jpg"})

	// Act & Assert
	cached, ok := cache.Get("klucz")
	require.True(t, ok)
	require.Equal(t, "a/photo/x.jpg", cached.RelativePath)

	time.Sleep(50 * time.Millisecond)
	_, ok = cache.Get("klucz")
	require.False(t, ok, "entry should expire after the TTL")
}

func TestTTLCacheMissingKey(t *testing.T) {
	cache := NewTTLCache(time.Second)
	_, ok := cache.Get("nieznany")
	require.False(t, ok)
}
