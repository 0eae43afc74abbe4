package tier

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLimitsFor_KnownTiers(t *testing.T) {
	free := LimitsFor("FREE")
	require.Equal(t, int64(50*1024*1024), free.StorageLimitBytes)
	require.Equal(t, 20, free.PhotoCountLimit)
	require.Equal(t, int64(10*1024*1024), free.SingleFileLimitBytes)

	basic := LimitsFor("BASIC")
	require.Equal(t, int64(200*1024*1024), basic.StorageLimitBytes)
	require.Equal(t, 50, basic.PhotoCountLimit)
	require.Equal(t, int64(20*1024*1024), basic.SingleFileLimitBytes)

	pro := LimitsFor("PRO")
	require.Equal(t, int64(2*1024*1024*1024), pro.StorageLimitBytes)
	require.Equal(t, 100, pro.PhotoCountLimit)
	require.Equal(t, int64(30*1024*1024), pro.SingleFileLimitBytes)
}

func TestLimitsFor_UnknownFallsBackToFree(t *testing.T) {
	// Nieznany lub pusty plan zawsze mapuje się na FREE
	for _, name := range []string{"", "ENTERPRISE", "gold", "  "} {
		require.Equal(t, LimitsFor(Free), LimitsFor(name), "tier %q", name)
	}
}

func TestNormalize_CaseInsensitive(t *testing.T) {
	require.Equal(t, Pro, Normalize("pro"))
	require.Equal(t, Basic, Normalize(" Basic "))
	require.Equal(t, Free, Normalize("nope"))
}

func TestFormatBytes(t *testing.T) {
	require.Equal(t, "512 bytes", FormatBytes(512))
	require.Equal(t, "1.00 KB", FormatBytes(1024))
	require.Equal(t, "5.00 MB", FormatBytes(5*1024*1024))
	require.Equal(t, "2.00 GB", FormatBytes(2*1024*1024*1024))
}

func TestFormatLimit(t *testing.T) {
	require.Equal(t, "50MB", FormatLimit(50*1024*1024))
	require.Equal(t, "2GB", FormatLimit(2*1024*1024*1024))
	require.Equal(t, "10MB", FormatLimit(10*1024*1024))
}
