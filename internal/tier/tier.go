package tier

import (
	"fmt"
	"strings"
)

// Limits opisuje twarde limity pojedynczego planu konta.
type Limits struct {
	DisplayName          string
	StorageLimitBytes    int64
	PhotoCountLimit      int
	SingleFileLimitBytes int64
}

const (
	Free  = "FREE"
	Basic = "BASIC"
	Pro   = "PRO"
)

// limitTable jest tabelą danych, nie enumem: zmiana limitów nie wymaga
// zmiany kodu poza tym miejscem.
var limitTable = map[string]Limits{
	Free:  {DisplayName: "Free", StorageLimitBytes: 50 * 1024 * 1024, PhotoCountLimit: 20, SingleFileLimitBytes: 10 * 1024 * 1024},
	Basic: {DisplayName: "Basic", StorageLimitBytes: 200 * 1024 * 1024, PhotoCountLimit: 50, SingleFileLimitBytes: 20 * 1024 * 1024},
	Pro:   {DisplayName: "Pro", StorageLimitBytes: 2 * 1024 * 1024 * 1024, PhotoCountLimit: 100, SingleFileLimitBytes: 30 * 1024 * 1024},
}

// Normalize maps an arbitrary tier string to a known tier name.
// Unknown or empty values fall back to FREE.
func Normalize(name string) string {
	upper := strings.ToUpper(strings.TrimSpace(name))
	if _, ok := limitTable[upper]; ok {
		return upper
	}
	return Free
}

// LimitsFor returns the limits for the given tier name. It never fails:
// unknown tiers get the FREE limits.
func LimitsFor(name string) Limits {
	return limitTable[Normalize(name)]
}

// FormatBytes renders a byte count the way quota messages expect it
// (GB/MB/KB with two decimals, plain bytes below 1 KB).
func FormatBytes(bytes int64) string {
	switch {
	case bytes >= 1024*1024*1024:
		return fmt.Sprintf("%.2f GB", float64(bytes)/(1024*1024*1024))
	case bytes >= 1024*1024:
		return fmt.Sprintf("%.2f MB", float64(bytes)/(1024*1024))
	case bytes >= 1024:
		return fmt.Sprintf("%.2f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}

// FormatLimit renders a limit in whole units (50MB, 2GB), matching the
// strings shown next to the tier name.
func FormatLimit(bytes int64) string {
	if bytes >= 1024*1024*1024 {
		return fmt.Sprintf("%dGB", bytes/(1024*1024*1024))
	}
	if bytes >= 1024*1024 {
		return fmt.Sprintf("%dMB", bytes/(1024*1024))
	}
	return fmt.Sprintf("%dKB", bytes/1024)
}
