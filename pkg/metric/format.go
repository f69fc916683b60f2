// Package metric provides display formatting for profiling measurements.
//
// Trees store time as seconds (float64) and memory as megabytes; this
// package handles conversion to compact human-readable strings for the
// TUI and report generation.
package metric

import "fmt"

// FormatSeconds formats a duration in seconds to a human-readable string.
// Examples: "450ms", "1.2s", "2m 15.3s"
func FormatSeconds(s float64) string {
	if s < 0 {
		s = 0
	}
	if s < 1 {
		return fmt.Sprintf("%dms", int(s*1000))
	}
	if s < 60 {
		return fmt.Sprintf("%.1fs", s)
	}
	minutes := int(s / 60)
	remaining := s - float64(minutes*60)
	return fmt.Sprintf("%dm %.1fs", minutes, remaining)
}

// FormatMegabytes formats a size in megabytes.
// Examples: "512.0 KB", "12.5 MB", "1.2 GB"
func FormatMegabytes(mb float64) string {
	if mb < 0 {
		mb = 0
	}
	switch {
	case mb < 1:
		return fmt.Sprintf("%.1f KB", mb*1024)
	case mb < 1024:
		return fmt.Sprintf("%.1f MB", mb)
	default:
		return fmt.Sprintf("%.1f GB", mb/1024)
	}
}

// FormatCount formats a duplication count, abbreviating large values.
// Examples: "8", "1.2k"
func FormatCount(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%.1fk", float64(n)/1000)
}
