// Package report provides lightweight, deterministic analysis of a
// profiling tree. All analysis uses statistical methods over the metrics
// the profiler attributed; nothing is re-measured.
//
// Key capabilities:
//   - Time hotspot detection via Z-score analysis over per-node time
//   - Allocation churn summary (top allocators, release/alloc balance)
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/focal-dev/focal/internal/proftree"
	"github.com/focal-dev/focal/pkg/metric"
)

// ============================================================
// Time Hotspot Detection
// ============================================================

// TimeHotspot identifies a node with abnormally high attributed time.
type TimeHotspot struct {
	Label     string  `json:"label"`
	SourceRef string  `json:"source_ref,omitempty"`
	Time      float64 `json:"time"`
	ZScore    float64 `json:"z_score"`
	Severity  string  `json:"severity"` // "low", "medium", "high"
}

// DetectTimeHotspots calculates the Z-score of attributed time across all
// nodes in the tree, identifying calls that consume disproportionate time.
//
// A Z-score > 2.0 is considered a hotspot ("medium" severity).
// A Z-score > 3.0 is a significant hotspot ("high" severity).
func DetectTimeHotspots(tree *proftree.Node) []TimeHotspot {
	var nodes []*proftree.Node
	tree.Walk(func(n *proftree.Node) bool {
		nodes = append(nodes, n)
		return true
	})

	if len(nodes) < 2 {
		// Not enough data for meaningful Z-score analysis
		return nil
	}

	var sum, sumSq float64
	for _, n := range nodes {
		sum += n.Time
		sumSq += n.Time * n.Time
	}

	count := float64(len(nodes))
	mean := sum / count
	variance := (sumSq / count) - (mean * mean)
	stddev := math.Sqrt(variance)

	if stddev == 0 {
		// Every node took the same time — no hotspots
		return nil
	}

	var hotspots []TimeHotspot
	for _, n := range nodes {
		zScore := (n.Time - mean) / stddev
		if zScore <= 1.5 {
			continue
		}

		severity := "low"
		if zScore > 3.0 {
			severity = "high"
		} else if zScore > 2.0 {
			severity = "medium"
		}

		h := TimeHotspot{
			Label:    n.Label,
			Time:     n.Time,
			ZScore:   math.Round(zScore*100) / 100,
			Severity: severity,
		}
		if n.Source != nil {
			h.SourceRef = n.Source.String()
		}
		hotspots = append(hotspots, h)
	}

	sort.Slice(hotspots, func(i, j int) bool {
		return hotspots[i].ZScore > hotspots[j].ZScore
	})
	return hotspots
}

// ============================================================
// Allocation Churn
// ============================================================

// AllocEntry attributes allocation volume to a single node.
type AllocEntry struct {
	Label      string  `json:"label"`
	SourceRef  string  `json:"source_ref,omitempty"`
	Allocated  float64 `json:"allocated_mb"`
	Released   float64 `json:"released_mb"`
	Percentage float64 `json:"percentage"`
}

// AllocReport summarizes allocation behavior across the tree.
type AllocReport struct {
	TotalAllocated float64      `json:"total_allocated_mb"`
	TotalReleased  float64      `json:"total_released_mb"`
	RetainedRatio  float64      `json:"retained_ratio"` // 1 - released/allocated
	TopAllocators  []AllocEntry `json:"top_allocators"`
}

// topAllocators caps the entries reported by SummarizeAllocations.
const topAllocators = 10

// SummarizeAllocations totals allocation metrics and ranks the heaviest
// allocating nodes.
func SummarizeAllocations(tree *proftree.Node) *AllocReport {
	rep := &AllocReport{}

	var entries []AllocEntry
	tree.Walk(func(n *proftree.Node) bool {
		rep.TotalAllocated += n.MemAllocated
		rep.TotalReleased += n.MemReleased
		if n.MemAllocated > 0 {
			e := AllocEntry{
				Label:     n.Label,
				Allocated: n.MemAllocated,
				Released:  n.MemReleased,
			}
			if n.Source != nil {
				e.SourceRef = n.Source.String()
			}
			entries = append(entries, e)
		}
		return true
	})

	if rep.TotalAllocated > 0 {
		rep.RetainedRatio = math.Round((1-rep.TotalReleased/rep.TotalAllocated)*1000) / 1000
		for i := range entries {
			entries[i].Percentage = math.Round(
				entries[i].Allocated/rep.TotalAllocated*10000) / 100
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Allocated > entries[j].Allocated
	})
	if len(entries) > topAllocators {
		entries = entries[:topAllocators]
	}
	rep.TopAllocators = entries
	return rep
}

// ============================================================
// Full Report
// ============================================================

// Report is the complete output of `focal analyze`.
type Report struct {
	ProfileID    string        `json:"profile_id"`
	Name         string        `json:"name"`
	NodeCount    int           `json:"node_count"`
	TotalTime    float64       `json:"total_time"`
	TimeHotspots []TimeHotspot `json:"time_hotspots"`
	Allocations  *AllocReport  `json:"allocations"`
	Warnings     []string      `json:"warnings"`
}

// Analyze runs all analysis passes over a tree.
func Analyze(profileID, name string, tree *proftree.Node) *Report {
	rep := &Report{
		ProfileID: profileID,
		Name:      name,
		NodeCount: tree.CountNodes(),
		TotalTime: tree.Time,
	}

	rep.TimeHotspots = DetectTimeHotspots(tree)
	rep.Allocations = SummarizeAllocations(tree)

	for _, h := range rep.TimeHotspots {
		if h.Severity == "high" {
			rep.Warnings = append(rep.Warnings,
				fmt.Sprintf("TIME HOTSPOT: %s took %s (Z-score: %.2f)",
					h.Label, metric.FormatSeconds(h.Time), h.ZScore))
		}
	}
	if a := rep.Allocations; a.TotalAllocated > 0 && a.RetainedRatio > 0.5 {
		rep.Warnings = append(rep.Warnings,
			fmt.Sprintf("HIGH RETENTION: %s of %s allocated was not released",
				metric.FormatMegabytes(a.TotalAllocated-a.TotalReleased),
				metric.FormatMegabytes(a.TotalAllocated)))
	}

	return rep
}

// FormatMarkdown renders a human-readable markdown report.
func FormatMarkdown(rep *Report) string {
	var b strings.Builder

	b.WriteString("# focal Analysis Report\n\n")
	b.WriteString(fmt.Sprintf("**Profile:** `%s` (%s)\n", rep.ProfileID, rep.Name))
	b.WriteString(fmt.Sprintf("**Nodes:** %d  **Total time:** %s\n\n",
		rep.NodeCount, metric.FormatSeconds(rep.TotalTime)))

	if len(rep.TimeHotspots) > 0 {
		b.WriteString("## Time Hotspots\n\n")
		b.WriteString("| Call | Source | Time | Z-Score | Severity |\n")
		b.WriteString("|------|--------|------|---------|----------|\n")
		for _, h := range rep.TimeHotspots {
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %.2f | %s |\n",
				h.Label, h.SourceRef, metric.FormatSeconds(h.Time), h.ZScore, h.Severity))
		}
		b.WriteString("\n")
	}

	if a := rep.Allocations; a != nil {
		b.WriteString("## Allocations\n\n")
		b.WriteString(fmt.Sprintf("- **Allocated:** %s\n", metric.FormatMegabytes(a.TotalAllocated)))
		b.WriteString(fmt.Sprintf("- **Released:** %s\n", metric.FormatMegabytes(a.TotalReleased)))
		b.WriteString(fmt.Sprintf("- **Retained ratio:** %.3f\n\n", a.RetainedRatio))
		if len(a.TopAllocators) > 0 {
			b.WriteString("| Call | Allocated | Released | % |\n")
			b.WriteString("|------|-----------|----------|---|\n")
			for _, e := range a.TopAllocators {
				b.WriteString(fmt.Sprintf("| %s | %s | %s | %.1f%% |\n",
					e.Label, metric.FormatMegabytes(e.Allocated),
					metric.FormatMegabytes(e.Released), e.Percentage))
			}
			b.WriteString("\n")
		}
	}

	if len(rep.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range rep.Warnings {
			b.WriteString(fmt.Sprintf("- %s\n", w))
		}
	}

	return b.String()
}
