// Package ingest loads profile dump files into the focal catalog.
//
// A dump is the JSON interchange form of a captured call tree, produced by
// the external profiler:
//
//	{
//	  "name": "render-benchmark",
//	  "captured_at": 1721390000000000000,
//	  "root": { "label": "...", "time": ..., "children": [...] }
//	}
//
// A bare root-node object (no envelope) is also accepted, since some
// capture tools emit just the tree. Validation rejects trees that would
// break navigation invariants (empty labels, negative metrics) before
// anything reaches the catalog.
package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/focal-dev/focal/internal/catalog"
	"github.com/focal-dev/focal/internal/proftree"
)

// Dump is the on-disk envelope of a captured profile.
type Dump struct {
	Name       string         `json:"name"`
	CapturedAt int64          `json:"captured_at"` // Unix nanoseconds, 0 if unknown
	Root       *proftree.Node `json:"root"`
}

// Loader reads dump files and writes them to a catalog store.
type Loader struct {
	store catalog.Store
	log   *slog.Logger
}

// NewLoader creates a loader backed by the given store. A nil logger
// disables diagnostics.
func NewLoader(store catalog.Store, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Loader{store: store, log: log}
}

// LoadFile reads, validates, and imports one dump file, returning the
// metadata of the stored profile.
func (l *Loader) LoadFile(path string) (*catalog.ProfileMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dump %s: %w", path, err)
	}

	dump, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding dump %s: %w", path, err)
	}
	if dump.Name == "" {
		dump.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	meta := Describe(dump, path, data)
	if err := l.store.SaveProfile(meta, dump.Root); err != nil {
		return nil, fmt.Errorf("storing profile %s: %w", meta.ProfileID, err)
	}

	l.log.Info("imported profile",
		"profile", meta.ProfileID,
		"name", meta.Name,
		"nodes", meta.NodeCount,
		"total_time", meta.TotalTime,
	)
	return meta, nil
}

// Decode parses dump bytes, accepting either the envelope form or a bare
// root node, and validates the tree.
func Decode(data []byte) (*Dump, error) {
	dump := &Dump{}
	if err := json.Unmarshal(data, dump); err != nil {
		return nil, fmt.Errorf("parsing dump: %w", err)
	}

	if dump.Root == nil {
		// Bare tree form: the document itself is the root node.
		root := &proftree.Node{}
		if err := json.Unmarshal(data, root); err != nil {
			return nil, fmt.Errorf("parsing bare tree: %w", err)
		}
		dump.Root = root
	}

	if dump.Root.Label == "" && len(dump.Root.Children) == 0 {
		return nil, fmt.Errorf("dump contains no tree")
	}
	if err := dump.Root.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tree: %w", err)
	}
	return dump, nil
}

// Describe derives catalog metadata from a decoded dump. The profile ID is
// a content hash, so re-importing the same dump replaces rather than
// duplicates.
func Describe(dump *Dump, sourcePath string, raw []byte) *catalog.ProfileMeta {
	sum := sha256.Sum256(raw)

	var totalAlloc float64
	dump.Root.Walk(func(n *proftree.Node) bool {
		totalAlloc += n.MemAllocated
		return true
	})

	capturedAt := dump.CapturedAt
	if capturedAt == 0 {
		capturedAt = catalog.NowNano()
	}

	return &catalog.ProfileMeta{
		ProfileID:  hex.EncodeToString(sum[:8]),
		Name:       dump.Name,
		SourcePath: sourcePath,
		CapturedAt: capturedAt,
		ImportedAt: catalog.NowNano(),
		NodeCount:  dump.Root.CountNodes(),
		TotalTime:  dump.Root.Time,
		TotalAlloc: totalAlloc,
	}
}
