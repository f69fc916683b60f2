package catalog

import (
	"errors"
	"testing"

	"github.com/focal-dev/focal/internal/proftree"
)

func testTree() *proftree.Node {
	return &proftree.Node{Label: "main", Time: 2.5, Children: []*proftree.Node{
		{Label: "work", Time: 2.0, MemAllocated: 8.0,
			Source: &proftree.SourceRef{File: "w.R", StartLine: 3, EndLine: 3}},
	}}
}

// TestNewDBService verifies that the catalog initializes correctly with
// the embedded schema using an in-memory SQLite instance.
func TestNewDBService(t *testing.T) {
	svc, err := NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService(:memory:) failed: %v", err)
	}
	defer svc.Close()
}

// TestSaveAndGetProfile verifies the full round trip:
// save → get → tree and metadata match.
func TestSaveAndGetProfile(t *testing.T) {
	svc, err := NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService failed: %v", err)
	}
	defer svc.Close()

	now := NowNano()
	meta := &ProfileMeta{
		ProfileID:  "prof-001",
		Name:       "render-benchmark",
		SourcePath: "/tmp/render.json",
		CapturedAt: now - 1000,
		ImportedAt: now,
		NodeCount:  2,
		TotalTime:  2.5,
		TotalAlloc: 8.0,
	}

	if err := svc.SaveProfile(meta, testTree()); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	gotMeta, gotTree, err := svc.GetProfile("prof-001")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if gotMeta.Name != "render-benchmark" {
		t.Errorf("expected name render-benchmark, got %s", gotMeta.Name)
	}
	if gotMeta.NodeCount != 2 {
		t.Errorf("expected node_count 2, got %d", gotMeta.NodeCount)
	}
	if gotTree.Label != "main" || len(gotTree.Children) != 1 {
		t.Fatalf("expected tree main with one child, got %+v", gotTree)
	}
	child := gotTree.Children[0]
	if child.Source == nil || child.Source.File != "w.R" || child.Source.StartLine != 3 {
		t.Errorf("expected child source ref w.R:3 to survive the round trip, got %+v", child.Source)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	svc, err := NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService failed: %v", err)
	}
	defer svc.Close()

	if _, _, err := svc.GetProfile("missing"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}

// TestListProfilesOrderAndFilter verifies newest-first ordering and the
// name filter.
func TestListProfilesOrderAndFilter(t *testing.T) {
	svc, err := NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService failed: %v", err)
	}
	defer svc.Close()

	base := NowNano()
	for i, name := range []string{"alpha", "beta", "alpha"} {
		meta := &ProfileMeta{
			ProfileID:  "prof-" + name + string(rune('0'+i)),
			Name:       name,
			CapturedAt: base,
			ImportedAt: base + int64(i),
		}
		if err := svc.SaveProfile(meta, testTree()); err != nil {
			t.Fatalf("SaveProfile %d failed: %v", i, err)
		}
	}

	all, err := svc.ListProfiles(ProfileFilter{Limit: 10})
	if err != nil {
		t.Fatalf("ListProfiles failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 profiles, got %d", len(all))
	}
	if all[0].ImportedAt < all[1].ImportedAt || all[1].ImportedAt < all[2].ImportedAt {
		t.Errorf("expected newest-first ordering")
	}

	name := "alpha"
	alphas, err := svc.ListProfiles(ProfileFilter{Name: &name, Limit: 10})
	if err != nil {
		t.Fatalf("ListProfiles filtered failed: %v", err)
	}
	if len(alphas) != 2 {
		t.Errorf("expected 2 alpha profiles, got %d", len(alphas))
	}
}

func TestDeleteProfile(t *testing.T) {
	svc, err := NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService failed: %v", err)
	}
	defer svc.Close()

	meta := &ProfileMeta{ProfileID: "prof-del", Name: "x", CapturedAt: 1, ImportedAt: 1}
	if err := svc.SaveProfile(meta, testTree()); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	if err := svc.DeleteProfile("prof-del"); err != nil {
		t.Fatalf("DeleteProfile failed: %v", err)
	}
	if _, _, err := svc.GetProfile("prof-del"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("expected profile gone after delete, got %v", err)
	}
	if err := svc.DeleteProfile("prof-del"); !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound on double delete, got %v", err)
	}
}
