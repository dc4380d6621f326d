package storage

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/Wwwoper/session-manager/internal/models"
)

func TestLoadRegistryMissing(t *testing.T) {
	store := NewStore(t.TempDir())

	projects, err := store.LoadRegistry()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("expected empty registry, got %d projects", len(projects))
	}
}

func TestRegistryRoundtrip(t *testing.T) {
	store := NewStore(t.TempDir())

	now := time.Now().Truncate(time.Second)
	in := []models.Project{
		{Name: "alpha", Path: "/tmp/alpha", Alias: "a", CreatedAt: now, LastUsed: now},
		{Name: "beta", Path: "/tmp/beta", CreatedAt: now, LastUsed: now},
	}
	if err := store.SaveRegistry(in); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	out, err := store.LoadRegistry()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(out))
	}
	if out[0].Name != "alpha" || out[0].Alias != "a" {
		t.Errorf("unexpected first project: %+v", out[0])
	}
}

func TestSaveRegistryLeavesNoTempFile(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)

	if err := store.SaveRegistry([]models.Project{{Name: "p", Path: "/tmp/p"}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, "config.json.tmp")); !os.IsNotExist(err) {
		t.Error("temporary file left behind after atomic write")
	}
}

func TestLoadRegistryCorrupt(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)

	if err := os.WriteFile(filepath.Join(root, "config.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := store.LoadRegistry()
	if err == nil {
		t.Fatal("expected error for corrupt registry")
	}
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Errorf("expected *IOError, got %T", err)
	}
}

// A crashed write leaves a stale .tmp file; the committed registry must
// still read back intact.
func TestStaleTempFileDoesNotCorruptRegistry(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)

	if err := store.SaveRegistry([]models.Project{{Name: "p", Path: "/tmp/p"}}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "config.json.tmp"), []byte("{partial"), 0644); err != nil {
		t.Fatal(err)
	}

	projects, err := store.LoadRegistry()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(projects) != 1 || projects[0].Name != "p" {
		t.Errorf("registry corrupted by stale temp file: %+v", projects)
	}
}

func TestHistoryAppendAndUpdate(t *testing.T) {
	store := NewStore(t.TempDir())

	sess := models.Session{
		ID:          "s1",
		ProjectName: "demo",
		StartedAt:   time.Now(),
		Status:      models.StatusActive,
	}
	if err := store.AppendSession("demo", sess); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	ended := time.Now()
	sess.EndedAt = &ended
	sess.Status = models.StatusCompleted
	sess.Summary = "done"
	if err := store.UpdateSession("demo", sess); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	hist, err := store.LoadHistory("demo")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(hist) != 1 {
		t.Fatalf("expected 1 session, got %d", len(hist))
	}
	if hist[0].Status != models.StatusCompleted || hist[0].Summary != "done" {
		t.Errorf("update not persisted: %+v", hist[0])
	}
}

func TestUpdateSessionUnknownID(t *testing.T) {
	store := NewStore(t.TempDir())

	err := store.UpdateSession("demo", models.Session{ID: "missing"})
	if err == nil {
		t.Fatal("expected error updating unknown session")
	}
}

func TestWriteSnapshotCollisionSuffix(t *testing.T) {
	store := NewStore(t.TempDir())

	at := time.Date(2026, 3, 14, 15, 9, 26, 0, time.Local)
	first := &models.Snapshot{ProjectName: "demo", CreatedAt: at, Content: "first"}
	second := &models.Snapshot{ProjectName: "demo", CreatedAt: at, Content: "second"}

	name1, err := store.WriteSnapshot("demo", first)
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	name2, err := store.WriteSnapshot("demo", second)
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if name1 == name2 {
		t.Fatalf("collision not disambiguated: %s", name1)
	}
	if name1 != "20260314_150926" || name2 != "20260314_150926_01" {
		t.Errorf("unexpected names: %s, %s", name1, name2)
	}

	// Names must keep sorting in creation order.
	names, err := store.ListSnapshots("demo")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("snapshot names not sorted: %v", names)
	}
	if names[0] != name1 || names[1] != name2 {
		t.Errorf("creation order lost: %v", names)
	}
}

func TestWriteSnapshotManyCollisionsStaySorted(t *testing.T) {
	store := NewStore(t.TempDir())

	at := time.Date(2026, 3, 14, 15, 9, 26, 0, time.Local)
	var written []string
	for i := 0; i < 12; i++ {
		snap := &models.Snapshot{ProjectName: "demo", CreatedAt: at, Content: "c"}
		name, err := store.WriteSnapshot("demo", snap)
		if err != nil {
			t.Fatalf("write %d failed: %v", i, err)
		}
		written = append(written, name)
	}

	// Lexicographic order must equal creation order even past the
	// ninth same-second collision.
	names, err := store.ListSnapshots("demo")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("snapshot names not sorted: %v", names)
	}
	for i := range written {
		if names[i] != written[i] {
			t.Fatalf("creation order lost at %d: wrote %v, listed %v", i, written, names)
		}
	}
}

func TestLatestSnapshot(t *testing.T) {
	store := NewStore(t.TempDir())

	if snap, err := store.LatestSnapshot("demo"); err != nil || snap != nil {
		t.Fatalf("expected no snapshot, got %v, %v", snap, err)
	}

	base := time.Date(2026, 1, 2, 10, 0, 0, 0, time.Local)
	for i := 0; i < 3; i++ {
		snap := &models.Snapshot{
			ProjectName: "demo",
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
			Content:     string(rune('a' + i)),
		}
		if _, err := store.WriteSnapshot("demo", snap); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	latest, err := store.LatestSnapshot("demo")
	if err != nil {
		t.Fatalf("latest failed: %v", err)
	}
	if latest.Content != "c" {
		t.Errorf("expected latest content %q, got %q", "c", latest.Content)
	}
	if !latest.CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("unexpected latest timestamp: %v", latest.CreatedAt)
	}
}

func TestContextDocument(t *testing.T) {
	store := NewStore(t.TempDir())

	if doc, err := store.ReadContextDocument("demo"); err != nil || doc != "" {
		t.Fatalf("expected empty document, got %q, %v", doc, err)
	}

	if err := store.WriteContextDocument("demo", "v1"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := store.WriteContextDocument("demo", "v2"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	doc, err := store.ReadContextDocument("demo")
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if doc != "v2" {
		t.Errorf("expected overwritten content, got %q", doc)
	}
}

func TestLockProjectReleases(t *testing.T) {
	store := NewStore(t.TempDir())

	unlock, err := store.LockProject("demo")
	if err != nil {
		t.Fatalf("lock failed: %v", err)
	}
	unlock()

	// Re-acquiring after release must not block.
	unlock2, err := store.LockProject("demo")
	if err != nil {
		t.Fatalf("relock failed: %v", err)
	}
	unlock2()
}
