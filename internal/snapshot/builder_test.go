package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/Wwwoper/session-manager/internal/integrations"
	"github.com/Wwwoper/session-manager/internal/models"
	"github.com/Wwwoper/session-manager/internal/storage"
	"github.com/Wwwoper/session-manager/internal/testutil"
)

func TestBuildWritesSnapshotAndContextDocument(t *testing.T) {
	store := storage.NewStore(testutil.TempStoreRoot(t))
	builder := NewBuilder(store, integrations.Providers{}, time.Second)

	project := &models.Project{Name: "demo", Path: testutil.TempProjectDir(t)}
	sess := completedSession()

	snap, err := builder.Build(project, sess)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if snap.Name == "" {
		t.Error("snapshot name not set")
	}

	// PROJECT.md must be an exact copy of the latest snapshot body.
	doc, err := store.ReadContextDocument("demo")
	if err != nil {
		t.Fatal(err)
	}
	if doc != snap.Content {
		t.Error("context document differs from snapshot content")
	}

	latest, err := store.LatestSnapshot("demo")
	if err != nil {
		t.Fatal(err)
	}
	if latest.Content != snap.Content {
		t.Error("stored snapshot differs from built snapshot")
	}
}

func TestBuildWithAllProvidersUnavailable(t *testing.T) {
	store := storage.NewStore(testutil.TempStoreRoot(t))
	providers := integrations.Providers{
		VCS:    unavailableVCS{},
		Tests:  unavailableTests{},
		Issues: unavailableIssues{},
	}
	builder := NewBuilder(store, providers, time.Second)

	project := &models.Project{Name: "demo", Path: testutil.TempProjectDir(t)}
	snap, err := builder.Build(project, completedSession())
	if err != nil {
		t.Fatalf("build failed with unavailable providers: %v", err)
	}
	if snap.Content == "" {
		t.Error("empty snapshot content")
	}
}

func TestSequentialBuildsSortByNameAndCreation(t *testing.T) {
	store := storage.NewStore(testutil.TempStoreRoot(t))
	builder := NewBuilder(store, integrations.Providers{}, time.Second)
	project := &models.Project{Name: "demo", Path: testutil.TempProjectDir(t)}

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
	// Two in the same second, one later: names must still sort in
	// creation order.
	offsets := []time.Duration{0, 0, time.Minute}
	var names []string
	for i, off := range offsets {
		started := base.Add(-time.Hour)
		ended := base.Add(off)
		sess := &models.Session{
			ID:          string(rune('a' + i)),
			ProjectName: "demo",
			StartedAt:   started,
			EndedAt:     &ended,
			Status:      models.StatusCompleted,
		}
		snap, err := builder.Build(project, sess)
		if err != nil {
			t.Fatal(err)
		}
		names = append(names, snap.Name)
	}

	listed, err := store.ListSnapshots("demo")
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 snapshots, got %d", len(listed))
	}
	for i := range names {
		if listed[i] != names[i] {
			t.Errorf("name order differs from creation order: %v vs %v", listed, names)
			break
		}
	}
}

type unavailableVCS struct{}
type unavailableTests struct{}
type unavailableIssues struct{}

func (unavailableVCS) Status(ctx context.Context, dir string) (*integrations.VCSStatus, bool) {
	return nil, false
}
func (unavailableTests) Run(ctx context.Context, dir string) (*integrations.TestResult, bool) {
	return nil, false
}
func (unavailableIssues) OpenIssues(ctx context.Context, dir string) ([]integrations.Issue, bool) {
	return nil, false
}
