// Package snapshot renders and persists context snapshots: the
// immutable per-session record under snapshots/ and the always-current
// PROJECT.md derived from it.
package snapshot

import (
	"time"

	"github.com/Wwwoper/session-manager/internal/integrations"
	"github.com/Wwwoper/session-manager/internal/models"
	"github.com/Wwwoper/session-manager/internal/storage"
)

// Builder assembles context snapshots from session data plus whatever
// the collaborator providers can supply.
type Builder struct {
	store     *storage.Store
	providers integrations.Providers
	timeout   time.Duration
}

// NewBuilder creates a builder. Providers may be the zero value; the
// resulting snapshots simply lack collaborator sections.
func NewBuilder(store *storage.Store, providers integrations.Providers, timeout time.Duration) *Builder {
	return &Builder{store: store, providers: providers, timeout: timeout}
}

// Build renders a snapshot for a completed session, writes it to the
// project's snapshots directory and overwrites PROJECT.md with the
// identical content. Collaborator data is gathered best-effort;
// unavailable providers cost a section, never an error.
func (b *Builder) Build(project *models.Project, sess *models.Session) (*models.Snapshot, error) {
	data := integrations.Collect(project.Path, b.providers, b.timeout)

	createdAt := time.Now()
	if sess.EndedAt != nil {
		createdAt = *sess.EndedAt
	}

	snap := &models.Snapshot{
		ProjectName: project.Name,
		CreatedAt:   createdAt,
		Content:     Render(sess, data),
	}

	if _, err := b.store.WriteSnapshot(project.Name, snap); err != nil {
		return nil, err
	}
	if err := b.store.WriteContextDocument(project.Name, snap.Content); err != nil {
		return nil, err
	}
	return snap, nil
}
