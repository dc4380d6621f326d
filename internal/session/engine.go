// Package session implements the session lifecycle state machine:
// start, end, status and history, with at most one active session per
// project at any time.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Wwwoper/session-manager/internal/models"
	"github.com/Wwwoper/session-manager/internal/registry"
	"github.com/Wwwoper/session-manager/internal/storage"
)

var (
	// ErrAlreadyActive is returned by Start when the project already
	// has an active session.
	ErrAlreadyActive = errors.New("a session is already active")
	// ErrNoActive is returned by End when the project has no active
	// session.
	ErrNoActive = errors.New("no active session")
)

// SnapshotError reports that the session completed but the context
// snapshot could not be written. The session transition is never rolled
// back for a snapshot failure; callers downgrade this to a warning.
type SnapshotError struct {
	Err error
}

func (e *SnapshotError) Error() string {
	return fmt.Sprintf("session ended but snapshot failed: %v", e.Err)
}

func (e *SnapshotError) Unwrap() error { return e.Err }

// Builder produces the context snapshot for a completed session.
type Builder interface {
	Build(project *models.Project, sess *models.Session) (*models.Snapshot, error)
}

// Status is the read-only state of a project's session machinery.
type Status struct {
	Active       *models.Session
	LastSnapshot *models.Snapshot
}

// Stats aggregates completed sessions for a project.
type Stats struct {
	TotalSessions int           `json:"total_sessions"`
	TotalTime     time.Duration `json:"total_time"`
	Average       time.Duration `json:"average"`
	Longest       time.Duration `json:"longest"`
	Shortest      time.Duration `json:"shortest"`
}

// Engine drives session state transitions for resolved projects. All
// state lives in storage; the engine itself is stateless.
type Engine struct {
	store   *storage.Store
	reg     *registry.Registry
	builder Builder
}

// NewEngine creates an engine. builder may be nil, in which case End
// skips snapshot generation.
func NewEngine(store *storage.Store, reg *registry.Registry, builder Builder) *Engine {
	return &Engine{store: store, reg: reg, builder: builder}
}

// Start begins a new session for the project. It fails with
// ErrAlreadyActive when a session is already running, and updates the
// project's last-used timestamp on success.
func (e *Engine) Start(project *models.Project, description string) (*models.Session, error) {
	unlock, err := e.store.LockProject(project.Name)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if active, err := e.activeSession(project.Name); err != nil {
		return nil, err
	} else if active != nil {
		return nil, fmt.Errorf("%w for %s (started %s)",
			ErrAlreadyActive, project.Name, active.StartedAt.Format("2006-01-02 15:04"))
	}

	sess := models.Session{
		ID:          uuid.NewString(),
		ProjectName: project.Name,
		StartedAt:   time.Now(),
		Description: description,
		Status:      models.StatusActive,
	}
	if err := e.store.AppendSession(project.Name, sess); err != nil {
		return nil, err
	}
	if err := e.reg.Touch(project.Name); err != nil {
		return nil, err
	}
	return &sess, nil
}

// End completes the active session, then builds the context snapshot.
// A snapshot failure is returned as *SnapshotError alongside the
// completed session: session history integrity takes precedence over
// snapshot freshness, so the transition stands either way.
func (e *Engine) End(project *models.Project, summary, nextAction string) (*models.Session, error) {
	unlock, err := e.store.LockProject(project.Name)
	if err != nil {
		return nil, err
	}
	defer unlock()

	active, err := e.activeSession(project.Name)
	if err != nil {
		return nil, err
	}
	if active == nil {
		return nil, fmt.Errorf("%w for %s", ErrNoActive, project.Name)
	}

	now := time.Now()
	active.EndedAt = &now
	active.Summary = summary
	active.NextAction = nextAction
	active.Status = models.StatusCompleted

	if err := e.store.UpdateSession(project.Name, *active); err != nil {
		return nil, err
	}

	if e.builder != nil {
		if _, err := e.builder.Build(project, active); err != nil {
			return active, &SnapshotError{Err: err}
		}
	}
	return active, nil
}

// Status reports the active session (if any) and the latest snapshot
// (if any). It never mutates state and never takes the lock.
func (e *Engine) Status(project *models.Project) (*Status, error) {
	active, err := e.activeSession(project.Name)
	if err != nil {
		return nil, err
	}
	snap, err := e.store.LatestSnapshot(project.Name)
	if err != nil {
		return nil, err
	}
	return &Status{Active: active, LastSnapshot: snap}, nil
}

// History returns the project's sessions newest-first. limit <= 0 means
// unlimited.
func (e *Engine) History(project *models.Project, limit int) ([]models.Session, error) {
	hist, err := e.store.LoadHistory(project.Name)
	if err != nil {
		return nil, err
	}

	// Stored order is append order, which is start order; reverse it.
	out := make([]models.Session, 0, len(hist))
	for i := len(hist) - 1; i >= 0; i-- {
		out = append(out, hist[i])
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Stats aggregates duration statistics over completed sessions.
func (e *Engine) Stats(project *models.Project) (*Stats, error) {
	hist, err := e.store.LoadHistory(project.Name)
	if err != nil {
		return nil, err
	}

	stats := &Stats{}
	for i := range hist {
		if hist[i].Status != models.StatusCompleted {
			continue
		}
		d := hist[i].Duration()
		stats.TotalSessions++
		stats.TotalTime += d
		if d > stats.Longest {
			stats.Longest = d
		}
		if stats.Shortest == 0 || d < stats.Shortest {
			stats.Shortest = d
		}
	}
	if stats.TotalSessions > 0 {
		stats.Average = stats.TotalTime / time.Duration(stats.TotalSessions)
	}
	return stats, nil
}

func (e *Engine) activeSession(project string) (*models.Session, error) {
	hist, err := e.store.LoadHistory(project)
	if err != nil {
		return nil, err
	}
	for i := range hist {
		if hist[i].Active() {
			return &hist[i], nil
		}
	}
	return nil, nil
}
