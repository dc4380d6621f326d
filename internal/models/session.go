package models

import "time"

// SessionStatus is the lifecycle state of a session
type SessionStatus string

const (
	StatusActive    SessionStatus = "active"
	StatusCompleted SessionStatus = "completed"
)

// Session represents one bounded period of work on a project.
// A session is created on start and completed (never deleted) on end;
// per project at most one session may be active at a time.
type Session struct {
	ID          string        `json:"id"`
	ProjectName string        `json:"project_name"`
	StartedAt   time.Time     `json:"started_at"`
	EndedAt     *time.Time    `json:"ended_at,omitempty"`
	Description string        `json:"description,omitempty"`
	Summary     string        `json:"summary,omitempty"`
	NextAction  string        `json:"next_action,omitempty"`
	Status      SessionStatus `json:"status"`
}

// Active reports whether the session is still running.
func (s *Session) Active() bool {
	return s.Status == StatusActive
}

// Duration returns the elapsed session time. For an active session
// it is the time elapsed since start.
func (s *Session) Duration() time.Duration {
	if s.EndedAt == nil {
		return time.Since(s.StartedAt)
	}
	return s.EndedAt.Sub(s.StartedAt)
}
