package models

import "time"

// Snapshot is an immutable rendering of a session's context at the
// moment the session ended.
type Snapshot struct {
	ProjectName string
	CreatedAt   time.Time
	Content     string
	// Name is the filename stem under snapshots/, set by the storage
	// layer when the snapshot is written or read back.
	Name string
}

// SnapshotName generates the snapshot filename stem from its timestamp.
// Format: YYYYMMDD_HHMMSS, so lexicographic order equals chronological order.
func SnapshotName(t time.Time) string {
	return t.Format("20060102_150405")
}

// ParseSnapshotName parses a snapshot filename stem back into a timestamp.
// Disambiguation suffixes ("_1", "_2") appended on same-second collisions
// must be stripped by the caller first.
func ParseSnapshotName(name string) (time.Time, error) {
	return time.ParseInLocation("20060102_150405", name, time.Local)
}
