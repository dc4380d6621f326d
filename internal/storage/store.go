package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Wwwoper/session-manager/internal/models"
)

// IOError wraps an underlying I/O failure with the operation and path
// that produced it. Missing files are never IOErrors; they read as zero
// values. Corrupt files always are.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Store handles all on-disk persistence under a single root directory:
//
//	<root>/config.json                       project registry
//	<root>/projects/<name>/sessions.json     session history
//	<root>/projects/<name>/PROJECT.md        context document
//	<root>/projects/<name>/snapshots/<ts>.md immutable snapshots
type Store struct {
	root string
}

// NewStore creates a store rooted at the given directory. The directory
// is created lazily on first write.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the store's root directory.
func (s *Store) Root() string { return s.root }

func (s *Store) registryPath() string {
	return filepath.Join(s.root, "config.json")
}

// ProjectDir returns the data directory for a project.
func (s *Store) ProjectDir(name string) string {
	return filepath.Join(s.root, "projects", name)
}

func (s *Store) sessionsPath(name string) string {
	return filepath.Join(s.ProjectDir(name), "sessions.json")
}

func (s *Store) snapshotsDir(name string) string {
	return filepath.Join(s.ProjectDir(name), "snapshots")
}

func (s *Store) contextPath(name string) string {
	return filepath.Join(s.ProjectDir(name), "PROJECT.md")
}

type registryFile struct {
	Projects []models.Project `json:"projects"`
}

type historyFile struct {
	Sessions []models.Session `json:"sessions"`
}

// LoadRegistry reads the project registry. A missing registry is an
// empty one; a corrupt registry is an IOError.
func (s *Store) LoadRegistry() ([]models.Project, error) {
	var reg registryFile
	found, err := s.loadJSON(s.registryPath(), &reg)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return reg.Projects, nil
}

// SaveRegistry writes the project registry atomically.
func (s *Store) SaveRegistry(projects []models.Project) error {
	return s.saveJSON(s.registryPath(), registryFile{Projects: projects})
}

// LoadHistory reads the full session history for a project, ordered by
// start time ascending (the order sessions were appended).
func (s *Store) LoadHistory(project string) ([]models.Session, error) {
	var hist historyFile
	found, err := s.loadJSON(s.sessionsPath(project), &hist)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return hist.Sessions, nil
}

// AppendSession appends a session to the project's history. The history
// file is small and rewritten atomically as a whole.
func (s *Store) AppendSession(project string, sess models.Session) error {
	hist, err := s.LoadHistory(project)
	if err != nil {
		return err
	}
	hist = append(hist, sess)
	return s.saveJSON(s.sessionsPath(project), historyFile{Sessions: hist})
}

// UpdateSession replaces the stored session with the same ID.
func (s *Store) UpdateSession(project string, sess models.Session) error {
	hist, err := s.LoadHistory(project)
	if err != nil {
		return err
	}
	for i := range hist {
		if hist[i].ID == sess.ID {
			hist[i] = sess
			return s.saveJSON(s.sessionsPath(project), historyFile{Sessions: hist})
		}
	}
	return &IOError{Op: "update", Path: s.sessionsPath(project), Err: fmt.Errorf("session %s not found", sess.ID)}
}

// WriteSnapshot writes an immutable snapshot file and returns the
// filename stem it was stored under. Two snapshots within the same
// second get a disambiguating suffix so names stay unique and keep
// sorting in creation order.
func (s *Store) WriteSnapshot(project string, snap *models.Snapshot) (string, error) {
	dir := s.snapshotsDir(project)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &IOError{Op: "mkdir", Path: dir, Err: err}
	}

	name := models.SnapshotName(snap.CreatedAt)
	for i := 1; ; i++ {
		path := filepath.Join(dir, name+".md")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		// Zero-padded so names keep sorting in creation order past
		// nine same-second collisions.
		name = fmt.Sprintf("%s_%02d", models.SnapshotName(snap.CreatedAt), i)
	}

	path := filepath.Join(dir, name+".md")
	if err := os.WriteFile(path, []byte(snap.Content), 0644); err != nil {
		return "", &IOError{Op: "write", Path: path, Err: err}
	}
	snap.Name = name
	return name, nil
}

// LatestSnapshot returns the most recent snapshot for a project, or nil
// if none exists. Snapshot filenames sort chronologically by design.
func (s *Store) LatestSnapshot(project string) (*models.Snapshot, error) {
	names, err := s.ListSnapshots(project)
	if err != nil || len(names) == 0 {
		return nil, err
	}
	return s.ReadSnapshot(project, names[len(names)-1])
}

// ListSnapshots returns the snapshot filename stems for a project in
// chronological (lexicographic) order.
func (s *Store) ListSnapshots(project string) ([]string, error) {
	entries, err := os.ReadDir(s.snapshotsDir(project))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, &IOError{Op: "readdir", Path: s.snapshotsDir(project), Err: err}
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(names)
	return names, nil
}

// ReadSnapshot reads a snapshot by its filename stem.
func (s *Store) ReadSnapshot(project, name string) (*models.Snapshot, error) {
	path := filepath.Join(s.snapshotsDir(project), name+".md")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}

	// Strip a collision suffix before parsing the timestamp.
	stem := name
	if t, err := models.ParseSnapshotName(stem); err == nil {
		return &models.Snapshot{ProjectName: project, CreatedAt: t, Content: string(data), Name: name}, nil
	}
	if i := strings.LastIndex(stem, "_"); i > 0 {
		if t, err := models.ParseSnapshotName(stem[:i]); err == nil {
			return &models.Snapshot{ProjectName: project, CreatedAt: t, Content: string(data), Name: name}, nil
		}
	}
	return nil, &IOError{Op: "read", Path: path, Err: fmt.Errorf("unrecognized snapshot name %q", name)}
}

// WriteContextDocument overwrites the project's PROJECT.md.
func (s *Store) WriteContextDocument(project, content string) error {
	return s.writeFileAtomic(s.contextPath(project), []byte(content))
}

// ReadContextDocument reads the project's PROJECT.md, or "" if it does
// not exist yet.
func (s *Store) ReadContextDocument(project string) (string, error) {
	data, err := os.ReadFile(s.contextPath(project))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", &IOError{Op: "read", Path: s.contextPath(project), Err: err}
	}
	return string(data), nil
}

// loadJSON reads a JSON file into v. Returns false when the file does
// not exist.
func (s *Store) loadJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, &IOError{Op: "read", Path: path, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, &IOError{Op: "parse", Path: path, Err: err}
	}
	return true, nil
}

func (s *Store) saveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &IOError{Op: "marshal", Path: path, Err: err}
	}
	return s.writeFileAtomic(path, append(data, '\n'))
}

// writeFileAtomic writes to a temporary file in the target directory
// and renames it into place, so a crash mid-write leaves either the old
// or the fully new file, never a partial one.
func (s *Store) writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &IOError{Op: "mkdir", Path: dir, Err: err}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return &IOError{Op: "write", Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &IOError{Op: "rename", Path: path, Err: err}
	}
	return nil
}
