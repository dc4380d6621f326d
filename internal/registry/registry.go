package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Wwwoper/session-manager/internal/models"
	"github.com/Wwwoper/session-manager/internal/storage"
)

var (
	// ErrDuplicateName is returned when registering a name that already exists.
	ErrDuplicateName = errors.New("project name already registered")
	// ErrDuplicateAlias is returned when registering an alias that already exists.
	ErrDuplicateAlias = errors.New("project alias already registered")
	// ErrInvalidPath is returned when a project path does not exist or is not a directory.
	ErrInvalidPath = errors.New("project path does not exist or is not a directory")
	// ErrInvalidName is returned when a project name or alias is empty or
	// contains characters other than letters, digits, '-' or '_'. Names
	// become path components under the storage root, so anything else
	// (separators, dots) is rejected outright.
	ErrInvalidName = errors.New("invalid project name")
	// ErrProjectNotFound is returned when no project matches the given identifier.
	ErrProjectNotFound = errors.New("project not found")
	// ErrAmbiguousProject is returned when no identifier was given and the
	// working directory does not determine a project.
	ErrAmbiguousProject = errors.New("no project given and none matches the working directory")
)

// Registry maps project names and aliases to filesystem paths,
// persisted through the storage layer.
type Registry struct {
	store *storage.Store
}

// New creates a registry backed by the given store.
func New(store *storage.Store) *Registry {
	return &Registry{store: store}
}

// Register adds a project to the registry. Name and alias must be
// valid identifiers, and the path is normalized to absolute form and
// must be an existing directory. On any validation failure the
// registry on disk is left unchanged.
func (r *Registry) Register(name, path, alias string) (*models.Project, error) {
	if !validIdentifier(name) {
		return nil, fmt.Errorf("%w: %q (use letters, digits, '-' or '_')", ErrInvalidName, name)
	}
	if alias != "" && !validIdentifier(alias) {
		return nil, fmt.Errorf("%w: alias %q (use letters, digits, '-' or '_')", ErrInvalidName, alias)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, path)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPath, abs)
	}

	unlock, err := r.store.LockRegistry()
	if err != nil {
		return nil, err
	}
	defer unlock()

	projects, err := r.store.LoadRegistry()
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if p.Name == name {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
		}
		if alias != "" && (p.Alias == alias || p.Name == alias) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAlias, alias)
		}
	}

	now := time.Now()
	project := models.Project{
		Name:      name,
		Path:      abs,
		Alias:     alias,
		CreatedAt: now,
		LastUsed:  now,
	}
	projects = append(projects, project)
	if err := r.store.SaveRegistry(projects); err != nil {
		return nil, err
	}
	return &project, nil
}

// Resolve finds a project by identifier, matching name first and alias
// second. With an empty identifier the working directory (or an
// ancestor match) determines the project.
func (r *Registry) Resolve(identifier string) (*models.Project, error) {
	projects, err := r.store.LoadRegistry()
	if err != nil {
		return nil, err
	}

	if identifier != "" {
		for i := range projects {
			if projects[i].Name == identifier {
				return &projects[i], nil
			}
		}
		for i := range projects {
			if projects[i].Alias == identifier {
				return &projects[i], nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, identifier)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, ErrAmbiguousProject
	}
	if p := Detect(projects, cwd); p != nil {
		return p, nil
	}
	return nil, ErrAmbiguousProject
}

// Detect matches a working directory against registered project paths.
// A project matches when dir is the project path or lies beneath it.
// With nested project paths the longest (most specific) path wins;
// matching is deterministic and has no side effects.
func Detect(projects []models.Project, dir string) *models.Project {
	dir = filepath.Clean(dir)

	var best *models.Project
	for i := range projects {
		root := filepath.Clean(projects[i].Path)
		if dir != root && !withinDir(root, dir) {
			continue
		}
		if best == nil || len(root) > len(filepath.Clean(best.Path)) {
			best = &projects[i]
		}
	}
	return best
}

// validIdentifier reports whether s is usable as a project name or
// alias: non-empty, letters, digits, hyphen and underscore only.
func validIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

func withinDir(root, dir string) bool {
	rel, err := filepath.Rel(root, dir)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// List returns all registered projects sorted by last use, most recent
// first.
func (r *Registry) List() ([]models.Project, error) {
	projects, err := r.store.LoadRegistry()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].LastUsed.After(projects[j].LastUsed)
	})
	return projects, nil
}

// Remove deletes a project from the registry. Session history and
// snapshots on disk are kept; data retention wins over tidiness.
func (r *Registry) Remove(name string) error {
	unlock, err := r.store.LockRegistry()
	if err != nil {
		return err
	}
	defer unlock()

	projects, err := r.store.LoadRegistry()
	if err != nil {
		return err
	}
	for i, p := range projects {
		if p.Name == name {
			projects = append(projects[:i], projects[i+1:]...)
			return r.store.SaveRegistry(projects)
		}
	}
	return fmt.Errorf("%w: %s", ErrProjectNotFound, name)
}

// Touch updates a project's last-used timestamp.
func (r *Registry) Touch(name string) error {
	unlock, err := r.store.LockRegistry()
	if err != nil {
		return err
	}
	defer unlock()

	projects, err := r.store.LoadRegistry()
	if err != nil {
		return err
	}
	for i := range projects {
		if projects[i].Name == name {
			projects[i].LastUsed = time.Now()
			return r.store.SaveRegistry(projects)
		}
	}
	return fmt.Errorf("%w: %s", ErrProjectNotFound, name)
}
