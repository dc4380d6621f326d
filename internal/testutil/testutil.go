package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// TempStoreRoot creates a temporary storage root for tests. Cleanup is
// registered with t.
func TempStoreRoot(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}

// TempProjectDir creates a temporary directory to register as a
// project path.
func TempProjectDir(t *testing.T) string {
	t.Helper()
	return t.TempDir()
}

// Chdir switches the working directory for the duration of the test.
func Chdir(t *testing.T, dir string) {
	t.Helper()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir to %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWd); err != nil {
			t.Errorf("failed to restore working directory: %v", err)
		}
	})
}

// TempGitRepo creates a temporary git repository with one commit.
// Tests that need the git provider skip when git is unavailable.
type TempGitRepo struct {
	Path string
	T    *testing.T
}

// NewTempGitRepo initializes a git repository under a temp directory.
func NewTempGitRepo(t *testing.T) *TempGitRepo {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := t.TempDir()
	r := &TempGitRepo{Path: dir, T: t}

	r.git("init")
	r.git("config", "user.name", "Test User")
	r.git("config", "user.email", "test@example.com")

	readme := filepath.Join(dir, "README.md")
	if err := os.WriteFile(readme, []byte("# Test Repository\n"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	r.Commit("Initial commit")

	return r
}

// CreateFile writes a file relative to the repository root.
func (r *TempGitRepo) CreateFile(name, content string) {
	r.T.Helper()
	path := filepath.Join(r.Path, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		r.T.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		r.T.Fatalf("failed to create file: %v", err)
	}
}

// Commit stages and commits all changes.
func (r *TempGitRepo) Commit(message string) {
	r.T.Helper()
	r.git("add", ".")
	r.git("commit", "-m", message)
}

func (r *TempGitRepo) git(args ...string) {
	r.T.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Path
	if out, err := cmd.CombinedOutput(); err != nil {
		r.T.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
}
