package cmd

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/Wwwoper/session-manager/internal/testutil"
)

// setupTest points the command layer at a throwaway storage root with
// integrations disabled, so command tests never shell out.
func setupTest(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	viper.Reset()
	viper.Set("storage.root", root)
	viper.Set("integrations.enabled", false)
	viper.Set("integrations.timeout_seconds", 5)
	viper.Set("issues.limit", 5)
	viper.Set("history.default_limit", 10)
	t.Cleanup(viper.Reset)

	return root
}

func addTestProject(t *testing.T, name string) string {
	t.Helper()

	dir := testutil.TempProjectDir(t)
	projectAddAlias = ""
	if err := runProjectAdd(nil, []string{name, dir}); err != nil {
		t.Fatalf("failed to add test project: %v", err)
	}
	return dir
}

func TestProjectAddAndList(t *testing.T) {
	setupTest(t)

	dir := testutil.TempProjectDir(t)
	projectAddAlias = "d"
	if err := runProjectAdd(nil, []string{"demo", dir}); err != nil {
		t.Fatalf("project add failed: %v", err)
	}
	projectAddAlias = ""

	if err := runProjectList(nil, nil); err != nil {
		t.Fatalf("project list failed: %v", err)
	}
}

func TestProjectAddDuplicate(t *testing.T) {
	setupTest(t)
	dir := addTestProject(t, "demo")

	projectAddAlias = ""
	if err := runProjectAdd(nil, []string{"demo", dir}); err == nil {
		t.Error("expected error adding duplicate project name")
	}
}

func TestProjectAddInvalidPath(t *testing.T) {
	setupTest(t)

	projectAddAlias = ""
	if err := runProjectAdd(nil, []string{"demo", "/nonexistent/path/xyz"}); err == nil {
		t.Error("expected error for invalid path")
	}
}

func TestProjectInfo(t *testing.T) {
	setupTest(t)
	addTestProject(t, "demo")

	if err := runProjectInfo(nil, []string{"demo"}); err != nil {
		t.Fatalf("project info failed: %v", err)
	}
	if err := runProjectInfo(nil, []string{"missing"}); err == nil {
		t.Error("expected error for unknown project")
	}
}

func TestProjectRemove(t *testing.T) {
	setupTest(t)
	addTestProject(t, "demo")

	if err := runProjectRemove(nil, []string{"demo"}); err != nil {
		t.Fatalf("project remove failed: %v", err)
	}
	if err := runProjectRemove(nil, []string{"demo"}); err == nil {
		t.Error("expected error removing project twice")
	}
}
