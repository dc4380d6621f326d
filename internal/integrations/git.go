package integrations

import (
	"context"
	"os/exec"
	"strings"
)

// Git reads repository state by shelling out to the git binary.
type Git struct{}

var _ VCSProvider = Git{}

// Status returns the branch, last commit and dirty flag for dir, or
// ok=false when git is missing or dir is not inside a repository.
func (Git) Status(ctx context.Context, dir string) (*VCSStatus, bool) {
	if !isGitRepo(ctx, dir) {
		return nil, false
	}

	branch, err := gitOutput(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return nil, false
	}

	st := &VCSStatus{Branch: branch}

	// A repository without commits still has a branch; hash and
	// message stay empty in that case.
	if hash, err := gitOutput(ctx, dir, "rev-parse", "HEAD"); err == nil {
		st.CommitHash = hash
		if msg, err := gitOutput(ctx, dir, "log", "-1", "--format=%s"); err == nil {
			st.CommitMessage = msg
		}
	}

	porcelain, err := gitOutput(ctx, dir, "status", "--porcelain")
	if err != nil {
		return nil, false
	}
	st.Dirty = porcelain != ""

	return st, true
}

func isGitRepo(ctx context.Context, dir string) bool {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--git-dir")
	cmd.Dir = dir
	return cmd.Run() == nil
}

func gitOutput(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(output)), nil
}
