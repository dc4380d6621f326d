package integrations

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GoTest runs the project's Go tests and counts per-package results.
type GoTest struct{}

var _ TestProvider = GoTest{}

// Run executes `go test ./...` in dir. Passed/Failed count packages,
// which is what a quick end-of-session health check needs. ok=false
// when the directory has no Go module or the toolchain is missing.
func (GoTest) Run(ctx context.Context, dir string) (*TestResult, bool) {
	if _, err := os.Stat(filepath.Join(dir, "go.mod")); err != nil {
		return nil, false
	}
	if _, err := exec.LookPath("go"); err != nil {
		return nil, false
	}

	cmd := exec.CommandContext(ctx, "go", "test", "./...")
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if ctx.Err() != nil {
		return nil, false
	}
	// A non-zero exit with no parseable output means the tests never
	// ran (build failure, bad module); that is "unavailable".
	res := parseGoTestOutput(output)
	if res.Passed == 0 && res.Failed == 0 && err != nil {
		return nil, false
	}
	return res, true
}

func parseGoTestOutput(output []byte) *TestResult {
	res := &TestResult{}
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "ok  "):
			res.Passed++
		case strings.HasPrefix(line, "FAIL\t"):
			res.Failed++
		}
	}
	if res.Failed > 0 {
		res.Status = "failing"
	} else {
		res.Status = "passing"
	}
	return res
}
