// Package integrations provides best-effort collaborator data from
// external tools: version control state, test results and open issues.
// Every provider reports availability explicitly; a missing tool, a
// non-zero exit or a timeout all read as "unavailable" and never as an
// error. The core depends only on the interfaces here.
package integrations

import (
	"context"
	"time"
)

// VCSStatus describes the version-control state of a directory.
type VCSStatus struct {
	Branch        string
	CommitHash    string
	CommitMessage string
	Dirty         bool
}

// TestResult describes a test run in a directory.
type TestResult struct {
	Passed int
	Failed int
	Status string // "passing" or "failing"
}

// Issue is an open issue on the project's tracker.
type Issue struct {
	ID           string
	Title        string
	AssignedToMe bool
}

// VCSProvider reports version-control status for a directory, or
// ok=false when unavailable.
type VCSProvider interface {
	Status(ctx context.Context, dir string) (*VCSStatus, bool)
}

// TestProvider runs the project's tests, or reports ok=false when
// unavailable.
type TestProvider interface {
	Run(ctx context.Context, dir string) (*TestResult, bool)
}

// IssueProvider lists open issues, or reports ok=false when unavailable.
type IssueProvider interface {
	OpenIssues(ctx context.Context, dir string) ([]Issue, bool)
}

// Providers bundles the optional collaborators. Any field may be nil.
type Providers struct {
	VCS    VCSProvider
	Tests  TestProvider
	Issues IssueProvider
}

// Data is the collected collaborator state. Nil fields mean the
// corresponding provider was absent or unavailable.
type Data struct {
	VCS    *VCSStatus
	Tests  *TestResult
	Issues []Issue
}

// Collect gathers data from all configured providers, bounding each
// one by the given timeout so a hung tool cannot block the core.
func Collect(dir string, p Providers, timeout time.Duration) Data {
	var data Data

	if p.VCS != nil {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		if st, ok := p.VCS.Status(ctx, dir); ok {
			data.VCS = st
		}
		cancel()
	}
	if p.Tests != nil {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		if res, ok := p.Tests.Run(ctx, dir); ok {
			data.Tests = res
		}
		cancel()
	}
	if p.Issues != nil {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		if issues, ok := p.Issues.OpenIssues(ctx, dir); ok {
			data.Issues = issues
		}
		cancel()
	}
	return data
}
