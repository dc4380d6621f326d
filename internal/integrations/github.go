package integrations

import (
	"context"
	"encoding/json"
	"os/exec"
	"strconv"
	"strings"
)

// GitHub lists open issues through the gh CLI.
type GitHub struct {
	// Limit caps the number of issues fetched. Zero means 5, matching
	// what fits in a snapshot without drowning it.
	Limit int
}

var _ IssueProvider = GitHub{}

type ghIssue struct {
	Number    int    `json:"number"`
	Title     string `json:"title"`
	Assignees []struct {
		Login string `json:"login"`
	} `json:"assignees"`
}

// OpenIssues fetches open issues for the repository in dir. ok=false
// when gh is missing, the repo has no GitHub remote, or the call fails.
func (g GitHub) OpenIssues(ctx context.Context, dir string) ([]Issue, bool) {
	if _, err := exec.LookPath("gh"); err != nil {
		return nil, false
	}

	limit := g.Limit
	if limit <= 0 {
		limit = 5
	}

	cmd := exec.CommandContext(ctx, "gh", "issue", "list",
		"--state", "open",
		"--limit", strconv.Itoa(limit),
		"--json", "number,title,assignees")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return nil, false
	}

	var raw []ghIssue
	if err := json.Unmarshal(output, &raw); err != nil {
		return nil, false
	}

	login := ghLogin(ctx, dir)

	issues := make([]Issue, 0, len(raw))
	for _, r := range raw {
		issue := Issue{
			ID:    "#" + strconv.Itoa(r.Number),
			Title: r.Title,
		}
		for _, a := range r.Assignees {
			if login != "" && strings.EqualFold(a.Login, login) {
				issue.AssignedToMe = true
			}
		}
		issues = append(issues, issue)
	}
	return issues, true
}

// ghLogin returns the authenticated user's login, or "" when that
// cannot be determined. Assignment marking degrades with it.
func ghLogin(ctx context.Context, dir string) string {
	cmd := exec.CommandContext(ctx, "gh", "api", "user", "--jq", ".login")
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}
