package snapshot

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Wwwoper/session-manager/internal/integrations"
	"github.com/Wwwoper/session-manager/internal/models"
)

const timeLayout = "2006-01-02 15:04:05"

// Render produces the snapshot document for a session. The output is
// deterministic for a given session and collaborator data: timestamps
// come from the session, not from the clock.
func Render(sess *models.Session, data integrations.Data) string {
	var b strings.Builder

	ended := "n/a"
	if sess.EndedAt != nil {
		ended = sess.EndedAt.Format(timeLayout)
	}

	fmt.Fprintf(&b, "# Session Context: %s\n\n", sess.ProjectName)
	fmt.Fprintf(&b, "**Created:** %s\n", ended)
	fmt.Fprintf(&b, "**Session:** %s\n\n", sess.ID)

	b.WriteString("## Session\n\n")
	fmt.Fprintf(&b, "- Started: %s\n", sess.StartedAt.Format(timeLayout))
	fmt.Fprintf(&b, "- Ended: %s\n", ended)
	fmt.Fprintf(&b, "- Duration: %s\n", FormatDuration(sess.Duration()))
	if sess.Description != "" {
		fmt.Fprintf(&b, "- Description: %s\n", sess.Description)
	}
	b.WriteString("\n")

	b.WriteString("## Next Action\n\n")
	if sess.NextAction != "" {
		b.WriteString(sess.NextAction + "\n")
	} else {
		b.WriteString("_none recorded_\n")
	}
	b.WriteString("\n")

	b.WriteString("## Summary\n\n")
	if sess.Summary != "" {
		b.WriteString(sess.Summary + "\n")
	} else {
		b.WriteString("_no summary provided_\n")
	}

	if data.VCS != nil {
		b.WriteString("\n## Git\n\n")
		fmt.Fprintf(&b, "- Branch: `%s`\n", data.VCS.Branch)
		if data.VCS.CommitHash != "" {
			hash := data.VCS.CommitHash
			if len(hash) > 8 {
				hash = hash[:8]
			}
			fmt.Fprintf(&b, "- Last Commit: `%s` %s\n", hash, data.VCS.CommitMessage)
		}
		if data.VCS.Dirty {
			b.WriteString("- Working tree: dirty\n")
		} else {
			b.WriteString("- Working tree: clean\n")
		}
	}

	if data.Tests != nil {
		b.WriteString("\n## Tests\n\n")
		fmt.Fprintf(&b, "- Passed: %d\n", data.Tests.Passed)
		fmt.Fprintf(&b, "- Failed: %d\n", data.Tests.Failed)
		fmt.Fprintf(&b, "- Status: %s\n", data.Tests.Status)
	}

	if data.Issues != nil {
		b.WriteString("\n## Open Issues\n\n")
		if len(data.Issues) == 0 {
			b.WriteString("_none open_\n")
		}
		for _, issue := range data.Issues {
			if issue.AssignedToMe {
				fmt.Fprintf(&b, "- %s %s (assigned to me)\n", issue.ID, issue.Title)
			} else {
				fmt.Fprintf(&b, "- %s %s\n", issue.ID, issue.Title)
			}
		}
	}

	return b.String()
}

var nextActionRe = regexp.MustCompile(`(?s)## Next Action\n\n(.+?)(?:\n\n##|\z)`)

// ParseNextAction extracts the next-action block from a rendered
// snapshot or context document. Returns "" when absent or never set.
func ParseNextAction(content string) string {
	m := nextActionRe.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	next := strings.TrimSpace(m[1])
	if next == "_none recorded_" {
		return ""
	}
	return next
}

// FormatDuration renders a duration the way humans read it: "45s",
// "12m 30s", "2h 5m".
func FormatDuration(d time.Duration) string {
	seconds := int(d.Seconds())
	if seconds < 0 {
		seconds = 0
	}
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}

	minutes := seconds / 60
	seconds %= 60
	if minutes < 60 {
		if seconds > 0 {
			return fmt.Sprintf("%dm %ds", minutes, seconds)
		}
		return fmt.Sprintf("%dm", minutes)
	}

	hours := minutes / 60
	minutes %= 60
	if minutes > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dh", hours)
}
