package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Wwwoper/session-manager/internal/session"
	"github.com/Wwwoper/session-manager/internal/snapshot"
)

var (
	endProject string
	endSummary string
	endNext    string
)

var endCmd = &cobra.Command{
	Use:   "end",
	Short: "End the active work session",
	Long: `End the active session for a project, recording a summary and the
next concrete action, then write a context snapshot and refresh
PROJECT.md.

The session completes even if the snapshot cannot be written; the
snapshot failure is reported as a warning.

Examples:
  session end --summary "fixed the uploader race" --next "add a regression test"
  session end -p backend -s "reviewed PR" -n "merge after CI"`,
	Args: cobra.NoArgs,
	RunE: runEnd,
}

func init() {
	rootCmd.AddCommand(endCmd)

	endCmd.Flags().StringVarP(&endProject, "project", "p", "", "Project name or alias")
	endCmd.Flags().StringVarP(&endSummary, "summary", "s", "", "What was accomplished")
	endCmd.Flags().StringVarP(&endNext, "next", "n", "", "Next concrete action when resuming")
}

func runEnd(cmd *cobra.Command, args []string) error {
	store := newStore()
	reg := newRegistry(store)

	project, err := reg.Resolve(endProject)
	if err != nil {
		return err
	}

	engine := newEngine(store, reg)
	sess, err := engine.End(project, endSummary, endNext)

	var snapErr *session.SnapshotError
	if errors.As(err, &snapErr) {
		// The session is completed and persisted; only the context
		// artifact is stale.
		fmt.Fprintf(os.Stderr, "Warning: %v\n", snapErr)
		err = nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("✓ Session ended: %s\n", project.Name)
	fmt.Printf("  Duration: %s\n", snapshot.FormatDuration(sess.Duration()))
	if endSummary != "" {
		fmt.Printf("  Summary: %s\n", endSummary)
	}
	if endNext != "" {
		fmt.Printf("  Next action: %s\n", endNext)
	}
	return nil
}
