package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Wwwoper/session-manager/internal/snapshot"
)

var startProject string

var startCmd = &cobra.Command{
	Use:   "start [description]",
	Short: "Start a work session",
	Long: `Start a new work session for a project.

The project comes from --project, or is detected from the working
directory. Remaining arguments become the session description.

Starting shows the previous session's next action, so you can pick up
where you left off.

Examples:
  session start
  session start fix the flaky uploader test
  session start --project backend review PR feedback`,
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)

	startCmd.Flags().StringVarP(&startProject, "project", "p", "", "Project name or alias")
}

func runStart(cmd *cobra.Command, args []string) error {
	store := newStore()
	reg := newRegistry(store)

	project, err := reg.Resolve(startProject)
	if err != nil {
		return err
	}

	description := strings.Join(args, " ")

	engine := newEngine(store, reg)
	sess, err := engine.Start(project, description)
	if err != nil {
		return err
	}

	// Best-effort resume context from the latest snapshot; a failed
	// read never blocks the session that just started.
	if doc, err := store.ReadContextDocument(project.Name); err == nil && doc != "" {
		if next := snapshot.ParseNextAction(doc); next != "" {
			fmt.Println(headerStyle.Render("Resume here:"))
			fmt.Printf("  %s\n\n", next)
		}
	}

	fmt.Printf("✓ Session started: %s\n", project.Name)
	fmt.Printf("  Session ID: %s\n", sess.ID[:8])
	if description != "" {
		fmt.Printf("  Description: %s\n", description)
	}
	return nil
}
