package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Wwwoper/session-manager/internal/snapshot"
)

var statusCmd = &cobra.Command{
	Use:   "status [project]",
	Short: "Show the session state of a project",
	Long: `Show whether a session is active and what the latest context
snapshot recorded. Read-only; never blocks on a running mutation.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	store := newStore()
	reg := newRegistry(store)

	project, err := resolveProject(reg, args)
	if err != nil {
		return err
	}

	engine := newEngine(store, reg)
	st, err := engine.Status(project)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render("Project: " + project.Name))
	fmt.Println()

	if st.Active != nil {
		fmt.Println("Session:  active")
		fmt.Printf("Started:  %s (%s ago)\n",
			st.Active.StartedAt.Format("2006-01-02 15:04"),
			snapshot.FormatDuration(st.Active.Duration()))
		if st.Active.Description != "" {
			fmt.Printf("Working on: %s\n", st.Active.Description)
		}
	} else {
		fmt.Println("Session:  none active")
	}

	if st.LastSnapshot != nil {
		fmt.Println()
		fmt.Printf("Last snapshot: %s (%s)\n",
			st.LastSnapshot.Name,
			st.LastSnapshot.CreatedAt.Format("2006-01-02 15:04"))
		if next := snapshot.ParseNextAction(st.LastSnapshot.Content); next != "" {
			fmt.Printf("Next action:   %s\n", next)
		}
	}
	return nil
}
