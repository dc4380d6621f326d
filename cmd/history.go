package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Wwwoper/session-manager/internal/config"
	"github.com/Wwwoper/session-manager/internal/snapshot"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [project]",
	Short: "Show past sessions, newest first",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Maximum number of sessions to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	store := newStore()
	reg := newRegistry(store)

	project, err := resolveProject(reg, args)
	if err != nil {
		return err
	}

	limit := historyLimit
	if limit <= 0 {
		limit = config.DefaultHistoryLimit()
	}

	engine := newEngine(store, reg)
	sessions, err := engine.History(project, limit)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Printf("No sessions recorded for %s\n", project.Name)
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("History: %s (%d session(s))", project.Name, len(sessions))))
	fmt.Println()
	for _, s := range sessions {
		marker := "✓"
		if s.Active() {
			marker = "●"
		}
		fmt.Printf("  %s %s  %s\n", marker, s.StartedAt.Format("2006-01-02 15:04"), snapshot.FormatDuration(s.Duration()))
		if s.Description != "" {
			fmt.Printf("      Description: %s\n", s.Description)
		}
		if s.Summary != "" {
			fmt.Printf("      Summary: %s\n", s.Summary)
		}
		if s.NextAction != "" {
			fmt.Printf("      Next: %s\n", s.NextAction)
		}
		fmt.Println()
	}
	return nil
}
