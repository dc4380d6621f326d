package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/alpkeskin/gotoon"
	"github.com/spf13/cobra"

	"github.com/Wwwoper/session-manager/internal/snapshot"
)

var (
	statsJSON bool
	statsToon bool
)

var statsCmd = &cobra.Command{
	Use:   "stats [project]",
	Short: "Show session statistics for a project",
	Long: `Display aggregate statistics over a project's completed sessions:
total count, total time, and average/longest/shortest durations.

Examples:
  session stats
  session stats backend --json
  session stats backend --toon`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
	statsCmd.Flags().BoolVar(&statsToon, "toon", false, "Output in LLM-friendly toon format")
}

func runStats(cmd *cobra.Command, args []string) error {
	store := newStore()
	reg := newRegistry(store)

	project, err := resolveProject(reg, args)
	if err != nil {
		return err
	}

	engine := newEngine(store, reg)
	stats, err := engine.Stats(project)
	if err != nil {
		return err
	}

	if statsJSON {
		output, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	if statsToon {
		output, err := gotoon.Encode(stats)
		if err != nil {
			return fmt.Errorf("failed to encode toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	fmt.Println(headerStyle.Render("Session statistics: " + project.Name))
	fmt.Println()
	fmt.Printf("Completed sessions: %d\n", stats.TotalSessions)
	if stats.TotalSessions == 0 {
		return nil
	}
	fmt.Printf("Total time:         %s\n", snapshot.FormatDuration(stats.TotalTime))
	fmt.Printf("Average:            %s\n", snapshot.FormatDuration(stats.Average))
	fmt.Printf("Longest:            %s\n", snapshot.FormatDuration(stats.Longest))
	fmt.Printf("Shortest:           %s\n", snapshot.FormatDuration(stats.Shortest))
	return nil
}
