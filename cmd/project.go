package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var projectAddAlias string

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage the project registry",
}

var projectAddCmd = &cobra.Command{
	Use:   "add <name> <path>",
	Short: "Register a project",
	Long: `Register a project under a unique name.

The path must be an existing directory and is stored in absolute form.
An optional alias gives the project a short second identifier.

Examples:
  session project add backend ~/work/backend
  session project add frontend ~/work/frontend --alias fe`,
	Args: cobra.ExactArgs(2),
	RunE: runProjectAdd,
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered projects, most recently used first",
	RunE:  runProjectList,
}

var projectInfoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show details for a registered project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectInfo,
}

var projectRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a project from the registry",
	Long: `Remove a project from the registry.

Session history and snapshots on disk are kept; only the registry
entry goes away.`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectRemove,
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectAddCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectInfoCmd)
	projectCmd.AddCommand(projectRemoveCmd)

	projectAddCmd.Flags().StringVar(&projectAddAlias, "alias", "", "Short alias for the project")
}

func runProjectAdd(cmd *cobra.Command, args []string) error {
	store := newStore()
	reg := newRegistry(store)

	project, err := reg.Register(args[0], args[1], projectAddAlias)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Registered project: %s\n", project.Name)
	fmt.Printf("  Path: %s\n", project.Path)
	if project.Alias != "" {
		fmt.Printf("  Alias: %s\n", project.Alias)
	}
	return nil
}

func runProjectList(cmd *cobra.Command, args []string) error {
	store := newStore()
	reg := newRegistry(store)

	projects, err := reg.List()
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Println("No projects registered")
		fmt.Println("Add one with: session project add <name> <path>")
		return nil
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Registered projects (%d)", len(projects))))
	fmt.Println()
	for _, p := range projects {
		fmt.Printf("  %s\n", headerStyle.Render(p.Name))
		if p.Alias != "" {
			fmt.Printf("    Alias:     %s\n", p.Alias)
		}
		fmt.Printf("    Path:      %s\n", p.Path)
		fmt.Printf("    Last used: %s\n", faintStyle.Render(p.LastUsed.Format("2006-01-02 15:04")))
		fmt.Println()
	}
	return nil
}

func runProjectInfo(cmd *cobra.Command, args []string) error {
	store := newStore()
	reg := newRegistry(store)

	project, err := reg.Resolve(args[0])
	if err != nil {
		return err
	}

	hist, err := store.LoadHistory(project.Name)
	if err != nil {
		return err
	}
	snapshots, err := store.ListSnapshots(project.Name)
	if err != nil {
		return err
	}

	active := "none"
	for i := range hist {
		if hist[i].Active() {
			active = hist[i].ID
		}
	}

	fmt.Println(headerStyle.Render("Project: " + project.Name))
	fmt.Println()
	fmt.Printf("Path:            %s\n", project.Path)
	if project.Alias != "" {
		fmt.Printf("Alias:           %s\n", project.Alias)
	}
	fmt.Printf("Registered:      %s\n", project.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("Last used:       %s\n", project.LastUsed.Format("2006-01-02 15:04"))
	fmt.Printf("Total sessions:  %d\n", len(hist))
	fmt.Printf("Active session:  %s\n", active)
	fmt.Printf("Total snapshots: %d\n", len(snapshots))
	if len(snapshots) > 0 {
		fmt.Printf("Latest snapshot: %s\n", snapshots[len(snapshots)-1])
	}
	return nil
}

func runProjectRemove(cmd *cobra.Command, args []string) error {
	store := newStore()
	reg := newRegistry(store)

	// Resolve first so an alias works too.
	var name string
	if project, err := reg.Resolve(args[0]); err == nil {
		name = project.Name
	} else {
		name = args[0]
	}

	if err := reg.Remove(name); err != nil {
		return err
	}

	fmt.Printf("✓ Removed project: %s\n", name)
	fmt.Println("  Session history and snapshots were kept on disk")
	return nil
}
