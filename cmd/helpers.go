package cmd

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Wwwoper/session-manager/internal/config"
	"github.com/Wwwoper/session-manager/internal/integrations"
	"github.com/Wwwoper/session-manager/internal/models"
	"github.com/Wwwoper/session-manager/internal/registry"
	"github.com/Wwwoper/session-manager/internal/session"
	"github.com/Wwwoper/session-manager/internal/snapshot"
	"github.com/Wwwoper/session-manager/internal/storage"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

func newStore() *storage.Store {
	return storage.NewStore(config.StorageRoot())
}

func newRegistry(store *storage.Store) *registry.Registry {
	return registry.New(store)
}

func newEngine(store *storage.Store, reg *registry.Registry) *session.Engine {
	var providers integrations.Providers
	if config.IntegrationsEnabled() {
		providers = integrations.Providers{
			VCS:    integrations.Git{},
			Tests:  integrations.GoTest{},
			Issues: integrations.GitHub{Limit: config.IssueLimit()},
		}
	}
	builder := snapshot.NewBuilder(store, providers, config.IntegrationTimeout())
	return session.NewEngine(store, reg, builder)
}

// resolveProject resolves the optional first positional argument as a
// project identifier, falling back to working-directory detection.
func resolveProject(reg *registry.Registry, args []string) (*models.Project, error) {
	identifier := ""
	if len(args) > 0 {
		identifier = args[0]
	}
	return reg.Resolve(identifier)
}
