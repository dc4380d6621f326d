package config

import (
	"time"

	"github.com/spf13/viper"
)

// StorageRoot returns the root directory for all persisted data.
func StorageRoot() string {
	return viper.GetString("storage.root")
}

// IntegrationsEnabled reports whether collaborator adapters (git,
// tests, issues) should run at all.
func IntegrationsEnabled() bool {
	return viper.GetBool("integrations.enabled")
}

// IntegrationTimeout bounds each collaborator invocation.
func IntegrationTimeout() time.Duration {
	return time.Duration(viper.GetInt("integrations.timeout_seconds")) * time.Second
}

// IssueLimit caps how many open issues a snapshot includes.
func IssueLimit() int {
	return viper.GetInt("issues.limit")
}

// DefaultHistoryLimit is the history length shown when --limit is not given.
func DefaultHistoryLimit() int {
	return viper.GetInt("history.default_limit")
}
