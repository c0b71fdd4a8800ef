package cmd

import (
	"github.com/spectrakit/pipegraph/pkg/settings"
)

// OpenSettings returns the editor settings store at its default
// location.
func OpenSettings() (*settings.Store, error) {
	path, err := settings.DefaultPath()
	if err != nil {
		return nil, err
	}

	return settings.NewStore(path), nil
}

// ResolveNodeSource fills the catalog path and discovery URL from the
// persisted settings when neither flag was given. Explicit flags always
// win; settings that cannot be read resolve to the flag values as-is.
func ResolveNodeSource(store *settings.Store, catalogPath, discoveryURL string) (string, string) {
	if catalogPath != "" || discoveryURL != "" {
		return catalogPath, discoveryURL
	}

	stored, err := store.Load()
	if err != nil {
		return catalogPath, discoveryURL
	}

	return stored.CatalogPath, stored.DiscoveryURL
}
