package discovery

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spectrakit/pipegraph/pkg/models"
)

// Static error variables for linter compliance.
var (
	ErrDiscoveryFailed = errors.New("discovery request failed")
)

// LoadCatalogFile reads node descriptions from an offline JSON catalog
// with the same shape the discovery service returns. Used when no
// service connection is configured.
func LoadCatalogFile(path string) ([]models.NodeDescription, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read node catalog: %w", err)
	}

	var nodes []models.NodeDescription
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("failed to decode node catalog: %w", err)
	}

	return nodes, nil
}
