// Package discovery talks to the node discovery collaborator: the
// companion service that reports which node types exist, their port
// specs and their default params. Only the boundary lives here; the
// discovery itself is the service's job.
package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/spectrakit/pipegraph/pkg/models"
)

const defaultTimeout = 30 * time.Second

// Client fetches node descriptions from a discovery endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a discovery client for a base URL such as
// "http://localhost:9090".
func NewClient(baseURL string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger,
	}
}

// FetchNodes retrieves the full node catalog from the service.
func (c *Client) FetchNodes(ctx context.Context) ([]models.NodeDescription, error) {
	url := c.baseURL + "/nodes"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create discovery request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("discovery request failed: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d", ErrDiscoveryFailed, url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read discovery response: %w", err)
	}

	var nodes []models.NodeDescription
	if err := json.Unmarshal(body, &nodes); err != nil {
		return nil, fmt.Errorf("failed to decode discovery response: %w", err)
	}

	c.logger.Info("Discovered node types", "count", len(nodes), "url", url)

	return nodes, nil
}
