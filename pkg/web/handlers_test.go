package web_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/spectrakit/pipegraph/pkg/models"
	"github.com/spectrakit/pipegraph/pkg/registry"
	"github.com/spectrakit/pipegraph/pkg/testutil"
	"github.com/spectrakit/pipegraph/pkg/web"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	reg := registry.NewRegistry(logger)
	reg.RegisterAll([]models.NodeDescription{
		testutil.CreateTestDescription(
			testutil.WithClass("CubeLoader", "spectral.node.data.CubeLoader"),
			testutil.WithInputs(),
			testutil.WithOutputs(models.PortSpecEntry{
				Name: "cube", DType: "float32", Shape: []any{-1, -1, -1},
			}),
		),
		testutil.CreateTestDescription(
			testutil.WithClass("PCA", "spectral.node.pca.PCA"),
			testutil.WithInputs(models.PortSpecEntry{
				Name: "cube", DType: "float32", Shape: []any{-1, -1, -1},
			}),
			testutil.WithOutputs(models.PortSpecEntry{Name: "transformed", DType: "float32"}),
		),
		testutil.CreateTestDescription(
			testutil.WithClass("RXDetector", "plugins.anomaly.RXDetector"),
			testutil.WithPlugin("anomaly-pack"),
		),
	})

	handlers := web.NewAPIHandlers(logger, reg, otel.Tracer("test"))

	app := fiber.New()

	nodes := app.Group("/nodes")
	nodes.Get("/", handlers.ListNodeTypes)
	nodes.Get("/categories", handlers.ListNodeCategories)
	nodes.Get("/:typeId", handlers.GetNodeType)

	pipelines := app.Group("/pipelines")
	pipelines.Post("/validate", handlers.ValidatePipeline)
	pipelines.Post("/layout", handlers.LayoutPipeline)
	pipelines.Post("/normalize", handlers.NormalizePipeline)

	return app
}

func decodeBody(t *testing.T, resp *http.Response, target any) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, target))
}

func TestAPIHandlers_ListNodeTypes(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/nodes/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Nodes []web.NodeTypeResponse `json:"nodes"`
		Count int                    `json:"count"`
	}
	decodeBody(t, resp, &result)

	assert.Equal(t, 3, result.Count)
	require.Len(t, result.Nodes, 3)
	assert.Equal(t, "spectral.node.data.CubeLoader", result.Nodes[0].TypeID)
}

func TestAPIHandlers_ListNodeTypes_SourceFilter(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/nodes/?source=plugin", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Nodes []web.NodeTypeResponse `json:"nodes"`
		Count int                    `json:"count"`
	}
	decodeBody(t, resp, &result)

	require.Equal(t, 1, result.Count)
	assert.Equal(t, "anomaly-pack", result.Nodes[0].PluginName)
}

func TestAPIHandlers_ListNodeTypes_InvalidSource(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/nodes/?source=cloud", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPIHandlers_ListNodeCategories(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/nodes/categories", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Categories map[string][]web.NodeTypeResponse `json:"categories"`
	}
	decodeBody(t, resp, &result)

	assert.Len(t, result.Categories["Data"], 1)
	assert.Len(t, result.Categories["Anomaly"], 1)
}

func TestAPIHandlers_GetNodeType(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/nodes/spectral.node.pca.PCA", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result web.NodeTypeResponse
	decodeBody(t, resp, &result)

	assert.Equal(t, "PCA", result.DisplayName)
	assert.Contains(t, result.Inputs, "cube")
}

func TestAPIHandlers_GetNodeType_NotFound(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/nodes/spectral.node.custom.Mystery", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

const validPipelineJSON = `{
	"metadata": {"name": "Demo"},
	"nodes": [
		{"class_name": "spectral.node.data.CubeLoader", "name": "Loader"},
		{"class_name": "spectral.node.pca.PCA", "name": "PCA"}
	],
	"connections": [
		{"source": "Loader.outputs.cube", "target": "PCA.inputs.cube"}
	]
}`

func TestAPIHandlers_ValidatePipeline(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/pipelines/validate",
		bytes.NewBufferString(validPipelineJSON))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result web.ValidatePipelineResponse
	decodeBody(t, resp, &result)

	assert.True(t, result.Valid)
	assert.Equal(t, 2, result.Nodes)
	assert.Equal(t, 1, result.Connections)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, "Demo", result.Metadata.Name)
}

func TestAPIHandlers_ValidatePipeline_YAMLBody(t *testing.T) {
	app := setupTestApp(t)

	body := `
metadata:
  name: Demo
nodes:
  - class_name: spectral.node.custom.Mystery
    name: Mystery
`
	req := httptest.NewRequest(http.MethodPost, "/pipelines/validate",
		bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/yaml")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result web.ValidatePipelineResponse
	decodeBody(t, resp, &result)

	assert.False(t, result.Valid)
	assert.Equal(t, 1, result.Nodes)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Missing node classes")
}

func TestAPIHandlers_ValidatePipeline_StructurallyInvalid(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/pipelines/validate",
		bytes.NewBufferString(`{"nodes": [{"class_name": "spectral.node.pca.PCA"}]}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPIHandlers_LayoutPipeline(t *testing.T) {
	app := setupTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/pipelines/layout",
		bytes.NewBufferString(validPipelineJSON))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result web.LayoutPipelineResponse
	decodeBody(t, resp, &result)

	require.Len(t, result.Positions, 2)

	byName := make(map[string]web.NodePosition)
	for _, pos := range result.Positions {
		byName[pos.Name] = pos
	}

	assert.Equal(t, 0, byName["Loader"].Column)
	assert.Equal(t, 1, byName["PCA"].Column)
	assert.Equal(t, 300.0, byName["PCA"].X)
}

func TestAPIHandlers_NormalizePipeline(t *testing.T) {
	app := setupTestApp(t)

	body := `
metadata:
  name: Demo
nodes:
  - class_name: spectral.node.data.CubeLoader
    name: Loader
  - class_name: spectral.node.pca.PCA
    name: PCA
connections:
  - source: Loader.outputs.cube
    target: PCA.inputs.cube
`
	req := httptest.NewRequest(http.MethodPost, "/pipelines/normalize",
		bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/yaml")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	var doc models.PipelineDocument
	decodeBody(t, resp, &doc)

	assert.Equal(t, "Demo", doc.Metadata.Name)
	require.Len(t, doc.Nodes, 2)
	require.Len(t, doc.Connections, 1)
	assert.Equal(t, "Loader.outputs.cube", doc.Connections[0].Source)
}
