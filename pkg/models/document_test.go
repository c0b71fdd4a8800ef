package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePipelineYAML = `
metadata:
  name: Demo Pipeline
  description: Loads a cube and runs PCA
nodes:
  - class_name: spectral.node.data.CubeLoader
    name: Loader
    params:
      path: /data/scene.cu3
  - class_name: spectral.node.pca.PCA
    name: PCA
    execution_stages: [train, test]
connections:
  - source: Loader.outputs.cube
    target: PCA.inputs.cube
`

func TestParseDocumentYAML_Valid(t *testing.T) {
	doc, err := ParseDocumentYAML([]byte(samplePipelineYAML))
	require.NoError(t, err)

	assert.Equal(t, "Demo Pipeline", doc.Metadata.Name)
	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, "spectral.node.data.CubeLoader", doc.Nodes[0].ClassName)
	assert.Equal(t, "/data/scene.cu3", doc.Nodes[0].Params["path"])
	assert.Equal(t, []string{"train", "test"}, doc.Nodes[1].ExecutionStages)
	require.Len(t, doc.Connections, 1)
	assert.Equal(t, "Loader.outputs.cube", doc.Connections[0].Source)
}

func TestParseDocumentYAML_MalformedInput(t *testing.T) {
	_, err := ParseDocumentYAML([]byte("nodes: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse pipeline YAML")
}

func TestParseDocumentYAML_MissingNodeName(t *testing.T) {
	_, err := ParseDocumentYAML([]byte(`
nodes:
  - class_name: spectral.node.pca.PCA
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pipeline document")
}

func TestParseDocumentJSON_Valid(t *testing.T) {
	doc, err := ParseDocumentJSON([]byte(`{
		"metadata": {"name": "Demo"},
		"nodes": [{"class_name": "spectral.node.pca.PCA", "name": "PCA"}],
		"connections": []
	}`))
	require.NoError(t, err)
	assert.Equal(t, "Demo", doc.Metadata.Name)
	assert.Len(t, doc.Nodes, 1)
}

func TestParseDocumentJSON_MissingConnectionTarget(t *testing.T) {
	_, err := ParseDocumentJSON([]byte(`{
		"nodes": [{"class_name": "spectral.node.pca.PCA", "name": "PCA"}],
		"connections": [{"source": "PCA.outputs.transformed"}]
	}`))
	assert.Error(t, err)
}

func TestPipelineDocument_Validate_EmptyDocument(t *testing.T) {
	doc := &PipelineDocument{}
	assert.NoError(t, doc.Validate())
}

func TestPipelineDocument_ValidateComplete_RequiresMetadataName(t *testing.T) {
	doc := &PipelineDocument{
		Nodes: []NodeEntry{{ClassName: "spectral.node.pca.PCA", Name: "PCA"}},
	}

	err := doc.ValidateComplete()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingMetadataName))

	doc.Metadata.Name = "Demo"
	assert.NoError(t, doc.ValidateComplete())
}

func TestPipelineDocument_EncodeYAML_RoundTrip(t *testing.T) {
	doc, err := ParseDocumentYAML([]byte(samplePipelineYAML))
	require.NoError(t, err)

	data, err := doc.EncodeYAML()
	require.NoError(t, err)

	reparsed, err := ParseDocumentYAML(data)
	require.NoError(t, err)
	assert.Equal(t, doc, reparsed)
}

func TestMetadata_IsZero(t *testing.T) {
	assert.True(t, Metadata{}.IsZero())
	assert.False(t, Metadata{Name: "Demo"}.IsZero())
	assert.False(t, Metadata{Extra: map[string]any{"version": 2}}.IsZero())
}

func TestMetadata_PreservesUnknownKeysJSON(t *testing.T) {
	doc, err := ParseDocumentJSON([]byte(`{
		"metadata": {"name": "Demo", "custom_field": "kept", "version": 2},
		"nodes": []
	}`))
	require.NoError(t, err)
	assert.Equal(t, "Demo", doc.Metadata.Name)
	assert.Equal(t, "kept", doc.Metadata.Extra["custom_field"])

	// The extra keys survive re-encoding alongside the declared ones.
	data, err := doc.EncodeJSON()
	require.NoError(t, err)

	reparsed, err := ParseDocumentJSON(data)
	require.NoError(t, err)
	assert.Equal(t, "Demo", reparsed.Metadata.Name)
	assert.Equal(t, "kept", reparsed.Metadata.Extra["custom_field"])
	assert.Equal(t, float64(2), reparsed.Metadata.Extra["version"])
}

func TestMetadata_MarshalJSON_DeclaredFieldsWin(t *testing.T) {
	meta := Metadata{
		Name:  "Demo",
		Extra: map[string]any{"name": "shadowed", "custom_field": "kept"},
	}

	data, err := json.Marshal(meta)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Demo", decoded["name"])
	assert.Equal(t, "kept", decoded["custom_field"])
}

func TestMetadata_PreservesUnknownKeys(t *testing.T) {
	doc, err := ParseDocumentYAML([]byte(`
metadata:
  name: Demo
  custom_field: kept
nodes: []
`))
	require.NoError(t, err)
	assert.Equal(t, "kept", doc.Metadata.Extra["custom_field"])
}
