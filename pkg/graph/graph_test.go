package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectrakit/pipegraph/pkg/models"
)

// stubType is a minimal NodeType for graph tests.
type stubType struct {
	id    string
	build func() *Node
}

func (t stubType) TypeID() string { return t.id }

func (t stubType) Spawn() *Node {
	if t.build != nil {
		return t.build()
	}

	return NewNode(t.id, t.id)
}

func loaderType() stubType {
	return stubType{
		id: "spectral.node.data.CubeLoader",
		build: func() *Node {
			node := NewNode("Cube Loader", "spectral.node.data.CubeLoader")
			node.AddOutput("cube", models.PortSpec{DType: "float32", Shape: []int{-1, -1, -1}})

			return node
		},
	}
}

func pcaType() stubType {
	return stubType{
		id: "spectral.node.pca.PCA",
		build: func() *Node {
			node := NewNode("PCA", "spectral.node.pca.PCA")
			node.AddInput("cube", models.PortSpec{DType: "float32", Shape: []int{-1, -1, -1}})
			node.AddOutput("transformed", models.PortSpec{DType: "float32"})

			return node
		},
	}
}

func TestGraph_RegisterType_Duplicate(t *testing.T) {
	g := New()
	require.NoError(t, g.RegisterType(loaderType()))

	err := g.RegisterType(loaderType())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateNodeType))
	assert.True(t, g.HasType("spectral.node.data.CubeLoader"))
}

func TestGraph_CreateNode(t *testing.T) {
	g := New()
	require.NoError(t, g.RegisterType(loaderType()))

	node, err := g.CreateNode("spectral.node.data.CubeLoader")
	require.NoError(t, err)
	assert.Equal(t, "Cube Loader", node.Name())
	assert.Equal(t, 1, g.NodeCount())
	assert.Same(t, node, g.NodeByName("Cube Loader"))
}

func TestGraph_CreateNode_UnknownType(t *testing.T) {
	g := New()

	_, err := g.CreateNode("spectral.node.pca.PCA")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownNodeType))
}

func TestGraph_CreateNode_UniqueNames(t *testing.T) {
	g := New()
	require.NoError(t, g.RegisterType(loaderType()))

	first, err := g.CreateNode("spectral.node.data.CubeLoader")
	require.NoError(t, err)
	second, err := g.CreateNode("spectral.node.data.CubeLoader")
	require.NoError(t, err)
	third, err := g.CreateNode("spectral.node.data.CubeLoader")
	require.NoError(t, err)

	assert.Equal(t, "Cube Loader", first.Name())
	assert.Equal(t, "Cube Loader 2", second.Name())
	assert.Equal(t, "Cube Loader 3", third.Name())
}

func TestGraph_RenameNode(t *testing.T) {
	g := New()

	first := NewNode("Loader", "loader")
	g.AddNode(first)
	second := NewNode("PCA", "pca")
	g.AddNode(second)

	assert.Equal(t, "Processed", g.RenameNode(second, "Processed"))
	assert.Equal(t, "Processed", second.Name())

	// A taken name gets the numeric suffix instead of a collision.
	assert.Equal(t, "Loader 2", g.RenameNode(second, "Loader"))
	assert.Same(t, first, g.NodeByName("Loader"))
	assert.Same(t, second, g.NodeByName("Loader 2"))

	// Renaming to the current name never collides with itself.
	assert.Equal(t, "Loader 2", g.RenameNode(second, "Loader 2"))
}

func TestGraph_Connect(t *testing.T) {
	g := New()
	require.NoError(t, g.RegisterType(loaderType()))
	require.NoError(t, g.RegisterType(pcaType()))

	loader, err := g.CreateNode("spectral.node.data.CubeLoader")
	require.NoError(t, err)
	pca, err := g.CreateNode("spectral.node.pca.PCA")
	require.NoError(t, err)

	edge, err := g.Connect(loader, "cube", pca, "cube")
	require.NoError(t, err)
	assert.NotEmpty(t, edge.ID)
	assert.Len(t, g.Connections(), 1)
	assert.Len(t, g.ConnectionsFrom(loader), 1)
	assert.Len(t, g.ConnectionsTo(pca), 1)
	assert.Empty(t, g.ConnectionsTo(loader))
}

func TestGraph_Connect_Incompatible(t *testing.T) {
	g := New()

	source := NewNode("Labels", "labels")
	source.AddOutput("labels", models.PortSpec{DType: "int64"})
	g.AddNode(source)

	target := NewNode("PCA", "pca")
	target.AddInput("cube", models.PortSpec{DType: "float32"})
	g.AddNode(target)

	_, err := g.Connect(source, "labels", target, "cube")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncompatibleConnection))
	assert.Contains(t, err.Error(), "Type mismatch: int64 cannot connect to float32")
	assert.Empty(t, g.Connections())
}

func TestGraph_Disconnect(t *testing.T) {
	g := New()
	require.NoError(t, g.RegisterType(loaderType()))
	require.NoError(t, g.RegisterType(pcaType()))

	loader, _ := g.CreateNode("spectral.node.data.CubeLoader")
	pca, _ := g.CreateNode("spectral.node.pca.PCA")
	edge, err := g.Connect(loader, "cube", pca, "cube")
	require.NoError(t, err)

	assert.True(t, g.Disconnect(edge.ID))
	assert.Empty(t, g.Connections())
	assert.False(t, g.Disconnect(edge.ID))
}

func TestGraph_RemoveNode_DropsTouchingEdges(t *testing.T) {
	g := New()
	require.NoError(t, g.RegisterType(loaderType()))
	require.NoError(t, g.RegisterType(pcaType()))

	loader, _ := g.CreateNode("spectral.node.data.CubeLoader")
	pca, _ := g.CreateNode("spectral.node.pca.PCA")
	_, err := g.Connect(loader, "cube", pca, "cube")
	require.NoError(t, err)

	assert.True(t, g.RemoveNode("Cube Loader"))
	assert.Equal(t, 1, g.NodeCount())
	assert.Empty(t, g.Connections())
	assert.False(t, g.RemoveNode("Cube Loader"))
}

func TestGraph_ClearSession_KeepsTypes(t *testing.T) {
	g := New()
	require.NoError(t, g.RegisterType(loaderType()))

	_, err := g.CreateNode("spectral.node.data.CubeLoader")
	require.NoError(t, err)

	g.ClearSession()

	assert.Equal(t, 0, g.NodeCount())
	assert.True(t, g.HasType("spectral.node.data.CubeLoader"))
}

func TestGraph_Clear_DropsTypes(t *testing.T) {
	g := New()
	require.NoError(t, g.RegisterType(loaderType()))

	g.Clear()

	assert.False(t, g.HasType("spectral.node.data.CubeLoader"))
}

func TestValidateConnection_MissingPorts(t *testing.T) {
	source := NewNode("A", "a")
	target := NewNode("B", "b")
	target.AddInput("cube", models.PortSpec{DType: "float32"})

	ok, reason := ValidateConnection(source, "cube", target, "cube")
	assert.False(t, ok)
	assert.Equal(t, "Source port 'cube' spec not found", reason)

	source.AddOutput("cube", models.PortSpec{DType: "float32"})

	ok, reason = ValidateConnection(source, "cube", target, "mask")
	assert.False(t, ok)
	assert.Equal(t, "Target port 'mask' spec not found", reason)
}

func TestValidateConnection_AnyWildcard(t *testing.T) {
	source := NewNode("A", "a")
	source.AddOutput("out", models.PortSpec{DType: models.DTypeAny})

	target := NewNode("B", "b")
	target.AddInput("in", models.PortSpec{DType: "float32", Shape: []int{-1, 64}})

	ok, reason := ValidateConnection(source, "out", target, "in")
	assert.True(t, ok)
	assert.Empty(t, reason)

	// Symmetric: a wildcard input accepts any output.
	reverse := NewNode("C", "c")
	reverse.AddInput("in", models.PortSpec{DType: models.DTypeAny})

	ok, _ = ValidateConnection(target2(), "out", reverse, "in")
	assert.True(t, ok)
}

func target2() *Node {
	node := NewNode("D", "d")
	node.AddOutput("out", models.PortSpec{DType: "int64", Shape: []int{3}})

	return node
}

func TestNode_Stages(t *testing.T) {
	node := NewNode("PCA", "pca")
	assert.True(t, node.DefaultStagesOnly())
	assert.Equal(t, []string{models.DefaultExecutionStage}, node.Stages())

	node.SetStages([]string{"test", "train"})
	assert.False(t, node.DefaultStagesOnly())
	assert.Equal(t, []string{"test", "train"}, node.Stages())

	node.SetStages(nil)
	assert.True(t, node.DefaultStagesOnly())
}

func TestNode_PortOrder(t *testing.T) {
	node := NewNode("N", "n")
	node.AddInput("b", models.PortSpec{DType: "float32"})
	node.AddInput("a", models.PortSpec{DType: "float32"})
	node.AddInput("b", models.PortSpec{DType: "int64"})

	assert.Equal(t, []string{"b", "a"}, node.InputNames())

	spec, ok := node.InputSpec("b")
	require.True(t, ok)
	assert.Equal(t, "int64", spec.DType)
}
