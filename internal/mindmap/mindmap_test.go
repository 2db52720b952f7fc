package mindmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learntrack/learntrack/internal/apperr"
)

func TestMap_CreateNode(t *testing.T) {
	m := NewMap()

	first, err := m.CreateNode(100, 200, "Derivatives", "", "")
	require.NoError(t, err)
	second, err := m.CreateNode(300, 200, "Integrals", "#e74c3c", "topic")
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "#3498db", first.Color)
	assert.Equal(t, "concept", first.NodeType)
	assert.Equal(t, "#e74c3c", second.Color)
	assert.Equal(t, "topic", second.NodeType)
	assert.Equal(t, 100.0, first.Width)
	assert.Equal(t, 60.0, first.Height)

	t.Run("empty text rejected", func(t *testing.T) {
		_, err := m.CreateNode(0, 0, "  ", "", "")
		var verr *apperr.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestMap_Connect(t *testing.T) {
	m := NewMap()
	a, err := m.CreateNode(0, 0, "A", "", "")
	require.NoError(t, err)
	b, err := m.CreateNode(200, 0, "B", "", "")
	require.NoError(t, err)

	conn, err := m.Connect(a.ID, b.ID, "", "leads to")
	require.NoError(t, err)
	assert.Equal(t, a.ID+"_"+b.ID, conn.ID())
	assert.Equal(t, "related", conn.ConnectionType)
	assert.Equal(t, "#95a5a6", conn.Color)
	assert.Equal(t, "leads to", conn.Label)
	assert.Equal(t, []string{b.ID}, a.Connections)
	assert.Equal(t, []string{a.ID}, b.Connections)

	t.Run("same ordered pair is idempotent", func(t *testing.T) {
		again, err := m.Connect(a.ID, b.ID, "causes", "other")
		require.NoError(t, err)
		assert.Same(t, conn, again)
		assert.Equal(t, "leads to", again.Label)
		assert.Len(t, m.Connections(), 1)
	})

	t.Run("reversed pair is distinct", func(t *testing.T) {
		reversed, err := m.Connect(b.ID, a.ID, "", "")
		require.NoError(t, err)
		assert.NotEqual(t, conn.ID(), reversed.ID())
		assert.Len(t, m.Connections(), 2)
		// Neighbor lists do not gain duplicates.
		assert.Equal(t, []string{b.ID}, a.Connections)
	})

	t.Run("unknown endpoint", func(t *testing.T) {
		_, err := m.Connect(a.ID, "missing", "", "")
		var nferr *apperr.NotFoundError
		assert.ErrorAs(t, err, &nferr)
	})

	t.Run("self connection rejected", func(t *testing.T) {
		_, err := m.Connect(a.ID, a.ID, "", "")
		var verr *apperr.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestMap_DeleteNode(t *testing.T) {
	m := NewMap()
	a, _ := m.CreateNode(0, 0, "A", "", "")
	b, _ := m.CreateNode(200, 0, "B", "", "")
	c, _ := m.CreateNode(400, 0, "C", "", "")
	_, err := m.Connect(a.ID, b.ID, "", "")
	require.NoError(t, err)
	_, err = m.Connect(b.ID, c.ID, "", "")
	require.NoError(t, err)
	require.NoError(t, m.Select(b.ID))

	require.NoError(t, m.DeleteNode(b.ID))

	assert.Len(t, m.Nodes(), 2)
	assert.Empty(t, m.Connections())
	assert.Empty(t, a.Connections)
	assert.Empty(t, c.Connections)
	assert.Empty(t, m.Selected())

	assert.Error(t, m.DeleteNode(b.ID))
}

func TestNode_ContainsPoint(t *testing.T) {
	node := &Node{X: 100, Y: 100, Width: 100, Height: 60}

	assert.True(t, node.ContainsPoint(100, 100))
	assert.True(t, node.ContainsPoint(50, 70))
	assert.True(t, node.ContainsPoint(150, 130))
	assert.False(t, node.ContainsPoint(151, 100))
	assert.False(t, node.ContainsPoint(100, 131))
}

func TestNode_EdgeAnchorPoint(t *testing.T) {
	node := &Node{X: 100, Y: 100, Width: 100, Height: 60}

	t.Run("horizontal target", func(t *testing.T) {
		x, y := node.EdgeAnchorPoint(300, 100)
		assert.InDelta(t, 150, x, 0.001)
		assert.InDelta(t, 100, y, 0.001)
	})

	t.Run("vertical target", func(t *testing.T) {
		x, y := node.EdgeAnchorPoint(100, 0)
		assert.InDelta(t, 100, x, 0.001)
		assert.InDelta(t, 70, y, 0.001)
	})

	t.Run("coincident target returns center", func(t *testing.T) {
		x, y := node.EdgeAnchorPoint(100, 100)
		assert.Equal(t, 100.0, x)
		assert.Equal(t, 100.0, y)
	})
}

func TestMap_NodeAt(t *testing.T) {
	m := NewMap()
	a, _ := m.CreateNode(100, 100, "A", "", "")
	_, _ = m.CreateNode(400, 400, "B", "", "")

	hit, ok := m.NodeAt(110, 95)
	require.True(t, ok)
	assert.Equal(t, a.ID, hit.ID)

	_, ok = m.NodeAt(250, 250)
	assert.False(t, ok)
}

func TestMap_JSONRoundTrip(t *testing.T) {
	m := NewMap()
	a, err := m.CreateNode(12.5, -7.25, "Photosynthesis", "#2ecc71", "topic")
	require.NoError(t, err)
	b, err := m.CreateNode(240, 180, "Chlorophyll", "", "")
	require.NoError(t, err)
	conn, err := m.Connect(a.ID, b.ID, "contains", "uses")
	require.NoError(t, err)
	conn.Color = "#1abc9c"

	data, err := m.MarshalJSON()
	require.NoError(t, err)

	restored := NewMap()
	require.NoError(t, restored.UnmarshalJSON(data))

	require.Len(t, restored.Nodes(), 2)
	got, ok := restored.Node(a.ID)
	require.True(t, ok)
	assert.Equal(t, a.X, got.X)
	assert.Equal(t, a.Y, got.Y)
	assert.Equal(t, a.Text, got.Text)
	assert.Equal(t, a.Color, got.Color)
	assert.Equal(t, a.NodeType, got.NodeType)
	assert.Equal(t, a.Connections, got.Connections)

	conns := restored.Connections()
	require.Len(t, conns, 1)
	assert.Equal(t, conn.SourceID, conns[0].SourceID)
	assert.Equal(t, conn.TargetID, conns[0].TargetID)
	assert.Equal(t, "contains", conns[0].ConnectionType)
	assert.Equal(t, "#1abc9c", conns[0].Color)
	assert.Equal(t, "uses", conns[0].Label)

	t.Run("serialization is stable", func(t *testing.T) {
		second, err := restored.MarshalJSON()
		require.NoError(t, err)
		assert.JSONEq(t, string(data), string(second))
	})
}

func TestMap_SaveLoadFile(t *testing.T) {
	m := NewMap()
	a, _ := m.CreateNode(1, 2, "Root", "", "")
	b, _ := m.CreateNode(3, 4, "Leaf", "", "")
	_, err := m.Connect(a.ID, b.ID, "", "")
	require.NoError(t, err)

	path := t.TempDir() + "/map.json"
	require.NoError(t, m.SaveFile(path))

	restored, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, restored.Nodes(), 2)
	assert.Len(t, restored.Connections(), 1)
}
