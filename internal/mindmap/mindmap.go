// Package mindmap maintains positioned node/connection diagrams. Unlike the
// knowledge graph, nodes carry explicit coordinates and connections are
// directed and labeled.
package mindmap

import (
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/learntrack/learntrack/internal/apperr"
)

const (
	defaultNodeColor       = "#3498db"
	defaultNodeType        = "concept"
	defaultNodeWidth       = 100.0
	defaultNodeHeight      = 60.0
	defaultConnectionType  = "related"
	defaultConnectionColor = "#95a5a6"
)

// Node is a positioned box on the map. Coordinates address the node center.
type Node struct {
	ID       string
	X        float64
	Y        float64
	Text     string
	Color    string
	NodeType string
	Width    float64
	Height   float64
	// Connections lists the ids of directly connected nodes, regardless of
	// connection direction.
	Connections []string
}

// ContainsPoint reports whether (x, y) falls inside the node's bounding box.
func (n *Node) ContainsPoint(x, y float64) bool {
	return n.X-n.Width/2 <= x && x <= n.X+n.Width/2 &&
		n.Y-n.Height/2 <= y && y <= n.Y+n.Height/2
}

// EdgeAnchorPoint returns the point on the node's bounding ellipse in the
// direction of (towardX, towardY), so that edges terminate at node boundaries
// rather than centers. Returns the center when the target coincides with it.
func (n *Node) EdgeAnchorPoint(towardX, towardY float64) (float64, float64) {
	dx := towardX - n.X
	dy := towardY - n.Y
	if dx == 0 && dy == 0 {
		return n.X, n.Y
	}
	angle := math.Atan2(dy, dx)
	return n.X + n.Width/2*math.Cos(angle), n.Y + n.Height/2*math.Sin(angle)
}

// Connection is a directed, labeled edge between two nodes.
type Connection struct {
	SourceID       string
	TargetID       string
	ConnectionType string
	Color          string
	Label          string
}

// ID derives the connection identifier from the ordered endpoint pair, which
// makes reconnecting the same pair idempotent.
func (c Connection) ID() string {
	return c.SourceID + "_" + c.TargetID
}

// Map is an in-memory mind map. Nodes and connections keep insertion order.
type Map struct {
	nodes       map[string]*Node
	connections map[string]*Connection
	nodeOrder   []string
	connOrder   []string
	selected    string
}

// NewMap creates an empty mind map.
func NewMap() *Map {
	return &Map{
		nodes:       map[string]*Node{},
		connections: map[string]*Connection{},
	}
}

// CreateNode adds a node centered at (x, y). Empty color and nodeType fall
// back to defaults. The returned node carries a fresh process-unique id.
func (m *Map) CreateNode(x, y float64, text, color, nodeType string) (*Node, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.NewValidation("text", "must not be empty")
	}
	if color == "" {
		color = defaultNodeColor
	}
	if nodeType == "" {
		nodeType = defaultNodeType
	}
	node := &Node{
		ID:       uuid.NewString(),
		X:        x,
		Y:        y,
		Text:     text,
		Color:    color,
		NodeType: nodeType,
		Width:    defaultNodeWidth,
		Height:   defaultNodeHeight,
	}
	m.nodes[node.ID] = node
	m.nodeOrder = append(m.nodeOrder, node.ID)
	return node, nil
}

// Node returns the node with the given id.
func (m *Map) Node(id string) (*Node, bool) {
	node, ok := m.nodes[id]
	return node, ok
}

// NodeAt returns the first node whose bounding box contains (x, y), scanning
// in insertion order.
func (m *Map) NodeAt(x, y float64) (*Node, bool) {
	for _, id := range m.nodeOrder {
		if node := m.nodes[id]; node.ContainsPoint(x, y) {
			return node, true
		}
	}
	return nil, false
}

// Nodes returns all nodes in insertion order.
func (m *Map) Nodes() []*Node {
	nodes := make([]*Node, 0, len(m.nodeOrder))
	for _, id := range m.nodeOrder {
		nodes = append(nodes, m.nodes[id])
	}
	return nodes
}

// Connections returns all connections in insertion order.
func (m *Map) Connections() []*Connection {
	conns := make([]*Connection, 0, len(m.connOrder))
	for _, id := range m.connOrder {
		conns = append(conns, m.connections[id])
	}
	return conns
}

// Connect adds a directed connection from source to target. Reconnecting the
// same ordered pair returns the existing connection unchanged; the reversed
// pair is a distinct connection. Empty connectionType falls back to "related".
func (m *Map) Connect(sourceID, targetID, connectionType, label string) (*Connection, error) {
	source, ok := m.nodes[sourceID]
	if !ok {
		return nil, apperr.NewNotFoundKey("mind map node", sourceID)
	}
	target, ok := m.nodes[targetID]
	if !ok {
		return nil, apperr.NewNotFoundKey("mind map node", targetID)
	}
	if sourceID == targetID {
		return nil, apperr.NewValidation("target", "must differ from source")
	}
	if connectionType == "" {
		connectionType = defaultConnectionType
	}

	conn := &Connection{
		SourceID:       sourceID,
		TargetID:       targetID,
		ConnectionType: connectionType,
		Color:          defaultConnectionColor,
		Label:          label,
	}
	if existing, ok := m.connections[conn.ID()]; ok {
		return existing, nil
	}
	m.connections[conn.ID()] = conn
	m.connOrder = append(m.connOrder, conn.ID())

	if !contains(source.Connections, targetID) {
		source.Connections = append(source.Connections, targetID)
	}
	if !contains(target.Connections, sourceID) {
		target.Connections = append(target.Connections, sourceID)
	}
	return conn, nil
}

// DeleteNode removes a node and every connection where it is source or target.
func (m *Map) DeleteNode(id string) error {
	if _, ok := m.nodes[id]; !ok {
		return apperr.NewNotFoundKey("mind map node", id)
	}
	delete(m.nodes, id)
	m.nodeOrder = remove(m.nodeOrder, id)

	kept := m.connOrder[:0]
	for _, connID := range m.connOrder {
		conn := m.connections[connID]
		if conn.SourceID == id || conn.TargetID == id {
			delete(m.connections, connID)
			continue
		}
		kept = append(kept, connID)
	}
	m.connOrder = kept

	for _, node := range m.nodes {
		node.Connections = remove(node.Connections, id)
	}
	if m.selected == id {
		m.selected = ""
	}
	return nil
}

// Select marks a node as the current selection; an empty id clears it.
func (m *Map) Select(id string) error {
	if id != "" {
		if _, ok := m.nodes[id]; !ok {
			return apperr.NewNotFoundKey("mind map node", id)
		}
	}
	m.selected = id
	return nil
}

// Selected returns the id of the selected node, or "" when nothing is selected.
func (m *Map) Selected() string {
	return m.selected
}

// Clear removes all nodes and connections.
func (m *Map) Clear() {
	m.nodes = map[string]*Node{}
	m.connections = map[string]*Connection{}
	m.nodeOrder = nil
	m.connOrder = nil
	m.selected = ""
}

func contains(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	kept := ids[:0]
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	return kept
}
