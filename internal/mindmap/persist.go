package mindmap

import (
	"encoding/json"
	"fmt"
	"os"
)

type nodeDocument struct {
	ID          string   `json:"id"`
	X           float64  `json:"x"`
	Y           float64  `json:"y"`
	Text        string   `json:"text"`
	Color       string   `json:"color"`
	NodeType    string   `json:"node_type"`
	Connections []string `json:"connections"`
}

type connectionDocument struct {
	SourceID       string `json:"source_id"`
	TargetID       string `json:"target_id"`
	ConnectionType string `json:"connection_type"`
	Color          string `json:"color"`
	Label          string `json:"label"`
}

type mapDocument struct {
	Nodes       []nodeDocument       `json:"nodes"`
	Connections []connectionDocument `json:"connections"`
}

// MarshalJSON serializes the map with positions, colors, types, and labels
// preserved exactly.
func (m *Map) MarshalJSON() ([]byte, error) {
	doc := mapDocument{
		Nodes:       make([]nodeDocument, 0, len(m.nodeOrder)),
		Connections: make([]connectionDocument, 0, len(m.connOrder)),
	}
	for _, node := range m.Nodes() {
		connections := node.Connections
		if connections == nil {
			connections = []string{}
		}
		doc.Nodes = append(doc.Nodes, nodeDocument{
			ID:          node.ID,
			X:           node.X,
			Y:           node.Y,
			Text:        node.Text,
			Color:       node.Color,
			NodeType:    node.NodeType,
			Connections: connections,
		})
	}
	for _, conn := range m.Connections() {
		doc.Connections = append(doc.Connections, connectionDocument{
			SourceID:       conn.SourceID,
			TargetID:       conn.TargetID,
			ConnectionType: conn.ConnectionType,
			Color:          conn.Color,
			Label:          conn.Label,
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}

// UnmarshalJSON replaces the map contents with the serialized document.
func (m *Map) UnmarshalJSON(data []byte) error {
	var doc mapDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("mindmap.UnmarshalJSON > %w", err)
	}

	m.Clear()
	for _, n := range doc.Nodes {
		color := n.Color
		if color == "" {
			color = defaultNodeColor
		}
		nodeType := n.NodeType
		if nodeType == "" {
			nodeType = defaultNodeType
		}
		node := &Node{
			ID:          n.ID,
			X:           n.X,
			Y:           n.Y,
			Text:        n.Text,
			Color:       color,
			NodeType:    nodeType,
			Width:       defaultNodeWidth,
			Height:      defaultNodeHeight,
			Connections: n.Connections,
		}
		m.nodes[node.ID] = node
		m.nodeOrder = append(m.nodeOrder, node.ID)
	}
	for _, c := range doc.Connections {
		connectionType := c.ConnectionType
		if connectionType == "" {
			connectionType = defaultConnectionType
		}
		color := c.Color
		if color == "" {
			color = defaultConnectionColor
		}
		conn := &Connection{
			SourceID:       c.SourceID,
			TargetID:       c.TargetID,
			ConnectionType: connectionType,
			Color:          color,
			Label:          c.Label,
		}
		m.connections[conn.ID()] = conn
		m.connOrder = append(m.connOrder, conn.ID())
	}
	return nil
}

// SaveFile writes the map as a JSON document.
func (m *Map) SaveFile(path string) error {
	data, err := m.MarshalJSON()
	if err != nil {
		return fmt.Errorf("mindmap.SaveFile(%s) > %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("mindmap.SaveFile(%s) > %w", path, err)
	}
	return nil
}

// LoadFile reads a map saved by SaveFile.
func LoadFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mindmap.LoadFile(%s) > %w", path, err)
	}
	m := NewMap()
	if err := m.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("mindmap.LoadFile(%s) > %w", path, err)
	}
	return m, nil
}
