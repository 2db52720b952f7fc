package knowledge

import (
	"encoding/json"
	"fmt"
	"os"
)

// nodeRecord and edgeRecord mirror the on-disk JSON shape. Positions are not
// persisted; they are recomputed by Layout after loading.
type nodeRecord struct {
	ID          string `json:"id"`
	NodeType    string `json:"node_type"`
	Description string `json:"description"`
}

type edgeRecord struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Relation string `json:"relation"`
}

type graphDocument struct {
	Nodes []nodeRecord `json:"nodes"`
	Edges []edgeRecord `json:"edges"`
}

// MarshalJSON serializes the graph to its document form.
func (g *Graph) MarshalJSON() ([]byte, error) {
	doc := graphDocument{}
	for _, title := range g.Nodes() {
		attrs := g.nodes[title]
		doc.Nodes = append(doc.Nodes, nodeRecord{ID: title, NodeType: attrs.Type, Description: attrs.Description})
	}
	for _, edge := range g.Edges() {
		doc.Edges = append(doc.Edges, edgeRecord{Source: edge.Source, Target: edge.Target, Relation: edge.Relation})
	}
	return json.MarshalIndent(doc, "", "  ")
}

// UnmarshalJSON replaces the graph contents with the document data.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var doc graphDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal graph document: %w", err)
	}

	g.Clear()
	for _, node := range doc.Nodes {
		if err := g.AddNode(node.ID, node.NodeType, node.Description); err != nil {
			return err
		}
	}
	for _, edge := range doc.Edges {
		if err := g.AddEdge(edge.Source, edge.Target, edge.Relation); err != nil {
			return err
		}
	}
	return nil
}

// SaveFile writes the graph as a JSON document to path.
func (g *Graph) SaveFile(path string) error {
	data, err := g.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal graph: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}
	return nil
}

// LoadFile reads a JSON graph document from path.
func LoadFile(path string) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	g := NewGraph()
	if err := g.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return g, nil
}
