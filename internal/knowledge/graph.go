// Package knowledge provides an undirected concept graph with layout,
// analysis, and persistence.
package knowledge

import (
	"sort"

	"github.com/learntrack/learntrack/internal/apperr"
)

// NodeAttrs are the attributes carried by a graph node.
type NodeAttrs struct {
	Type        string
	Description string
}

// Edge is an undirected, typed connection between two nodes.
type Edge struct {
	Source   string
	Target   string
	Relation string
}

// Graph is an in-memory undirected concept graph. Node titles act as natural
// keys: adding a node with an existing title merges its attributes.
type Graph struct {
	nodes    map[string]NodeAttrs
	adj      map[string]map[string]string // neighbor title -> relation
	selected string
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]NodeAttrs),
		adj:   make(map[string]map[string]string),
	}
}

// AddNode adds a concept node. Adding an existing title overwrites its
// attributes and keeps its edges.
func (g *Graph) AddNode(title, nodeType, description string) error {
	if title == "" {
		return apperr.NewValidation("title", "must not be empty")
	}
	if nodeType == "" {
		nodeType = "concept"
	}
	g.nodes[title] = NodeAttrs{Type: nodeType, Description: description}
	if g.adj[title] == nil {
		g.adj[title] = make(map[string]string)
	}
	return nil
}

// AddEdge connects two nodes with a typed relation. Unknown endpoints are
// created as plain concept nodes; a self-loop is rejected.
func (g *Graph) AddEdge(source, target, relation string) error {
	if source == "" || target == "" {
		return apperr.NewValidation("edge", "source and target must not be empty")
	}
	if source == target {
		return apperr.NewValidation("edge", "a concept cannot be connected to itself")
	}
	if relation == "" {
		relation = "related"
	}
	for _, title := range []string{source, target} {
		if _, ok := g.nodes[title]; !ok {
			if err := g.AddNode(title, "", ""); err != nil {
				return err
			}
		}
	}
	g.adj[source][target] = relation
	g.adj[target][source] = relation
	return nil
}

// HasNode reports whether a node with the given title exists.
func (g *Graph) HasNode(title string) bool {
	_, ok := g.nodes[title]
	return ok
}

// Node returns the attributes of a node.
func (g *Graph) Node(title string) (NodeAttrs, bool) {
	attrs, ok := g.nodes[title]
	return attrs, ok
}

// Nodes returns all node titles in sorted order.
func (g *Graph) Nodes() []string {
	titles := make([]string, 0, len(g.nodes))
	for title := range g.nodes {
		titles = append(titles, title)
	}
	sort.Strings(titles)
	return titles
}

// Edges returns every edge exactly once, with source < target, sorted.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for source, neighbors := range g.adj {
		for target, relation := range neighbors {
			if source < target {
				edges = append(edges, Edge{Source: source, Target: target, Relation: relation})
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
	return edges
}

// Neighbors returns the titles adjacent to a node, sorted.
func (g *Graph) Neighbors(title string) []string {
	neighbors := make([]string, 0, len(g.adj[title]))
	for neighbor := range g.adj[title] {
		neighbors = append(neighbors, neighbor)
	}
	sort.Strings(neighbors)
	return neighbors
}

// Degree returns the number of edges incident to a node.
func (g *Graph) Degree(title string) int {
	return len(g.adj[title])
}

// RemoveNode deletes a node and all its incident edges.
func (g *Graph) RemoveNode(title string) error {
	if _, ok := g.nodes[title]; !ok {
		return apperr.NewValidation("title", "node does not exist")
	}
	for neighbor := range g.adj[title] {
		delete(g.adj[neighbor], title)
	}
	delete(g.adj, title)
	delete(g.nodes, title)
	if g.selected == title {
		g.selected = ""
	}
	return nil
}

// RenameNode changes a node's title, preserving its attributes, all incident
// edges, and the current selection.
func (g *Graph) RenameNode(oldTitle, newTitle string) error {
	if newTitle == "" {
		return apperr.NewValidation("title", "must not be empty")
	}
	attrs, ok := g.nodes[oldTitle]
	if !ok {
		return apperr.NewValidation("title", "node does not exist")
	}
	if oldTitle == newTitle {
		return nil
	}
	if _, exists := g.nodes[newTitle]; exists {
		return apperr.NewValidation("title", "a node with that title already exists")
	}

	g.nodes[newTitle] = attrs
	delete(g.nodes, oldTitle)

	g.adj[newTitle] = g.adj[oldTitle]
	delete(g.adj, oldTitle)
	for neighbor, relation := range g.adj[newTitle] {
		delete(g.adj[neighbor], oldTitle)
		g.adj[neighbor][newTitle] = relation
	}

	if g.selected == oldTitle {
		g.selected = newTitle
	}
	return nil
}

// Select marks a node as the current selection. An empty title clears it.
func (g *Graph) Select(title string) error {
	if title != "" && !g.HasNode(title) {
		return apperr.NewValidation("title", "node does not exist")
	}
	g.selected = title
	return nil
}

// Selected returns the currently selected node title, if any.
func (g *Graph) Selected() string {
	return g.selected
}

// Clear removes all nodes, edges, and the selection.
func (g *Graph) Clear() {
	g.nodes = make(map[string]NodeAttrs)
	g.adj = make(map[string]map[string]string)
	g.selected = ""
}
