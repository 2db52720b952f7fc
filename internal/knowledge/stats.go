package knowledge

import "sort"

// Statistics summarizes the shape of a graph.
type Statistics struct {
	NodeCount           int
	EdgeCount           int
	ConnectedComponents int
	Density             float64
}

// ComputeStatistics returns node/edge counts, the number of connected
// components, and the density edgeCount / (n*(n-1)/2). Density is zero for
// graphs with fewer than two nodes.
func (g *Graph) ComputeStatistics() Statistics {
	n := len(g.nodes)
	e := len(g.Edges())

	stats := Statistics{
		NodeCount:           n,
		EdgeCount:           e,
		ConnectedComponents: len(g.components()),
	}
	if n > 1 {
		stats.Density = float64(e) / (float64(n) * float64(n-1) / 2)
	}
	return stats
}

// Analysis holds the insights derived from a graph.
type Analysis struct {
	Statistics
	MostCentral   string
	IsolatedNodes []string
}

// Analyze computes statistics plus the highest-degree node and any nodes with
// no connections. Ties on degree break by title for determinism.
func (g *Graph) Analyze() Analysis {
	analysis := Analysis{Statistics: g.ComputeStatistics()}

	bestDegree := -1
	for _, title := range g.Nodes() {
		degree := g.Degree(title)
		if degree == 0 {
			analysis.IsolatedNodes = append(analysis.IsolatedNodes, title)
		}
		if degree > bestDegree {
			bestDegree = degree
			analysis.MostCentral = title
		}
	}
	return analysis
}

// components returns the connected components as sorted title slices.
func (g *Graph) components() [][]string {
	visited := make(map[string]bool, len(g.nodes))
	var all [][]string

	for _, start := range g.Nodes() {
		if visited[start] {
			continue
		}
		var component []string
		stack := []string{start}
		visited[start] = true
		for len(stack) > 0 {
			title := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			component = append(component, title)
			for neighbor := range g.adj[title] {
				if !visited[neighbor] {
					visited[neighbor] = true
					stack = append(stack, neighbor)
				}
			}
		}
		sort.Strings(component)
		all = append(all, component)
	}
	return all
}
