package graph

import "github.com/papergraph/papergraph/pkg/common"

// Statistics summarizes the current graph contents.
type Statistics struct {
	TotalNodes      int                        `json:"total_nodes"`
	TotalEdges      int                        `json:"total_edges"`
	NodeTypes       map[common.NodeType]int    `json:"node_types"`
	EdgeTypes       map[common.EdgeType]int    `json:"edge_types"`
	WeaklyConnected bool                       `json:"weakly_connected"`
	Components      int                        `json:"components"`
}

// Statistics computes node and edge counts per type plus weak connectivity,
// treating every edge as undirected.
func (b *Builder) Statistics() Statistics {
	stats := Statistics{
		TotalNodes: len(b.nodes),
		TotalEdges: len(b.edges),
		NodeTypes:  make(map[common.NodeType]int),
		EdgeTypes:  make(map[common.EdgeType]int),
	}

	for _, node := range b.nodes {
		stats.NodeTypes[node.Type()]++
	}
	for _, edge := range b.edges {
		stats.EdgeTypes[edge.EdgeType]++
	}

	stats.Components = b.countComponents()
	stats.WeaklyConnected = stats.Components == 1

	return stats
}

// countComponents runs a breadth-first search over the undirected incident
// index. An empty graph has zero components.
func (b *Builder) countComponents() int {
	visited := make(map[string]bool, len(b.nodes))
	components := 0

	for key := range b.nodes {
		if visited[key] {
			continue
		}
		components++

		queue := []string{key}
		visited[key] = true
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]

			for _, edge := range b.incident[current] {
				for _, neighbor := range []string{edge.Source.Key(), edge.Target.Key()} {
					if !visited[neighbor] {
						visited[neighbor] = true
						queue = append(queue, neighbor)
					}
				}
			}
		}
	}

	return components
}
