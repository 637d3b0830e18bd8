package graph

import (
	"github.com/papergraph/papergraph/pkg/common"
)

// Builder owns the in-memory knowledge graph and all deduplication indices.
// Nodes are created on first reference and never deleted during normal
// operation; edges are created once per (source,target,type) triple and
// thereafter only updated, except for ConceptConcept edges which are kept
// as parallel evidence.
//
// A Builder is not safe for concurrent use. Callers that extract in
// parallel must serialize all mutation calls behind a single lock.
type Builder struct {
	authors        map[string]*common.Author      // by name
	papers         map[string]*common.Paper       // by title
	affiliations   map[string]*common.Affiliation // by name
	conceptsByName map[string]*common.Concept     // get-or-create lookup
	concepts       map[string]*common.Concept     // active index by identity token

	nodes     map[string]common.Node // by identity key
	nodeOrder []string               // insertion order, for deterministic export

	edges     []*common.Edge
	edgeIndex map[string]*common.Edge  // src|tgt|type, deduplicated types only
	incident  map[string][]*common.Edge // node key -> incident edges
}

// NewBuilder creates an empty graph builder.
func NewBuilder() *Builder {
	return &Builder{
		authors:        make(map[string]*common.Author),
		papers:         make(map[string]*common.Paper),
		affiliations:   make(map[string]*common.Affiliation),
		conceptsByName: make(map[string]*common.Concept),
		concepts:       make(map[string]*common.Concept),
		nodes:          make(map[string]common.Node),
		edgeIndex:      make(map[string]*common.Edge),
		incident:       make(map[string][]*common.Edge),
	}
}

func edgeKey(sourceKey, targetKey string, edgeType common.EdgeType) string {
	return sourceKey + "|" + targetKey + "|" + string(edgeType)
}

func (b *Builder) insertNode(node common.Node) {
	key := node.Key()
	if _, ok := b.nodes[key]; ok {
		return
	}
	b.nodes[key] = node
	b.nodeOrder = append(b.nodeOrder, key)
}

// findEdge returns the deduplicated edge for the triple, or nil. Symmetric
// types must be queried with canonically ordered endpoints; NewEdge and the
// ingestion paths take care of that.
func (b *Builder) findEdge(source, target common.Node, edgeType common.EdgeType) *common.Edge {
	return b.edgeIndex[edgeKey(source.Key(), target.Key(), edgeType)]
}

func (b *Builder) addEdge(edge *common.Edge) {
	b.edges = append(b.edges, edge)
	if edge.EdgeType.Deduplicated() {
		b.edgeIndex[edgeKey(edge.Source.Key(), edge.Target.Key(), edge.EdgeType)] = edge
	}
	b.incident[edge.Source.Key()] = append(b.incident[edge.Source.Key()], edge)
	if edge.Target.Key() != edge.Source.Key() {
		b.incident[edge.Target.Key()] = append(b.incident[edge.Target.Key()], edge)
	}
}

// Edges returns all edges in insertion order.
func (b *Builder) Edges() []*common.Edge {
	return b.edges
}

// Nodes returns all nodes in insertion order.
func (b *Builder) Nodes() []common.Node {
	nodes := make([]common.Node, 0, len(b.nodeOrder))
	for _, key := range b.nodeOrder {
		if node, ok := b.nodes[key]; ok {
			nodes = append(nodes, node)
		}
	}
	return nodes
}
