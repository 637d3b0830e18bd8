package graph

import (
	"github.com/papergraph/papergraph/pkg/common"
	"github.com/papergraph/papergraph/pkg/export"
)

// Export flattens the in-memory graph into a node-link document. Nodes keep
// insertion order, edges keep creation order, and evidence lists are
// flattened to paper titles with an accompanying count. Object references
// never leak into the document; links reference nodes by identity key.
func (b *Builder) Export() *export.Document {
	doc := &export.Document{
		Nodes: make([]export.Node, 0, len(b.nodes)),
		Links: make([]export.Link, 0, len(b.edges)),
	}

	for _, node := range b.Nodes() {
		out := export.Node{
			ID:       node.Key(),
			NodeType: string(node.Type()),
		}
		switch n := node.(type) {
		case *common.Author:
			out.Name = n.Name
			out.Email = n.Email
		case *common.Paper:
			out.Title = n.Title
			out.Abstract = n.Abstract
			out.Field = n.Field
		case *common.Affiliation:
			out.Name = n.Name
		case *common.Concept:
			out.Name = n.Name
			out.ConceptType = n.ConceptType
			out.Description = n.Description
			out.Field = n.Field
		}
		doc.Nodes = append(doc.Nodes, out)
	}

	for _, edge := range b.edges {
		link := export.Link{
			Source:      edge.Source.Key(),
			Target:      edge.Target.Key(),
			EdgeType:    string(edge.EdgeType),
			Relation:    edge.Relation,
			Order:       edge.Order,
			Weight:      edge.Weight,
			Description: edge.Description,
			Strength:    edge.Strength,
		}
		if len(edge.Papers) > 0 {
			link.Papers = make([]string, 0, len(edge.Papers))
			for _, paper := range edge.Papers {
				link.Papers = append(link.Papers, paper.Title)
			}
			link.NumPapers = len(edge.Papers)
		}
		doc.Links = append(doc.Links, link)
	}

	return doc
}
