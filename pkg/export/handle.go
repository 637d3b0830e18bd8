package export

// Handle provides indexed read access to an exported graph document.
// It never mutates the underlying document.
type Handle struct {
	doc     *Document
	nodes   map[string]*Node
	links   map[string][]*Link // node id -> incident links
	byNType map[string][]*Node
	byEType map[string][]*Link
}

// NewHandle builds the query indices for the given document.
func NewHandle(doc *Document) *Handle {
	h := &Handle{
		doc:     doc,
		nodes:   make(map[string]*Node, len(doc.Nodes)),
		links:   make(map[string][]*Link),
		byNType: make(map[string][]*Node),
		byEType: make(map[string][]*Link),
	}
	for i := range doc.Nodes {
		node := &doc.Nodes[i]
		h.nodes[node.ID] = node
		h.byNType[node.NodeType] = append(h.byNType[node.NodeType], node)
	}
	for i := range doc.Links {
		link := &doc.Links[i]
		h.byEType[link.EdgeType] = append(h.byEType[link.EdgeType], link)
		h.links[link.Source] = append(h.links[link.Source], link)
		if link.Target != link.Source {
			h.links[link.Target] = append(h.links[link.Target], link)
		}
	}
	return h
}

// Open reads a document from disk and wraps it in a handle.
func Open(path string) (*Handle, error) {
	doc, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewHandle(doc), nil
}

// NumNodes returns the total node count.
func (h *Handle) NumNodes() int {
	return len(h.doc.Nodes)
}

// NumLinks returns the total link count.
func (h *Handle) NumLinks() int {
	return len(h.doc.Links)
}

// FindNode returns the node with the given ID, or nil.
func (h *Handle) FindNode(id string) *Node {
	return h.nodes[id]
}

// NodesByType returns all nodes of the given type in document order.
func (h *Handle) NodesByType(nodeType string) []*Node {
	return h.byNType[nodeType]
}

// LinksByType returns all links of the given edge type in document order.
func (h *Handle) LinksByType(edgeType string) []*Link {
	return h.byEType[edgeType]
}

// LinksForNode returns the links incident to the node with the given ID,
// optionally filtered by edge type (pass "" for all types).
func (h *Handle) LinksForNode(id, edgeType string) []*Link {
	incident := h.links[id]
	if edgeType == "" {
		return incident
	}
	var filtered []*Link
	for _, link := range incident {
		if link.EdgeType == edgeType {
			filtered = append(filtered, link)
		}
	}
	return filtered
}
