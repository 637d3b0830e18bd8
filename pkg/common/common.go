package common

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// NodeType identifies the kind of a graph node.
type NodeType string

const (
	NodeAuthor      NodeType = "Author"
	NodePaper       NodeType = "Paper"
	NodeAffiliation NodeType = "Affiliation"
	NodeConcept     NodeType = "Concept"
)

// Node is implemented by every entity stored in the graph. The key is an
// explicit immutable identity string, decoupled from any mutable attributes,
// and is unique across all node types.
type Node interface {
	Key() string
	Type() NodeType
	Label() string
}

// Author represents a paper author. Identity is the exact name string;
// the email is filled in from the first ingestion that provides one and
// kept thereafter.
type Author struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

func (a *Author) Key() string    { return "author:" + a.Name }
func (a *Author) Type() NodeType { return NodeAuthor }
func (a *Author) Label() string  { return a.Name }

// Paper represents a single research paper. Titles are assumed unique
// within a corpus and serve as the identity key.
type Paper struct {
	Title    string `json:"title"`
	Abstract string `json:"abstract"`
	Field    string `json:"field,omitempty"`
}

func (p *Paper) Key() string    { return "paper:" + p.Title }
func (p *Paper) Type() NodeType { return NodePaper }
func (p *Paper) Label() string  { return p.Title }

// Affiliation represents an institution, identified by its name.
type Affiliation struct {
	Name string `json:"name"`
}

func (a *Affiliation) Key() string    { return "affiliation:" + a.Name }
func (a *Affiliation) Type() NodeType { return NodeAffiliation }
func (a *Affiliation) Label() string  { return a.Name }

// Concept represents an extracted research concept. Identity is a generated
// token rather than the name: two distinct concepts may share a surface name
// (an acronym with two expansions, for example).
type Concept struct {
	Token       string `json:"token"`
	Name        string `json:"name"`
	ConceptType string `json:"concept_type,omitempty"`
	Description string `json:"description,omitempty"`
	Field       string `json:"field,omitempty"`
}

func (c *Concept) Key() string    { return "concept:" + c.Token }
func (c *Concept) Type() NodeType { return NodeConcept }
func (c *Concept) Label() string  { return c.Name }

// NewConcept creates a Concept with a freshly generated identity token.
func NewConcept(name, conceptType, description, field string) (*Concept, error) {
	token, err := gonanoid.New()
	if err != nil {
		return nil, err
	}
	return &Concept{
		Token:       token,
		Name:        name,
		ConceptType: conceptType,
		Description: description,
		Field:       field,
	}, nil
}

// AuthorRecord is one entry of a paper's ordered author list as supplied
// by the author-metadata extractor.
type AuthorRecord struct {
	Name        string `json:"name"`
	Affiliation string `json:"affiliation,omitempty"`
	Email       string `json:"email,omitempty"`
	Order       int    `json:"order,omitempty"`
}

// ConceptRecord is one extracted concept as supplied by the concept extractor.
type ConceptRecord struct {
	Name        string `json:"name"`
	Type        string `json:"entity_type,omitempty"`
	Description string `json:"description,omitempty"`
	Field       string `json:"field,omitempty"`
}

// ConceptRelationRecord is one extracted concept-concept relation. Strength
// is normalized to the [0,1] range before it reaches the graph.
type ConceptRelationRecord struct {
	SourceName  string  `json:"source_name"`
	TargetName  string  `json:"target_name"`
	Description string  `json:"description,omitempty"`
	Strength    float64 `json:"strength"`
}
