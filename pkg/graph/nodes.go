package graph

import (
	"github.com/papergraph/papergraph/pkg/common"
)

// GetOrCreateAuthor returns the canonical author node for the given name,
// creating it on first reference. Repeated calls with the same name return
// the same object. An email supplied later fills in a previously missing
// one; the first non-empty value wins.
func (b *Builder) GetOrCreateAuthor(name, email string) *common.Author {
	if author, ok := b.authors[name]; ok {
		if author.Email == "" && email != "" {
			author.Email = email
		}
		return author
	}
	author := &common.Author{Name: name, Email: email}
	b.authors[name] = author
	b.insertNode(author)
	return author
}

// GetOrCreateAffiliation returns the canonical affiliation node for the
// given institution name, creating it on first reference.
func (b *Builder) GetOrCreateAffiliation(name string) *common.Affiliation {
	if affiliation, ok := b.affiliations[name]; ok {
		return affiliation
	}
	affiliation := &common.Affiliation{Name: name}
	b.affiliations[name] = affiliation
	b.insertNode(affiliation)
	return affiliation
}

// AddPaper inserts the paper into the graph if its title has not been seen
// and returns the canonical paper node for that title.
func (b *Builder) AddPaper(paper *common.Paper) *common.Paper {
	if existing, ok := b.papers[paper.Title]; ok {
		return existing
	}
	b.papers[paper.Title] = paper
	b.insertNode(paper)
	return paper
}

// GetOrCreateConcept returns the canonical concept node for the given name,
// creating it with a fresh identity token on first reference. The name is
// only the lookup key within this builder; the concept's identity stays the
// generated token, so consolidation can later merge same-named or
// near-duplicate concepts without identity drift.
func (b *Builder) GetOrCreateConcept(name, conceptType, description string) (*common.Concept, error) {
	if concept, ok := b.conceptsByName[name]; ok {
		if concept.ConceptType == "" && conceptType != "" {
			concept.ConceptType = conceptType
		}
		if concept.Description == "" && description != "" {
			concept.Description = description
		}
		return concept, nil
	}
	concept, err := common.NewConcept(name, conceptType, description, "")
	if err != nil {
		return nil, err
	}
	b.conceptsByName[name] = concept
	b.concepts[concept.Token] = concept
	b.insertNode(concept)
	return concept, nil
}

// ConceptByToken returns the active concept with the given identity token,
// or nil if the token is unknown or has been merged away.
func (b *Builder) ConceptByToken(token string) *common.Concept {
	return b.concepts[token]
}
