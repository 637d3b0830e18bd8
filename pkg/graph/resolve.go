package graph

import (
	"sort"
	"strings"
	"unicode"

	"github.com/papergraph/papergraph/pkg/common"
	"github.com/papergraph/papergraph/pkg/logger"
)

// DefaultResolveThreshold is the maximum edit distance between normalized
// concept names for them to be considered duplicates.
const DefaultResolveThreshold = 2

// normalizeConceptName lowercases the name, strips punctuation and
// collapses runs of whitespace to single spaces.
func normalizeConceptName(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
		case unicode.IsSpace(r):
			sb.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// levenshtein computes the edit distance between two strings, by rune.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// FindSimilarConceptGroups returns groups of concepts whose normalized
// names are identical or within the given edit distance of each other.
// Very short normalized names (three runes or fewer, typically acronyms)
// only match exactly. Each returned group has at least two members, sorted
// so that the canonical concept comes first: shortest name, ties broken
// lexicographically by name and then by token. The grouping is transitive
// and the result order is deterministic.
func (b *Builder) FindSimilarConceptGroups(threshold int) [][]*common.Concept {
	concepts := make([]*common.Concept, 0, len(b.concepts))
	for _, concept := range b.concepts {
		concepts = append(concepts, concept)
	}
	sort.Slice(concepts, func(i, j int) bool {
		return concepts[i].Token < concepts[j].Token
	})

	normalized := make([]string, len(concepts))
	for i, concept := range concepts {
		normalized[i] = normalizeConceptName(concept.Name)
	}

	// Union-find over pairwise matches.
	parent := make([]int, len(concepts))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}

	for i := 0; i < len(concepts); i++ {
		for j := i + 1; j < len(concepts); j++ {
			if !namesMatch(normalized[i], normalized[j], threshold) {
				continue
			}
			ri, rj := find(i), find(j)
			if ri != rj {
				parent[ri] = rj
			}
		}
	}

	grouped := make(map[int][]*common.Concept)
	for i := range concepts {
		root := find(i)
		grouped[root] = append(grouped[root], concepts[i])
	}

	var groups [][]*common.Concept
	for _, group := range grouped {
		if len(group) < 2 {
			continue
		}
		sort.Slice(group, func(i, j int) bool {
			if len(group[i].Name) != len(group[j].Name) {
				return len(group[i].Name) < len(group[j].Name)
			}
			if group[i].Name != group[j].Name {
				return group[i].Name < group[j].Name
			}
			return group[i].Token < group[j].Token
		})
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i][0].Token < groups[j][0].Token
	})
	return groups
}

func namesMatch(a, b string, threshold int) bool {
	if a == b {
		return a != ""
	}
	if len([]rune(a)) <= 3 || len([]rune(b)) <= 3 {
		return false
	}
	return levenshtein(a, b) <= threshold
}

// ResolveConcepts merges near-duplicate concept nodes into a single
// canonical node per similarity group, re-pointing every incident edge.
// No edge is dropped: deduplicated edges that collide after re-pointing
// survive as parallel edges, and a merged edge between two members of the
// same group becomes a self-loop. Returns the number of concepts merged
// away.
func (b *Builder) ResolveConcepts(threshold int) int {
	merged := 0
	for _, group := range b.FindSimilarConceptGroups(threshold) {
		canonical := group[0]
		for _, duplicate := range group[1:] {
			b.mergeConcept(canonical, duplicate)
			merged++
		}
		logger.Debug("Merged concept group",
			"canonical", canonical.Name, "merged", len(group)-1)
	}
	if merged > 0 {
		logger.Info("Concept resolution complete", "merged", merged)
	}
	return merged
}

// mergeConcept folds duplicate into canonical: empty canonical attributes
// are filled from the duplicate, every edge incident to the duplicate is
// re-pointed at the canonical node, and the duplicate is removed from all
// node indices. Name lookups for the duplicate's name resolve to the
// canonical concept afterwards, so later ingestion keeps accumulating on
// the merged node.
func (b *Builder) mergeConcept(canonical, duplicate *common.Concept) {
	if canonical.ConceptType == "" {
		canonical.ConceptType = duplicate.ConceptType
	}
	if canonical.Description == "" {
		canonical.Description = duplicate.Description
	}
	if canonical.Field == "" {
		canonical.Field = duplicate.Field
	}

	dupKey := duplicate.Key()
	canonKey := canonical.Key()

	for _, edge := range b.incident[dupKey] {
		oldKey := edgeKey(edge.Source.Key(), edge.Target.Key(), edge.EdgeType)

		if edge.Source.Key() == dupKey {
			edge.Source = canonical
		}
		if edge.Target.Key() == dupKey {
			edge.Target = canonical
		}

		if edge.EdgeType.Deduplicated() {
			if b.edgeIndex[oldKey] == edge {
				delete(b.edgeIndex, oldKey)
			}
			newKey := edgeKey(edge.Source.Key(), edge.Target.Key(), edge.EdgeType)
			if _, taken := b.edgeIndex[newKey]; !taken {
				b.edgeIndex[newKey] = edge
			}
		}

		if !edgeIncident(b.incident[canonKey], edge) {
			b.incident[canonKey] = append(b.incident[canonKey], edge)
		}
	}
	delete(b.incident, dupKey)

	delete(b.concepts, duplicate.Token)
	delete(b.nodes, dupKey)
	for i, key := range b.nodeOrder {
		if key == dupKey {
			b.nodeOrder = append(b.nodeOrder[:i], b.nodeOrder[i+1:]...)
			break
		}
	}
	for name, concept := range b.conceptsByName {
		if concept == duplicate {
			b.conceptsByName[name] = canonical
		}
	}
}

func edgeIncident(edges []*common.Edge, edge *common.Edge) bool {
	for _, e := range edges {
		if e == edge {
			return true
		}
	}
	return false
}
