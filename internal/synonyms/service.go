package synonyms

import (
	"sort"
	"strings"
)

// Service is a static, in-memory term-expansion table. All terms are
// lowercased at insertion. Expansion is exact-term only: no stemming, no
// multi-word handling, and no transitive closure across entries.
type Service struct {
	mapping map[string]map[string]struct{}
}

// New builds a Service from an initial term -> synonyms table.
func New(mapping map[string][]string) *Service {
	s := &Service{mapping: make(map[string]map[string]struct{})}
	for term, syns := range mapping {
		s.add(term, syns)
	}
	return s
}

// Expand returns the term plus its configured synonyms, lowercased and
// sorted. An unconfigured term expands to exactly itself.
func (s *Service) Expand(term string) []string {
	normalized := strings.ToLower(term)
	set := map[string]struct{}{normalized: {}}
	for syn := range s.mapping[normalized] {
		set[syn] = struct{}{}
	}

	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// LoadBulk merges additional term -> synonyms entries without removing
// anything already configured.
func (s *Service) LoadBulk(entries map[string][]string) {
	for term, syns := range entries {
		s.add(term, syns)
	}
}

func (s *Service) add(term string, syns []string) {
	normalized := strings.ToLower(term)
	set, ok := s.mapping[normalized]
	if !ok {
		set = make(map[string]struct{})
		s.mapping[normalized] = set
	}
	for _, syn := range syns {
		set[strings.ToLower(syn)] = struct{}{}
	}
}

// DefaultTable is the startup synonym table.
func DefaultTable() map[string][]string {
	return map[string][]string{
		"laptop":  {"notebook", "ultrabook"},
		"sneaker": {"shoe"},
		"hoodie":  {"sweatshirt"},
	}
}
