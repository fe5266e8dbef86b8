package analysis

import (
	"slices"
	"sort"

	"github.com/cory-johannsen/abilitydata/internal/document"
)

const (
	mechanicsKey = "mechanics"
	featuresKey  = "features"
	nameKey      = "name"
)

// FeatureSummary describes every occurrence of one feature name. Shapes holds
// each distinct sorted key list in first-seen order.
type FeatureSummary struct {
	Name   string     `yaml:"name"`
	Count  int        `yaml:"count"`
	Shapes [][]string `yaml:"shapes"`
}

// FeatureStats tallies mechanics.features entries by name.
type FeatureStats struct {
	order  []string
	byName map[string]*FeatureSummary
}

// NewFeatureStats creates an empty FeatureStats.
func NewFeatureStats() *FeatureStats {
	return &FeatureStats{byName: make(map[string]*FeatureSummary)}
}

// Collect walks the tree rooted at n. Every object whose mechanics object
// carries a features array contributes its named entries; the walk then
// continues into all of the object's values, mechanics included.
//
// Precondition: n must be non-nil.
func (s *FeatureStats) Collect(n *document.Node) {
	switch n.Kind() {
	case document.Object:
		if mech, ok := n.Get(mechanicsKey); ok {
			if features, ok := mech.Get(featuresKey); ok {
				for _, entry := range features.Items() {
					s.record(entry)
				}
			}
		}
		n.Each(func(_ string, value *document.Node) bool {
			s.Collect(value)
			return true
		})
	case document.Array:
		for _, item := range n.Items() {
			s.Collect(item)
		}
	}
}

func (s *FeatureStats) record(entry *document.Node) {
	nameNode, ok := entry.Get(nameKey)
	if !ok {
		return
	}
	name, ok := nameNode.Str()
	if !ok || name == "" {
		return
	}

	sum, ok := s.byName[name]
	if !ok {
		sum = &FeatureSummary{Name: name}
		s.byName[name] = sum
		s.order = append(s.order, name)
	}
	sum.Count++

	keys := slices.Clone(entry.Keys())
	sort.Strings(keys)
	for _, shape := range sum.Shapes {
		if slices.Equal(shape, keys) {
			return
		}
	}
	sum.Shapes = append(sum.Shapes, keys)
}

// Len returns the number of distinct feature names.
func (s *FeatureStats) Len() int { return len(s.order) }

// Summaries returns one summary per feature name ordered by descending count.
// Names with equal counts keep the order in which they were first seen.
//
// Postcondition: the result is a copy safe to modify.
func (s *FeatureStats) Summaries() []FeatureSummary {
	out := make([]FeatureSummary, 0, len(s.order))
	for _, name := range s.order {
		sum := s.byName[name]
		shapes := make([][]string, len(sum.Shapes))
		for i, shape := range sum.Shapes {
			shapes[i] = slices.Clone(shape)
		}
		out = append(out, FeatureSummary{Name: sum.Name, Count: sum.Count, Shapes: shapes})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// AnalyzeFeatures is a convenience wrapper returning the summaries of root.
func AnalyzeFeatures(root *document.Node) []FeatureSummary {
	s := NewFeatureStats()
	s.Collect(root)
	return s.Summaries()
}
