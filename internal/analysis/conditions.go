// Package analysis gathers read-only statistics over an ability document.
package analysis

import (
	"sort"

	"github.com/cory-johannsen/abilitydata/internal/document"
)

const conditionKey = "condition"

// ConditionSet accumulates distinct string-valued conditions.
type ConditionSet struct {
	seen map[string]struct{}
}

// NewConditionSet creates an empty ConditionSet.
func NewConditionSet() *ConditionSet {
	return &ConditionSet{seen: make(map[string]struct{})}
}

// Collect walks the tree rooted at n and records every string found under a
// "condition" key. Values under a "condition" key are never descended into.
//
// Precondition: n must be non-nil.
func (s *ConditionSet) Collect(n *document.Node) {
	switch n.Kind() {
	case document.Object:
		n.Each(func(key string, value *document.Node) bool {
			if key == conditionKey {
				if str, ok := value.Str(); ok {
					s.seen[str] = struct{}{}
				}
				return true
			}
			s.Collect(value)
			return true
		})
	case document.Array:
		for _, item := range n.Items() {
			s.Collect(item)
		}
	}
}

// Len returns the number of distinct conditions.
func (s *ConditionSet) Len() int { return len(s.seen) }

// Sorted returns the distinct conditions in lexicographic order.
//
// Postcondition: the result is sorted, free of duplicates, and safe to modify.
func (s *ConditionSet) Sorted() []string {
	out := make([]string, 0, len(s.seen))
	for c := range s.seen {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// CollectConditions is a convenience wrapper returning the sorted distinct
// conditions of root.
func CollectConditions(root *document.Node) []string {
	s := NewConditionSet()
	s.Collect(root)
	return s.Sorted()
}
