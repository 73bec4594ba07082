package mbean

import (
	"slices"
)

// walk applies pre and post to every node of the tree rooted at mb. pre runs
// before a node's children (top-down), post after them (bottom-up); either
// may be nil. Siblings are visited in sorted key order so traversals are
// deterministic.
func walk(mb ManagedObject, pre, post func(ManagedObject)) {
	if pre != nil {
		pre(mb)
	}

	children := mb.Children()
	for _, attr := range sortedKeys(children) {
		byName := children[attr]
		for _, name := range sortedKeys(byName) {
			walk(byName[name], pre, post)
		}
	}

	if post != nil {
		post(mb)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
