package cmdutil

import "sort"

// BuildSelectorSet returns a set of non-empty selector strings for quick membership checks.
func BuildSelectorSet(selectors []string) map[string]struct{} {
	set := make(map[string]struct{}, len(selectors))
	for _, s := range selectors {
		if s == "" {
			continue
		}
		set[s] = struct{}{}
	}
	return set
}

// SelectByName keeps the items whose name is among selectors, preserving order.
// Selectors that matched nothing are returned sorted so callers can report them.
// Blank selectors are ignored; with none left every item is kept.
func SelectByName[T any](items []T, selectors []string, name func(T) string) ([]T, []string) {
	set := BuildSelectorSet(selectors)
	if len(set) == 0 {
		return items, nil
	}
	seen := make(map[string]struct{}, len(set))
	result := make([]T, 0, len(items))
	for _, item := range items {
		n := name(item)
		if _, ok := set[n]; ok {
			result = append(result, item)
			seen[n] = struct{}{}
		}
	}
	var unknown []string
	for s := range set {
		if _, ok := seen[s]; !ok {
			unknown = append(unknown, s)
		}
	}
	sort.Strings(unknown)
	return result, unknown
}
