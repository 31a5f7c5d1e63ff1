package catalog

import "strings"

// Search filters items whose name contains term, case-insensitively.
// An empty term matches everything. The input slice is never mutated.
func Search(items []MenuItem, term string) []MenuItem {
	if term == "" {
		return items
	}

	needle := strings.ToLower(term)
	out := make([]MenuItem, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), needle) {
			out = append(out, item)
		}
	}
	return out
}

// FilterByCategory keeps items of exactly the given category; CategoryAll is
// a wildcard.
func FilterByCategory(items []MenuItem, category Category) []MenuItem {
	if category == CategoryAll || category == "" {
		return items
	}

	out := make([]MenuItem, 0, len(items))
	for _, item := range items {
		if item.Category.Normalize() == category {
			out = append(out, item)
		}
	}
	return out
}

// GroupByCategory buckets items by category, groups in display order, items
// preserving input order within each group. Items with an unknown or empty
// category land in Other. Presentation only: the input is left untouched.
func GroupByCategory(items []MenuItem) []CategoryGroup {
	buckets := make(map[Category][]MenuItem, len(Categories()))
	for _, item := range items {
		cat := item.Category.Normalize()
		buckets[cat] = append(buckets[cat], item)
	}

	groups := make([]CategoryGroup, 0, len(buckets))
	for _, cat := range Categories() {
		if bucket, ok := buckets[cat]; ok {
			groups = append(groups, CategoryGroup{Category: cat, Items: bucket})
		}
	}
	return groups
}

// Present composes the pure presenters: search first, then the category
// filter, then grouping.
func Present(items []MenuItem, term string, category Category) []CategoryGroup {
	return GroupByCategory(FilterByCategory(Search(items, term), category))
}
