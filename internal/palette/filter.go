package palette

import (
	"strings"

	"quickaction/internal/domain"
)

// Terms splits a query into lower-case, whitespace separated search terms
func Terms(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// Matches reports whether a single keyword of the item contains every term.
// Terms spread over several keywords do not match.
func Matches(item domain.ActionItem, terms []string) bool {
	if len(terms) == 0 {
		return true
	}
	for _, keyword := range item.Keywords {
		haystack := strings.ToLower(keyword)
		containsAll := true
		for _, term := range terms {
			if !strings.Contains(haystack, term) {
				containsAll = false
				break
			}
		}
		if containsAll {
			return true
		}
	}
	return false
}

// Filter returns the items matching query, in their original order
func Filter(query string, items []domain.ActionItem) []domain.ActionItem {
	terms := Terms(query)
	found := make([]domain.ActionItem, 0, len(items))
	for _, item := range items {
		if Matches(item, terms) {
			found = append(found, item)
		}
	}
	return found
}
