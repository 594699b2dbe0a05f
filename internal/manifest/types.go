package manifest

import "strings"

// Category selects how the entities of a sub-manifest are scaffolded.
type Category string

// Category constants. The value doubles as the sub-manifest suffix stem:
// "agent" routes entries ending in "agent.marks".
const (
	Agent Category = "agent"
	Tool  Category = "tool"
)

// Categories lists the routable categories in match order.
var Categories = []Category{Agent, Tool}

// SuffixExt is appended to a category name to form its sub-manifest suffix.
const SuffixExt = ".marks"

// Suffix returns the sub-manifest suffix for c (e.g., "agent.marks").
func (c Category) Suffix() string {
	return string(c) + SuffixExt
}

// String returns the category name.
func (c Category) String() string {
	return string(c)
}

// CategoryOf reports which category a root manifest entry routes to.
// Entries matching no category are ignored by the sync.
func CategoryOf(entry string) (Category, bool) {
	for _, c := range Categories {
		if strings.HasSuffix(entry, c.Suffix()) {
			return c, true
		}
	}
	return "", false
}
