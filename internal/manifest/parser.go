package manifest

import (
	"fmt"
	"iter"
	"strings"
	"unicode"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// entryPrefix marks a significant manifest line.
const entryPrefix = "- "

// Entries returns the entries of a manifest in file order. A line is an entry
// when, after leading whitespace, it starts with "- "; the rest of the line is
// trimmed and yielded. All other lines are skipped. Duplicates are kept.
func Entries(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for line := range strings.Lines(text) {
			rest, ok := strings.CutPrefix(strings.TrimLeftFunc(line, unicode.IsSpace), entryPrefix)
			if !ok {
				continue
			}
			if !yield(strings.TrimSpace(rest)) {
				return
			}
		}
	}
}

// Parse collects every entry of text.
func Parse(text string) []string {
	var entries []string
	for e := range Entries(text) {
		entries = append(entries, e)
	}
	return entries
}

// ReadFile reads the manifest at path from fsys and returns its entries.
func ReadFile(fsys billy.Basic, path string) ([]string, error) {
	data, err := util.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return Parse(string(data)), nil
}
