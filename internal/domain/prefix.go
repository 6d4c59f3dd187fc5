package domain

import "strings"

// PrefixDelimiters are applied in this order when deriving a prefix key
var PrefixDelimiters = []string{"-", "_", "@", "•"}

// ExtractPrefix derives the grouping key for a file name.
// Each delimiter truncates the result of the previous step at its first
// occurrence, so "abc-def_ghi.txt" yields "abc" and "report.txt" is returned
// unchanged. An empty result means the file has no usable prefix.
func ExtractPrefix(name string) string {
	prefix := name
	for _, delim := range PrefixDelimiters {
		if i := strings.Index(prefix, delim); i >= 0 {
			prefix = prefix[:i]
		}
	}
	return prefix
}

// PrefixGroup pairs a prefix key with the files that map to it
type PrefixGroup struct {
	Key   string
	Files []string
}

// GroupByPrefix buckets file names by their prefix key, keeping first-seen order.
// Files with an empty prefix are returned separately, in input order.
func GroupByPrefix(names []string) (groups []PrefixGroup, skipped []string) {
	index := make(map[string]int)
	for _, name := range names {
		key := ExtractPrefix(name)
		if key == "" {
			skipped = append(skipped, name)
			continue
		}
		if i, ok := index[key]; ok {
			groups[i].Files = append(groups[i].Files, name)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, PrefixGroup{Key: key, Files: []string{name}})
	}
	return groups, skipped
}
