package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPrefix(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"abc-def_ghi.txt", "abc"},
		{"report.txt", "report.txt"},
		{"-leadingdash.txt", ""},
		{"_leading.txt", ""},
		{"@mention.txt", ""},
		{"•bullet.txt", ""},
		{"a_b-c@d", "a"},
		{"x@y-z", "x"},
		{"p•q_r", "p"},
		{"site_01.jpg", "site"},
		{"site@2x.png", "site"},
		{"tower•north.pdf", "tower"},
		{"AB12-sector1_v2@final•x.doc", "AB12"},
		{"no delimiters here", "no delimiters here"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractPrefix(tt.name))
		})
	}
}

// Iterative truncation must agree with cutting at the earliest delimiter.
func TestExtractPrefix_MatchesEarliestDelimiter(t *testing.T) {
	names := []string{
		"a_b-c@d", "a-b_c", "_a-b", "a@b_c-d", "a•b@c", "ab•c-d_e@f",
		"--", "a--b", "x_y_z", "@-_•", "plain",
	}

	for _, name := range names {
		cut := len(name)
		for _, d := range PrefixDelimiters {
			for i := 0; i+len(d) <= len(name); i++ {
				if name[i:i+len(d)] == d {
					if i < cut {
						cut = i
					}
					break
				}
			}
		}
		assert.Equal(t, name[:cut], ExtractPrefix(name), "name %q", name)
	}
}

func TestExtractPrefix_Deterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, "abc", ExtractPrefix("abc-def_ghi.txt"))
	}
}

func TestGroupByPrefix(t *testing.T) {
	groups, skipped := GroupByPrefix([]string{
		"f1-a.jpg", "f2_b.jpg", "f1@c.jpg", "-bad.txt", "report.txt", "f2-d.jpg",
	})

	assert.Equal(t, []PrefixGroup{
		{Key: "f1", Files: []string{"f1-a.jpg", "f1@c.jpg"}},
		{Key: "f2", Files: []string{"f2_b.jpg", "f2-d.jpg"}},
		{Key: "report.txt", Files: []string{"report.txt"}},
	}, groups)
	assert.Equal(t, []string{"-bad.txt"}, skipped)
}
