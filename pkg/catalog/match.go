package catalog

import (
	"regexp"
	"strings"
)

var (
	// trademark marks and clock suffixes found in OS-reported brand strings
	noisePattern = regexp.MustCompile(`(?i)\((r|tm|c)\)|\bcpu\b|\bprocessor\b|\bgraphics\b|@\s*[\d.]+\s*[gm]hz|\b\d+-core\b|\bwith radeon\b.*$`)
	spacePattern = regexp.MustCompile(`\s+`)

	vendorWords = []string{
		"advanced micro devices, inc.",
		"advanced micro devices",
		"nvidia corporation",
		"intel corporation",
		"nvidia",
		"intel",
		"amd",
		"ati",
	}
	familyWords = []string{"geforce", "radeon"}
)

// Candidates returns the query strings tried, in order, when resolving an
// OS-reported model name: the name itself, the name without trademark and
// clock noise, then without the vendor and finally without the product
// family word. Duplicates and empty strings are dropped.
func Candidates(detected string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(s string) {
		s = strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, s)
	}

	add(detected)

	clean := noisePattern.ReplaceAllString(detected, " ")
	add(clean)

	noVendor := trimPrefixWords(clean, vendorWords)
	add(noVendor)

	add(trimPrefixWords(noVendor, familyWords))

	return out
}

func trimPrefixWords(s string, words []string) string {
	s = strings.TrimSpace(spacePattern.ReplaceAllString(s, " "))
	for {
		lower := strings.ToLower(s)
		trimmed := false
		for _, w := range words {
			if strings.HasPrefix(lower, w+" ") {
				s = strings.TrimSpace(s[len(w):])
				trimmed = true
				break
			}
		}
		if !trimmed {
			return s
		}
	}
}

// Find resolves an OS-reported model name by trying each of its
// Candidates with Lookup. The matched query is returned with the record.
func (c *Catalog) Find(cat Category, detected string) (Record, string, bool) {
	for _, q := range Candidates(detected) {
		if r, ok := c.Lookup(cat, q); ok {
			return r, q, true
		}
	}
	return Record{}, "", false
}
