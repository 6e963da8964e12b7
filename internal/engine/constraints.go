package engine

import (
	"regexp"
	"strings"
)

// ExclusionPattern is one phrasing meaning "the user does not want X".
// The first capture group is the excluded term.
type ExclusionPattern struct {
	Name    string
	Pattern *regexp.Regexp
}

// ExclusionPatterns is evaluated in order against the lower-cased message.
// Each pattern matches independently. There is no negation scoping beyond
// the phrase prefix, so "no, i don't want to remove rice" yields the term
// "to remove rice" as well as "rice".
var ExclusionPatterns = []ExclusionPattern{
	{Name: "dont_want", Pattern: regexp.MustCompile(`don't want ([a-z ]+)`)},
	{Name: "no", Pattern: regexp.MustCompile(`no ([a-z ]+)`)},
	{Name: "remove", Pattern: regexp.MustCompile(`remove ([a-z ]+)`)},
	{Name: "without", Pattern: regexp.MustCompile(`without ([a-z ]+)`)},
	{Name: "exclude", Pattern: regexp.MustCompile(`exclude ([a-z ]+)`)},
	{Name: "allergic_to", Pattern: regexp.MustCompile(`allergic to ([a-z ]+)`)},
}

// ExtractExclusions returns the exclusion terms found in message that are
// not already in existing, in pattern order. Terms are title-cased on their
// first character. Membership is case-insensitive.
func ExtractExclusions(message string, existing []string) []string {
	lower := strings.ToLower(message)

	seen := make(map[string]bool, len(existing))
	for _, e := range existing {
		seen[foldTerm(e)] = true
	}

	var found []string
	for _, p := range ExclusionPatterns {
		m := p.Pattern.FindStringSubmatch(lower)
		if len(m) < 2 {
			continue
		}
		term := strings.TrimSpace(m[1])
		if term == "" || seen[foldTerm(term)] {
			continue
		}
		seen[foldTerm(term)] = true
		found = append(found, titleFirst(term))
	}
	return found
}

// foldTerm is the single case-folding rule for exclusion terms, used for
// membership and for substring matching against inventory names.
func foldTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func titleFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
