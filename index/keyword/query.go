package keyword

import (
	"strings"
	"unicode"
)

// queryPlan is the parsed form of a raw query string.
type queryPlan struct {
	phrase   []string // quoted phrase, adjacency-checked
	terms    []string // plain terms, OR-merged
	prefixes []string // trailing-* prefixes, expanded against the vocabulary
}

func (p queryPlan) empty() bool {
	return len(p.phrase) == 0 && len(p.terms) == 0 && len(p.prefixes) == 0
}

// parseQuery interprets the two supported operators: a fully quoted query is
// a phrase, a trailing * marks a prefix. Anything else, including unbalanced
// or embedded quotes, falls back to plain term matching rather than erroring.
func parseQuery(query string) queryPlan {
	var plan queryPlan

	trimmed := strings.TrimSpace(query)
	if len(trimmed) >= 2 && strings.HasPrefix(trimmed, `"`) && strings.HasSuffix(trimmed, `"`) {
		inner := trimmed[1 : len(trimmed)-1]
		if !strings.Contains(inner, `"`) {
			tokens := Tokenize(inner)
			if len(tokens) >= 2 {
				plan.phrase = make([]string, len(tokens))
				for i, tok := range tokens {
					plan.phrase[i] = tok.Term
				}
				return plan
			}
			// A one-word phrase is just a term query.
			trimmed = inner
		}
	}

	for _, field := range strings.Fields(trimmed) {
		if len(field) >= 2 && strings.HasSuffix(field, "*") {
			if prefix := normalizePrefix(field[:len(field)-1]); prefix != "" {
				plan.prefixes = append(plan.prefixes, prefix)
				continue
			}
		}
		for _, tok := range Tokenize(field) {
			plan.terms = append(plan.terms, tok.Term)
		}
	}
	return plan
}

// normalizePrefix lowercases and strips non-alphanumerics. Prefixes are not
// stemmed; they match the indexed vocabulary as stored.
func normalizePrefix(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
