package wordlist

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Strategy picks the words offered for a partially typed word. The choice
// is made once at configuration time and injected into the Wordlist.
type Strategy interface {
	Match(partial string, words []string) []string
}

// Prefix offers exact-prefix matches in table order.
type Prefix struct{}

func (Prefix) Match(partial string, words []string) []string {
	var out []string
	for _, w := range words {
		if strings.HasPrefix(w, partial) {
			out = append(out, w)
		}
	}
	return out
}

// Fuzzy offers approximate matches, closest first.
type Fuzzy struct{}

func (Fuzzy) Match(partial string, words []string) []string {
	ranks := fuzzy.RankFindNormalizedFold(partial, words)
	sort.Sort(ranks)
	out := make([]string, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, r.Target)
	}
	return out
}

// ForName maps a configuration value to a strategy; unknown names fall
// back to prefix matching.
func ForName(name string) Strategy {
	if name == "fuzzy" {
		return Fuzzy{}
	}
	return Prefix{}
}
