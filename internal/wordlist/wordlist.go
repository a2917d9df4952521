// Package wordlist implements the two-column PGP word table used for code
// phrases: column selection alternates with every dash-separated word, so
// transcription errors that drop or duplicate a word are detectable.
package wordlist

import (
	"crypto/rand"
	_ "embed"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

//go:embed pgpwords.json
var pgpwordsRaw []byte

type Wordlist struct {
	numWords int
	words    [][]string
	strategy Strategy
}

func New(numWords int, words [][]string, s Strategy) *Wordlist {
	return &Wordlist{numWords: numWords, words: words, strategy: s}
}

// Default returns the standard table: words[0] holds the three-syllable
// ("even") column, words[1] the two-syllable ("odd") one, both lowercased.
func Default(numWords int, s Strategy) (*Wordlist, error) {
	var raw map[string][]string
	if err := json.Unmarshal(pgpwordsRaw, &raw); err != nil {
		return nil, fmt.Errorf("parse embedded word table: %w", err)
	}
	even := make([]string, 256)
	odd := make([]string, 256)
	for key, pair := range raw {
		var index int
		if _, err := fmt.Sscanf(key, "%02X", &index); err != nil || index > 255 {
			return nil, fmt.Errorf("bad word table index %q", key)
		}
		if len(pair) != 2 {
			return nil, fmt.Errorf("word table entry %q has %d columns", key, len(pair))
		}
		odd[index] = strings.ToLower(pair[0])
		even[index] = strings.ToLower(pair[1])
	}
	return New(numWords, [][]string{even, odd}, s), nil
}

// Completions lists full-prefix completions for a partially typed code
// phrase. Only the word after the last dash is completed; the column is
// chosen by the number of dashes already typed.
func (w *Wordlist) Completions(prefix string) []string {
	column := w.words[strings.Count(prefix, "-")%len(w.words)]

	head, partial := "", prefix
	if i := strings.LastIndex(prefix, "-"); i >= 0 {
		head, partial = prefix[:i], prefix[i+1:]
	}

	matches := w.strategy.Match(partial, column)
	out := make([]string, 0, len(matches))
	for _, word := range matches {
		if head == "" {
			out = append(out, word)
			continue
		}
		out = append(out, head+"-"+word)
	}
	return out
}

// ColumnFor returns the column the word under the cursor draws from.
// A negative cursor means end-of-line.
func (w *Wordlist) ColumnFor(prefix string, cursor int) []string {
	limited := prefix
	if cursor >= 0 && cursor < len(prefix) {
		limited = prefix[:cursor]
	}
	return w.words[strings.Count(limited, "-")%len(w.words)]
}

// PartialAt extracts the dash-delimited word surrounding position pos.
func PartialAt(prefix string, pos int) string {
	start := 0
	if i := strings.LastIndex(prefix[:pos], "-"); i >= 0 {
		start = i + 1
	}
	end := len(prefix)
	if i := strings.Index(prefix[pos:], "-"); i >= 0 {
		end = pos + i
	}
	return prefix[start:end]
}

// Choose produces a random code phrase of numWords words, cycling through
// the columns. The source is crypto/rand: code phrases guard a key
// exchange, so a guessable generator is not acceptable.
func (w *Wordlist) Choose() (string, error) {
	parts := make([]string, 0, w.numWords)
	for i := 0; i < w.numWords; i++ {
		column := w.words[i%len(w.words)]
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(column))))
		if err != nil {
			return "", fmt.Errorf("draw random word: %w", err)
		}
		parts = append(parts, column[n.Int64()])
	}
	return strings.Join(parts, "-"), nil
}
