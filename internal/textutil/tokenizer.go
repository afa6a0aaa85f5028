// Package textutil provides the significant-term tokenizer shared by query
// generation, quality scoring and milestone matching.
package textutil

import (
	"strings"
	"unicode"
)

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "how": {}, "in": {}, "into": {},
	"is": {}, "it": {}, "of": {}, "on": {}, "or": {}, "that": {},
	"the": {}, "this": {}, "to": {}, "was": {}, "what": {}, "when": {},
	"where": {}, "which": {}, "with": {}, "you": {}, "your": {}, "will": {},
	"can": {}, "do": {}, "does": {}, "not": {}, "we": {}, "i": {},
}

// IsStopWord reports whether word carries no search significance.
func IsStopWord(word string) bool {
	_, ok := stopWords[strings.ToLower(word)]
	return ok
}

// Tokenize lowercases input and splits it into alphanumeric terms,
// dropping everything else.
func Tokenize(input string) []string {
	return strings.FieldsFunc(strings.ToLower(input), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// SignificantTerms tokenizes input and drops stop words and single-rune
// terms, preserving first-seen order without duplicates.
func SignificantTerms(input string) []string {
	seen := make(map[string]struct{})
	var terms []string
	for _, tok := range Tokenize(input) {
		if len([]rune(tok)) < 2 {
			continue
		}
		if IsStopWord(tok) {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		terms = append(terms, tok)
	}
	return terms
}

// TermFrequencies counts significant-term occurrences in input.
func TermFrequencies(input string) map[string]int {
	freq := make(map[string]int)
	for _, tok := range Tokenize(input) {
		if len([]rune(tok)) < 2 || IsStopWord(tok) {
			continue
		}
		freq[tok]++
	}
	return freq
}

// Overlap returns the fraction of base terms also present in other,
// in [0,1]. An empty base yields 0.
func Overlap(base, other []string) float64 {
	if len(base) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(other))
	for _, t := range other {
		set[t] = struct{}{}
	}
	matched := 0
	for _, t := range base {
		if _, ok := set[t]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(base))
}
