// Package clean holds the text heuristics behind the cleanup passes. Every
// heuristic is an ordered, named rule so it can be tested on its own.
package clean

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

func runeLen(s string) int { return utf8.RuneCountInString(s) }

// firstRunes returns the first n runes of s.
func firstRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
}

func isAllCaps(s string) bool { return s == strings.ToUpper(s) }

// Alternation builds a regexp alternation of the literal terms, longest first
// so a shorter term never shadows a longer one sharing its prefix. No terms
// yields a pattern that never matches.
func Alternation(terms []string) string {
	if len(terms) == 0 {
		return `[^\s\S]`
	}
	sorted := append([]string(nil), terms...)
	sort.SliceStable(sorted, func(i, j int) bool { return runeLen(sorted[i]) > runeLen(sorted[j]) })
	quoted := make([]string, len(sorted))
	for i, t := range sorted {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return strings.Join(quoted, "|")
}

func upperSet(terms []string) map[string]bool {
	set := make(map[string]bool, len(terms))
	for _, t := range terms {
		set[strings.ToUpper(strings.TrimSpace(t))] = true
	}
	return set
}
