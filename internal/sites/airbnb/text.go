package airbnb

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// fold returns the case folded form of s. A Caser keeps state, so one is
// created per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

// containsFold reports whether sub occurs in s ignoring case.
func containsFold(s, sub string) bool {
	return strings.Contains(fold(s), fold(sub))
}

// containsAnyFold reports whether any of subs occurs in s ignoring case.
func containsAnyFold(s string, subs []string) bool {
	folded := fold(s)
	for _, sub := range subs {
		if strings.Contains(folded, fold(sub)) {
			return true
		}
	}
	return false
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }

// dedupe keeps the first occurrence of every value.
type dedupe struct {
	seen map[string]struct{}
}

func newDedupe() *dedupe { return &dedupe{seen: make(map[string]struct{})} }

// add reports whether v was not seen before and records it.
func (d *dedupe) add(v string) bool {
	if _, ok := d.seen[v]; ok {
		return false
	}
	d.seen[v] = struct{}{}
	return true
}
