// Package esptext implements the Spanish text formatting rules shared by
// the report generator and the diagnosis orchestrator: euphonic conjunction
// selection, clinical list joining, acronym recasing and sentence-lead
// casing. Keeping them here keeps the linguistic rules out of the
// orchestrator's control flow and independently testable.
package esptext

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// acronyms are the protected report tokens that must always render in their
// canonical casing, independent of sentence position.
var acronyms = map[string]string{
	"da":   "DA",
	"cd":   "CD",
	"cx":   "Cx",
	"wmsi": "WMSI",
}

var acronymRe = regexp.MustCompile(`(?i)\b(da|cd|cx|wmsi)\b`)

// Conjunction returns the Spanish coordinating conjunction to place before
// next: "e" when next begins with the sound /i/ ("i", "í" or "hi", but not
// the diphthong "hie"), otherwise "y".
func Conjunction(next string) string {
	w := strings.ToLower(strings.TrimSpace(next))
	if w == "" {
		return "y"
	}
	if strings.HasPrefix(w, "i") || strings.HasPrefix(w, "í") {
		return "e"
	}
	if strings.HasPrefix(w, "hi") && !strings.HasPrefix(w, "hie") {
		return "e"
	}
	return "y"
}

// Join renders items as a Spanish enumeration: "a", "a y b",
// "a, b y c". The conjunction before the last item follows the euphonic
// rule.
func Join(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	last := items[len(items)-1]
	head := strings.Join(items[:len(items)-1], ", ")
	return head + " " + Conjunction(last) + " " + last
}

// RecaseAcronyms rewrites every protected acronym token to its canonical
// casing, case-insensitively and on word boundaries only.
func RecaseAcronyms(s string) string {
	return acronymRe.ReplaceAllStringFunc(s, func(m string) string {
		if canon, ok := acronyms[strings.ToLower(m)]; ok {
			return canon
		}
		return m
	})
}

// LowerLead lowercases the first letter of a clause so it can be merged
// mid-sentence, unless the clause opens with a protected acronym.
func LowerLead(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return trimmed
	}
	first := trimmed
	if i := strings.IndexAny(trimmed, " ,;"); i > 0 {
		first = trimmed[:i]
	}
	if _, ok := acronyms[strings.ToLower(first)]; ok {
		return trimmed
	}
	r, size := utf8.DecodeRuneInString(trimmed)
	return string(unicode.ToLower(r)) + trimmed[size:]
}

// UpperLead capitalizes the first letter of a sentence.
func UpperLead(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return trimmed
	}
	r, size := utf8.DecodeRuneInString(trimmed)
	return string(unicode.ToUpper(r)) + trimmed[size:]
}

// EnsurePeriod appends a terminating period when the sentence lacks one.
func EnsurePeriod(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return trimmed
	}
	if strings.HasSuffix(trimmed, ".") {
		return trimmed
	}
	return trimmed + "."
}

// StripPeriod removes a single trailing period, for clause merging.
func StripPeriod(s string) string {
	return strings.TrimSuffix(strings.TrimSpace(s), ".")
}

// FirstWord returns the leading word of a clause, used to pick the
// conjunction that precedes it.
func FirstWord(s string) string {
	trimmed := strings.TrimSpace(s)
	if i := strings.IndexAny(trimmed, " ,;"); i > 0 {
		return trimmed[:i]
	}
	return trimmed
}
