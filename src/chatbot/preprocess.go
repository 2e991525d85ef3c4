// Blueprint for new Go projects
// Author: Christi Mahu – https://christimahu.dev
// Part of the dev repo: https://github.com/christimahu/dev/
// This file is part of a minimal idiomatic Go blueprint for creating new applications.
//
// preprocess.go - Text normalization applied to every statement before it is
// stored or compared.

package chatbot

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var quotes = strings.NewReplacer(
	"‘", "'", "’", "'",
	"“", `"`, "”", `"`,
)

// Clean unescapes HTML entities and collapses runs of whitespace.
func Clean(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}

// ToASCII strips accents and drops any rune that has no ASCII form.
func ToASCII(s string) string {
	t := transform.Chain(
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)
	out, _, err := transform.String(t, quotes.Replace(s))
	if err != nil {
		return s
	}
	return out
}

// SearchText is the form of s used for matching: cleaned, ASCII and
// case-folded.
func SearchText(s string) string {
	return Clean(cases.Fold().String(ToASCII(Clean(s))))
}
