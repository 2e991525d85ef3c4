// Blueprint for new Go projects
// Author: Christi Mahu – https://christimahu.dev
// Part of the dev repo: https://github.com/christimahu/dev/
// This file is part of a minimal idiomatic Go blueprint for creating new applications.
//
// format.go - Fills the {0} (first name) and {1} (part of day) placeholders
// that stored replies may carry.

package chatbot

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var iPhoneSuffix = regexp.MustCompile(`(?i)(['’]s iPhone|\s*iPhone\s*)`)

// Formatter personalizes replies for one user.
type Formatter struct {
	firstName string
	now       func() time.Time
}

// NewFormatter returns a Formatter addressing userName. A nil now uses
// time.Now.
func NewFormatter(userName string, now func() time.Time) *Formatter {
	if now == nil {
		now = time.Now
	}
	return &Formatter{firstName: FirstName(userName), now: now}
}

// Format replaces {0} with the user's first name and {1} with the current
// part of the day.
func (f *Formatter) Format(text string) string {
	if !strings.Contains(text, "{") {
		return text
	}
	return strings.NewReplacer(
		"{0}", f.firstName,
		"{1}", DayTime(f.now()),
	).Replace(text)
}

// FirstName extracts a properly cased first name from a display name such
// as "JOHN DOE" or "john's iPhone".
func FirstName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if stripped := strings.TrimSpace(iPhoneSuffix.ReplaceAllString(name, " ")); stripped != "" {
		name = stripped
	}

	first := strings.Fields(name)[0]
	r, _ := utf8.DecodeRuneInString(first)
	if unicode.IsUpper(r) && first != strings.ToUpper(first) {
		return first
	}
	return cases.Title(language.English).String(first)
}

// DayTime names the part of the day: morning, afternoon or evening.
func DayTime(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "morning"
	case h < 17:
		return "afternoon"
	default:
		return "evening"
	}
}
