// Blueprint for new Go projects
// Author: Christi Mahu – https://christimahu.dev
// Part of the dev repo: https://github.com/christimahu/dev/
// This file is part of a minimal idiomatic Go blueprint for creating new applications.
//
// fallback.go - Replies used when no known prompt is close enough: a
// keyword small-talk table first, then a random line.

package chatbot

import (
	_ "embed"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

// DefaultReply is used when there is neither a small-talk hit nor any
// random talk.
const DefaultReply = "I'm not sure how to respond to that."

//go:embed fallback.yml
var defaultFallbackYAML []byte

// Fallback holds the replies of last resort.
type Fallback struct {
	// SmallTalk maps a lower-case word to a reply.
	SmallTalk map[string]string
	// RandomTalk is picked from when no word matches.
	RandomTalk []string
}

type fallbackFile struct {
	SmallTalk  map[string]string `yaml:"small_talk"`
	RandomTalk []string          `yaml:"random_talk"`
}

// ParseFallback reads a fallback table. Small-talk keys may list several
// words separated by "|", all sharing one reply.
func ParseFallback(data []byte) (*Fallback, error) {
	var file fallbackFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse fallback table: %w", err)
	}

	f := &Fallback{SmallTalk: make(map[string]string), RandomTalk: file.RandomTalk}
	for key, reply := range file.SmallTalk {
		for _, word := range strings.Split(key, "|") {
			if word = strings.ToLower(strings.TrimSpace(word)); word != "" {
				f.SmallTalk[word] = reply
			}
		}
	}
	return f, nil
}

// DefaultFallback returns the bundled fallback table.
func DefaultFallback() *Fallback {
	f, err := ParseFallback(defaultFallbackYAML)
	if err != nil {
		panic(err)
	}
	return f
}

// Reply returns the small-talk reply for the first known word of text, or a
// random line.
func (f *Fallback) Reply(text string, rng *rand.Rand) string {
	for _, word := range words(text) {
		if reply, ok := f.SmallTalk[word]; ok {
			return reply
		}
	}
	if len(f.RandomTalk) == 0 {
		return DefaultReply
	}
	return f.RandomTalk[rng.IntN(len(f.RandomTalk))]
}

func words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}
