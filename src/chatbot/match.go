// Blueprint for new Go projects
// Author: Christi Mahu – https://christimahu.dev
// Part of the dev repo: https://github.com/christimahu/dev/
// This file is part of a minimal idiomatic Go blueprint for creating new applications.
//
// match.go - Finding the closest known prompt and choosing one of its
// stored responses.

package chatbot

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/christimahu/dev/usherchat/src/storage"
	"github.com/pmezard/go-difflib/difflib"
)

// Match is the known prompt closest to an input.
type Match struct {
	Prompt     string
	Confidence float64
}

// Similarity returns the difflib sequence ratio of a and b, rounded to two
// decimals. Empty text is never similar to anything.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return math.Round(m.Ratio()*100) / 100
}

func (b *Bot) match(ctx context.Context, search string) (Match, error) {
	var best Match
	if search == "" {
		return best, nil
	}

	prompts, err := b.store.Prompts(ctx)
	if err != nil {
		return best, fmt.Errorf("list prompts: %w", err)
	}
	for _, p := range prompts {
		c := Similarity(search, p)
		if c > best.Confidence {
			best = Match{Prompt: p, Confidence: c}
		}
		if c >= b.maxSimilarity {
			break
		}
	}
	return best, nil
}

// SelectionMethod decides which of several stored responses is used.
type SelectionMethod string

const (
	SelectFirst    SelectionMethod = "first"
	SelectFrequent SelectionMethod = "frequent"
	SelectRandom   SelectionMethod = "random"
)

// ParseSelection validates a selection method name.
func ParseSelection(s string) (SelectionMethod, error) {
	switch m := SelectionMethod(strings.ToLower(strings.TrimSpace(s))); m {
	case SelectFirst, SelectFrequent, SelectRandom:
		return m, nil
	default:
		return "", fmt.Errorf("unknown response selection method %q", s)
	}
}

func (m SelectionMethod) pick(responses []storage.Statement, rng *rand.Rand) string {
	if len(responses) == 0 {
		return ""
	}
	switch m {
	case SelectRandom:
		return responses[rng.IntN(len(responses))].Text
	case SelectFrequent:
		counts := make(map[string]int, len(responses))
		best, bestCount := "", 0
		for _, r := range responses {
			counts[r.Text]++
			// ties go to the text that reached the count first
			if counts[r.Text] > bestCount {
				best, bestCount = r.Text, counts[r.Text]
			}
		}
		return best
	default:
		return responses[0].Text
	}
}
