// Blueprint for new Go projects
// Author: Christi Mahu – https://christimahu.dev
// Part of the dev repo: https://github.com/christimahu/dev/
// This file is part of a minimal idiomatic Go blueprint for creating new applications.
//
// chain.go - Combines several agents; the most intelligent one that manages
// to answer wins.

package chatbot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// ErrNoResponse is returned by a Chain when none of its agents answered.
var ErrNoResponse = errors.New("no agent produced a response")

// Chain is an Agent that delegates to other agents by descending
// intelligence level.
type Chain struct {
	agents []Agent
}

// NewChain orders agents by intelligence level, highest first. Agents with
// the same level keep their given order.
func NewChain(agents ...Agent) *Chain {
	ordered := append([]Agent(nil), agents...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Info().IntelligenceLevel > ordered[j].Info().IntelligenceLevel
	})
	return &Chain{agents: ordered}
}

// Agents returns the chained agents in the order they are asked.
func (c *Chain) Agents() []Agent {
	return append([]Agent(nil), c.agents...)
}

// Info implements Agent.
func (c *Chain) Info() Info {
	names := make([]string, 0, len(c.agents))
	level := 0
	for i, a := range c.agents {
		info := a.Info()
		names = append(names, info.Name)
		if i == 0 || info.IntelligenceLevel > level {
			level = info.IntelligenceLevel
		}
	}
	return Info{Name: strings.Join(names, "+"), IntelligenceLevel: level}
}

// TrainFromPairs trains every agent; the first failure aborts.
func (c *Chain) TrainFromPairs(ctx context.Context, exchanges []Exchange) error {
	for _, a := range c.agents {
		if err := a.TrainFromPairs(ctx, exchanges); err != nil {
			return fmt.Errorf("%s: %w", a.Info().Name, err)
		}
	}
	return nil
}

// TrainFromCorpus trains every agent; the first failure aborts.
func (c *Chain) TrainFromCorpus(ctx context.Context, id string) error {
	for _, a := range c.agents {
		if err := a.TrainFromCorpus(ctx, id); err != nil {
			return fmt.Errorf("%s: %w", a.Info().Name, err)
		}
	}
	return nil
}

// Respond asks each agent in turn and returns the first non-empty reply.
func (c *Chain) Respond(ctx context.Context, input string) (string, error) {
	for _, a := range c.agents {
		reply, err := a.Respond(ctx, input)
		if err == nil && reply != "" {
			return reply, nil
		}
		if err == nil {
			err = errors.New("empty response")
		}
		slog.Warn("Bot converse failed", "bot", a.Info().Name, "error", err)
	}
	return "", ErrNoResponse
}
