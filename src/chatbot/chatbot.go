// Blueprint for new Go projects
// Author: Christi Mahu – https://christimahu.dev
// Part of the dev repo: https://github.com/christimahu/dev/
// This file is part of a minimal idiomatic Go blueprint for creating new applications.
//
// chatbot.go - A retrieval chatbot that learns statements from example
// exchanges and corpora, then answers with the stored reply to the closest
// known prompt.

package chatbot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/christimahu/dev/usherchat/src/corpus"
	"github.com/christimahu/dev/usherchat/src/storage"
	"github.com/google/uuid"
)

// Conversation tag given to statements learned during training.
const trainingConversation = "training"

var (
	// ErrUnpairedPrompt is returned when a flat exchange list ends with a
	// prompt that has no response.
	ErrUnpairedPrompt = errors.New("exchange list has a prompt without a response")

	// ErrEmptyExchange is returned when an exchange has an empty prompt or
	// response.
	ErrEmptyExchange = errors.New("exchange has empty text")
)

// Info describes an Agent. Agents with a higher IntelligenceLevel are asked
// first when chained.
type Info struct {
	Name              string
	IntelligenceLevel int
}

// Agent is anything that can be trained and then asked for replies.
type Agent interface {
	Info() Info
	TrainFromPairs(ctx context.Context, exchanges []Exchange) error
	TrainFromCorpus(ctx context.Context, id string) error
	Respond(ctx context.Context, input string) (string, error)
}

// Exchange is one example prompt with the response the bot should give.
type Exchange struct {
	Prompt   string
	Response string
}

// PairsFromList converts an alternating prompt, response, prompt, ... list
// into exchanges. A trailing prompt without a response is an error rather
// than being dropped.
func PairsFromList(list []string) ([]Exchange, error) {
	if len(list)%2 != 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnpairedPrompt, list[len(list)-1])
	}
	out := make([]Exchange, 0, len(list)/2)
	for i := 0; i < len(list); i += 2 {
		out = append(out, Exchange{Prompt: list[i], Response: list[i+1]})
	}
	return out, nil
}

// Bot is a chatbot that knows its name and keeps what it learns in a Store.
type Bot struct {
	Name string

	store         storage.Store
	conversation  string
	readOnly      bool
	maxSimilarity float64
	minConfidence float64
	selection     SelectionMethod
	fallback      *Fallback
	rng           *rand.Rand
	now           func() time.Time

	// previous is the last reply given in this conversation.
	previous string
}

// Option configures a Bot.
type Option func(*Bot)

// WithReadOnly stops the bot from learning from conversations.
func WithReadOnly(readOnly bool) Option {
	return func(b *Bot) { b.readOnly = readOnly }
}

// WithMaxSimilarity sets the confidence at which the prompt search stops
// early.
func WithMaxSimilarity(v float64) Option {
	return func(b *Bot) { b.maxSimilarity = v }
}

// WithMinConfidence sets the confidence below which the bot falls back to
// small talk.
func WithMinConfidence(v float64) Option {
	return func(b *Bot) { b.minConfidence = v }
}

// WithSelection sets how one reply is chosen among several candidates.
func WithSelection(m SelectionMethod) Option {
	return func(b *Bot) { b.selection = m }
}

// WithFallback replaces the small-talk and random-talk tables.
func WithFallback(f *Fallback) Option {
	return func(b *Bot) { b.fallback = f }
}

// WithRand sets the random source used for random selection and random
// talk.
func WithRand(r *rand.Rand) Option {
	return func(b *Bot) { b.rng = r }
}

// WithClock sets the time source for statement timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Bot) { b.now = now }
}

// NewBot returns a new Bot instance with the provided name. A nil store
// means an in-memory one.
func NewBot(name string, store storage.Store, opts ...Option) *Bot {
	if store == nil {
		store = storage.NewMemory()
	}
	b := &Bot{
		Name:          name,
		store:         store,
		conversation:  uuid.NewString(),
		maxSimilarity: 0.95,
		minConfidence: 0.35,
		selection:     SelectFirst,
		rng:           rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.fallback == nil {
		b.fallback = DefaultFallback()
	}
	return b
}

// Info implements Agent.
func (b *Bot) Info() Info {
	return Info{Name: b.Name, IntelligenceLevel: 1}
}

// Conversation returns the ID that tags statements learned in this session.
func (b *Bot) Conversation() string {
	return b.conversation
}

// TrainFromPairs stores each exchange response as a reply to its prompt.
func (b *Bot) TrainFromPairs(ctx context.Context, exchanges []Exchange) error {
	statements := make([]storage.Statement, 0, len(exchanges))
	for i, ex := range exchanges {
		prompt, response := Clean(ex.Prompt), Clean(ex.Response)
		if prompt == "" || response == "" {
			return fmt.Errorf("exchange %d: %w", i, ErrEmptyExchange)
		}
		statements = append(statements, b.statement(response, prompt, trainingConversation, ""))
	}
	if err := b.store.Add(ctx, statements...); err != nil {
		return fmt.Errorf("store exchanges: %w", err)
	}
	slog.Debug("Trained from exchanges", "bot", b.Name, "statements", len(statements))
	return nil
}

// TrainFromCorpus loads the corpus named by id and learns every line as a
// reply to the line before it.
func (b *Bot) TrainFromCorpus(ctx context.Context, id string) error {
	convs, err := corpus.Load(id)
	if err != nil {
		return err
	}

	var statements []storage.Statement
	for _, conv := range convs {
		prev := ""
		for _, line := range conv.Lines {
			text := Clean(line)
			if text == "" {
				continue
			}
			if prev != "" {
				statements = append(statements, b.statement(text, prev, trainingConversation, ""))
			}
			prev = text
		}
	}
	if err := b.store.Add(ctx, statements...); err != nil {
		return fmt.Errorf("store corpus %q: %w", id, err)
	}
	slog.Debug("Trained from corpus", "bot", b.Name, "corpus", id, "statements", len(statements))
	return nil
}

// Respond returns the reply for input. Replies keep their {0}/{1}
// placeholders; see Formatter.
func (b *Bot) Respond(ctx context.Context, input string) (string, error) {
	text := Clean(input)

	m, err := b.match(ctx, SearchText(text))
	if err != nil {
		return "", err
	}

	var reply string
	if m.Prompt != "" && m.Confidence >= b.minConfidence {
		responses, err := b.store.Responses(ctx, m.Prompt)
		if err != nil {
			return "", fmt.Errorf("find responses: %w", err)
		}
		reply = b.selection.pick(responses, b.rng)
	}
	if reply == "" {
		reply = b.fallback.Reply(text, b.rng)
		slog.Debug("No confident match, using fallback", "input", text, "confidence", m.Confidence)
	} else {
		slog.Debug("Matched prompt", "input", text, "prompt", m.Prompt, "confidence", m.Confidence)
	}

	if !b.readOnly && text != "" {
		if err := b.learn(ctx, text, reply); err != nil {
			return "", err
		}
	}
	return reply, nil
}

// learn records input as a reply to the previous answer and reply as the
// answer to input.
func (b *Bot) learn(ctx context.Context, input, reply string) error {
	var statements []storage.Statement
	if b.previous != "" {
		statements = append(statements, b.statement(input, b.previous, b.conversation, "user"))
	}
	statements = append(statements, b.statement(reply, input, b.conversation, "bot:"+b.Name))

	if err := b.store.Add(ctx, statements...); err != nil {
		return fmt.Errorf("learn response: %w", err)
	}
	b.previous = reply
	return nil
}

func (b *Bot) statement(text, inResponseTo, conversation, persona string) storage.Statement {
	st := storage.Statement{
		Text:         text,
		SearchText:   SearchText(text),
		Conversation: conversation,
		Persona:      persona,
		CreatedAt:    b.now(),
	}
	if inResponseTo != "" {
		st.InResponseTo = inResponseTo
		st.SearchInResponseTo = SearchText(inResponseTo)
	}
	return st
}
