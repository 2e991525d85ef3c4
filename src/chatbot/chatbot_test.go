// Blueprint for new Go projects
// Author: Christi Mahu – https://christimahu.dev
// Part of the dev repo: https://github.com/christimahu/dev/
// This file is part of a minimal idiomatic Go blueprint for creating new applications.
//
// chatbot_test.go - Unit tests for the chatbot package using Testify for
// expressive assertions. These tests cover training, prompt matching,
// fallback replies, and learning from conversation.

package chatbot

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/christimahu/dev/usherchat/src/corpus"
	"github.com/christimahu/dev/usherchat/src/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testExchanges = []Exchange{
	{Prompt: "Hi", Response: "Hi, {0}!"},
	{Prompt: "Hello", Response: "Hello, {0}!"},
	{Prompt: "How are you doing?", Response: "I'm doing great!"},
	{Prompt: "Who created you?", Response: "Cripsy Chris created me."},
}

func seededRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func newTestBot(t *testing.T, opts ...Option) (*Bot, *storage.Memory) {
	t.Helper()
	store := storage.NewMemory()
	opts = append([]Option{WithRand(seededRand())}, opts...)
	bot := NewBot("TestBot", store, opts...)
	require.NoError(t, bot.TrainFromPairs(context.Background(), testExchanges))
	return bot, store
}

func respond(t *testing.T, bot *Bot, input string) string {
	t.Helper()
	reply, err := bot.Respond(context.Background(), input)
	require.NoError(t, err)
	return reply
}

// Tests that known greeting inputs return the trained greeting response,
// regardless of case and surrounding whitespace.
func TestRespond_Greetings(t *testing.T) {
	bot, _ := newTestBot(t, WithReadOnly(true))
	assert.Equal(t, "Hi, {0}!", respond(t, bot, "hi"))
	assert.Equal(t, "Hello, {0}!", respond(t, bot, "hello"))
	assert.Equal(t, "Hi, {0}!", respond(t, bot, "  Hi  ")) // whitespace trimmed
}

// Inputs that are close to, but not exactly, a known prompt still find it.
func TestRespond_ClosestPrompt(t *testing.T) {
	bot, _ := newTestBot(t, WithReadOnly(true))
	assert.Equal(t, "I'm doing great!", respond(t, bot, "how are you doing"))
	assert.Equal(t, "Cripsy Chris created me.", respond(t, bot, "Who  created you"))
}

// Below the minimum confidence the bot uses its fallback table.
func TestRespond_MinConfidence(t *testing.T) {
	fb := &Fallback{RandomTalk: []string{"no idea"}}
	bot, _ := newTestBot(t, WithReadOnly(true), WithFallback(fb), WithMinConfidence(0.99))
	assert.Equal(t, "no idea", respond(t, bot, "who created u"))
	assert.Equal(t, "Hi, {0}!", respond(t, bot, "Hi"))
}

// Tests a variety of unrecognized inputs against an untrained bot.
// These validate the small-talk, random-talk and default replies.
func TestRespond_Fallback(t *testing.T) {
	fb := &Fallback{
		SmallTalk:  map[string]string{"thanks": "You're welcome."},
		RandomTalk: []string{"Tell me more."},
	}
	bot := NewBot("TestBot", nil, WithReadOnly(true), WithFallback(fb), WithRand(seededRand()))

	assert.Equal(t, "You're welcome.", respond(t, bot, "Thanks a lot!"))
	assert.Equal(t, "Tell me more.", respond(t, bot, "tell me a joke"))
	assert.Equal(t, "Tell me more.", respond(t, bot, "  ")) // empty input

	bare := NewBot("TestBot", nil, WithReadOnly(true), WithFallback(&Fallback{}))
	assert.Equal(t, DefaultReply, respond(t, bare, "42?"))
}

// The bot learns the input as an answer to its previous reply and its own
// reply as an answer to the input.
func TestRespond_Learns(t *testing.T) {
	ctx := context.Background()
	fb := &Fallback{RandomTalk: []string{"Polo?"}}
	bot := NewBot("TestBot", nil, WithFallback(fb), WithRand(seededRand()))
	store := bot.store

	assert.Equal(t, "Polo?", respond(t, bot, "Marco"))
	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n) // no previous reply to answer yet

	respond(t, bot, "zzz")
	n, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	learned, err := store.Responses(ctx, "polo?")
	require.NoError(t, err)
	require.Len(t, learned, 1)
	assert.Equal(t, "zzz", learned[0].Text)
	assert.Equal(t, "user", learned[0].Persona)
	assert.Equal(t, bot.Conversation(), learned[0].Conversation)

	own, err := store.Responses(ctx, "marco")
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "bot:TestBot", own[0].Persona)
}

// A read-only bot never writes to its store.
func TestRespond_ReadOnly(t *testing.T) {
	ctx := context.Background()
	bot, store := newTestBot(t, WithReadOnly(true))
	before, err := store.Count(ctx)
	require.NoError(t, err)

	respond(t, bot, "Hi")
	respond(t, bot, "something new")

	after, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

// Each selection method picks from the same candidate list.
func TestRespond_Selection(t *testing.T) {
	pairs := []Exchange{
		{Prompt: "pick", Response: "a"},
		{Prompt: "pick", Response: "b"},
		{Prompt: "pick", Response: "b"},
	}
	for method, want := range map[SelectionMethod][]string{
		SelectFirst:    {"a"},
		SelectFrequent: {"b"},
		SelectRandom:   {"a", "b"},
	} {
		t.Run(string(method), func(t *testing.T) {
			bot := NewBot("TestBot", nil, WithReadOnly(true), WithSelection(method), WithRand(seededRand()))
			require.NoError(t, bot.TrainFromPairs(context.Background(), pairs))
			assert.Contains(t, want, respond(t, bot, "pick"))
		})
	}
}

// Unknown selection names are rejected.
func TestParseSelection(t *testing.T) {
	m, err := ParseSelection(" Frequent ")
	require.NoError(t, err)
	assert.Equal(t, SelectFrequent, m)

	_, err = ParseSelection("loudest")
	assert.Error(t, err)
}

// Training from the bundled corpus lets the bot answer corpus prompts.
func TestTrainFromCorpus(t *testing.T) {
	bot := NewBot("TestBot", nil, WithReadOnly(true))
	require.NoError(t, bot.TrainFromCorpus(context.Background(), "corpus.english.greetings"))
	assert.Equal(t, "Hello", respond(t, bot, "Greetings!"))
	assert.Equal(t, "Not much.", respond(t, bot, "What's up?"))
}

// A missing corpus is an initialization error.
func TestTrainFromCorpus_NotFound(t *testing.T) {
	bot := NewBot("TestBot", nil)
	err := bot.TrainFromCorpus(context.Background(), "corpus.martian")
	assert.ErrorIs(t, err, corpus.ErrNotFound)
}

// Exchanges with empty text are rejected before anything is stored.
func TestTrainFromPairs_Empty(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	bot := NewBot("TestBot", store)

	err := bot.TrainFromPairs(ctx, []Exchange{{Prompt: "Hi", Response: "Hello"}, {Prompt: "   ", Response: "x"}})
	assert.ErrorIs(t, err, ErrEmptyExchange)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

// Flat lists pair up in order; an odd list is reported, not truncated.
func TestPairsFromList(t *testing.T) {
	pairs, err := PairsFromList([]string{"Hi", "Hello", "Bye", "See ya"})
	require.NoError(t, err)
	assert.Equal(t, []Exchange{{"Hi", "Hello"}, {"Bye", "See ya"}}, pairs)

	pairs, err = PairsFromList(nil)
	require.NoError(t, err)
	assert.Empty(t, pairs)

	_, err = PairsFromList([]string{"Hi", "Hello", "Good evening"})
	assert.ErrorIs(t, err, ErrUnpairedPrompt)
	assert.Contains(t, err.Error(), "Good evening")
}

// Verifies the bot reports its configured name.
func TestInfo(t *testing.T) {
	bot := NewBot("TestBot", nil)
	assert.Equal(t, Info{Name: "TestBot", IntelligenceLevel: 1}, bot.Info())
	assert.NotEmpty(t, bot.Conversation())
}

// Similarity is a rounded sequence ratio.
func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("hello", "hello"))
	assert.Equal(t, 0.75, Similarity("abcd", "abce"))
	assert.Equal(t, 0.0, Similarity("", "hello"))
	assert.Equal(t, 0.0, Similarity("abc", "xyz"))
}
