// Blueprint for new Go projects
// Author: Christi Mahu – https://christimahu.dev
// Part of the dev repo: https://github.com/christimahu/dev/
// This file is part of a minimal idiomatic Go blueprint for creating new applications.
//
// openai.go - An Agent that answers through an OpenAI-compatible chat
// completion API, using the training exchanges as few-shot examples.

package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/christimahu/dev/usherchat/src/chatbot"
	"github.com/sashabaranov/go-openai"
)

// IntelligenceLevel ranks the model agent ahead of the retrieval bot.
const IntelligenceLevel = 10

// ErrNoChoices is returned when the API answers without any completion.
var ErrNoChoices = errors.New("completion returned no choices")

// Config selects the API endpoint and model.
type Config struct {
	Name    string
	APIKey  string
	BaseURL string
	Model   string
	// MaxHistory bounds how many past turns are sent with each request.
	MaxHistory int
}

// Agent is a model-backed chatbot.Agent.
type Agent struct {
	client     *openai.Client
	name       string
	model      string
	maxHistory int
	shots      []openai.ChatCompletionMessage
	history    []openai.ChatCompletionMessage
}

// New returns an Agent for cfg.
func New(cfg Config) *Agent {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.MaxHistory <= 0 {
		cfg.MaxHistory = 20
	}
	return &Agent{
		client:     openai.NewClientWithConfig(clientCfg),
		name:       cfg.Name,
		model:      cfg.Model,
		maxHistory: cfg.MaxHistory,
	}
}

// Info implements chatbot.Agent.
func (a *Agent) Info() chatbot.Info {
	return chatbot.Info{Name: a.name + " (" + a.model + ")", IntelligenceLevel: IntelligenceLevel}
}

// TrainFromPairs keeps the exchanges as example turns for every request.
func (a *Agent) TrainFromPairs(_ context.Context, exchanges []chatbot.Exchange) error {
	for i, ex := range exchanges {
		if strings.TrimSpace(ex.Prompt) == "" || strings.TrimSpace(ex.Response) == "" {
			return fmt.Errorf("exchange %d: %w", i, chatbot.ErrEmptyExchange)
		}
		a.shots = append(a.shots,
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: ex.Prompt},
			openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: ex.Response},
		)
	}
	return nil
}

// TrainFromCorpus does nothing; the model already knows small talk.
func (a *Agent) TrainFromCorpus(_ context.Context, id string) error {
	slog.Debug("Corpus training skipped for model agent", "corpus", id, "model", a.model)
	return nil
}

func (a *Agent) systemPrompt() string {
	return fmt.Sprintf("You are %s, a friendly chat companion. Answer in one short line. "+
		"Write {0} where you would use the user's first name and {1} for the part of the day.", a.name)
}

// Respond sends the examples, recent history and input to the model.
func (a *Agent) Respond(ctx context.Context, input string) (string, error) {
	user := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: input}

	messages := make([]openai.ChatCompletionMessage, 0, len(a.shots)+len(a.history)+2)
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: a.systemPrompt()})
	messages = append(messages, a.shots...)
	messages = append(messages, a.history...)
	messages = append(messages, user)

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    a.model,
		Messages: messages,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	reply := strings.Join(strings.Fields(resp.Choices[0].Message.Content), " ")
	a.remember(user, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: reply})
	return reply, nil
}

func (a *Agent) remember(turns ...openai.ChatCompletionMessage) {
	a.history = append(a.history, turns...)
	if over := len(a.history) - a.maxHistory; over > 0 {
		a.history = append([]openai.ChatCompletionMessage(nil), a.history[over:]...)
	}
}
