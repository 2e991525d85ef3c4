// Blueprint for new Go projects
// Author: Christi Mahu – https://christimahu.dev
// Part of the dev repo: https://github.com/christimahu/dev/
// This file is part of a minimal idiomatic Go blueprint for creating new applications.
//
// storage.go - Statement model and the Store interface shared by every
// storage backend (memory, SQLite, Badger).

package storage

import (
	"context"
	"time"
)

// Statement is one known line of conversation. A statement with a non-empty
// InResponseTo is a known response to that text.
type Statement struct {
	Text               string    `json:"text"`
	SearchText         string    `json:"search_text"`
	InResponseTo       string    `json:"in_response_to,omitempty"`
	SearchInResponseTo string    `json:"search_in_response_to,omitempty"`
	Conversation       string    `json:"conversation"`
	Persona            string    `json:"persona,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// Store persists statements learned by a bot.
type Store interface {
	// Add appends statements in order.
	Add(ctx context.Context, statements ...Statement) error

	// Prompts returns the distinct SearchInResponseTo values, in the order
	// they were first stored.
	Prompts(ctx context.Context) ([]string, error)

	// Responses returns every statement whose SearchInResponseTo equals
	// searchPrompt, in insertion order.
	Responses(ctx context.Context, searchPrompt string) ([]Statement, error)

	// Count returns the number of stored statements.
	Count(ctx context.Context) (int, error)

	Close() error
}
