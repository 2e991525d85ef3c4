// Blueprint for new Go projects
// Author: Christi Mahu – https://christimahu.dev
// Part of the dev repo: https://github.com/christimahu/dev/
// This file is part of a minimal idiomatic Go blueprint for creating new applications.
//
// memory.go - In-process Store. Everything is lost when the program exits.

package storage

import (
	"context"
	"sync"
)

// Memory is a Store backed by a slice.
type Memory struct {
	mu         sync.Mutex
	statements []Statement
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Add implements Store.
func (m *Memory) Add(_ context.Context, statements ...Statement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statements = append(m.statements, statements...)
	return nil
}

// Prompts implements Store.
func (m *Memory) Prompts(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]struct{})
	var prompts []string
	for _, s := range m.statements {
		if s.SearchInResponseTo == "" {
			continue
		}
		if _, ok := seen[s.SearchInResponseTo]; ok {
			continue
		}
		seen[s.SearchInResponseTo] = struct{}{}
		prompts = append(prompts, s.SearchInResponseTo)
	}
	return prompts, nil
}

// Responses implements Store.
func (m *Memory) Responses(_ context.Context, searchPrompt string) ([]Statement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Statement
	for _, s := range m.statements {
		if s.SearchInResponseTo == searchPrompt {
			out = append(out, s)
		}
	}
	return out, nil
}

// Count implements Store.
func (m *Memory) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.statements), nil
}

// Close implements Store.
func (m *Memory) Close() error { return nil }
