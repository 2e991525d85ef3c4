// Blueprint for new Go projects
// Author: Christi Mahu – https://christimahu.dev
// Part of the dev repo: https://github.com/christimahu/dev/
// This file is part of a minimal idiomatic Go blueprint for creating new applications.
//
// badger.go - Store backed by BadgerDB. Statements are JSON values under
// "statement/<sequence>" keys so that key order is insertion order.

package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v3"
)

var (
	statementPrefix = []byte("statement/")
	sequenceKey     = []byte("seq/statement")
)

// Badger is a Store persisted in a BadgerDB directory.
type Badger struct {
	db  *badger.DB
	seq *badger.Sequence
	mu  sync.Mutex
}

// NewBadger opens a BadgerDB at dir. An empty dir opens an in-memory
// database.
func NewBadger(dir string) (*Badger, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	seq, err := db.GetSequence(sequenceKey, 128)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("open statement sequence: %w", err)
	}

	return &Badger{db: db, seq: seq}, nil
}

func statementKey(n uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", statementPrefix, n))
}

// Add implements Store.
func (b *Badger) Add(_ context.Context, statements ...Statement) error {
	if len(statements) == 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	wb := b.db.NewWriteBatch()
	defer wb.Cancel()

	for _, st := range statements {
		n, err := b.seq.Next()
		if err != nil {
			return fmt.Errorf("next statement id: %w", err)
		}
		val, err := json.Marshal(st)
		if err != nil {
			return fmt.Errorf("encode statement: %w", err)
		}
		if err := wb.Set(statementKey(n), val); err != nil {
			return fmt.Errorf("write statement: %w", err)
		}
	}

	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush statements: %w", err)
	}
	return nil
}

// each calls fn for every stored statement in insertion order.
func (b *Badger) each(fn func(Statement)) error {
	return b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(statementPrefix); it.ValidForPrefix(statementPrefix); it.Next() {
			var st Statement
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &st)
			})
			if err != nil {
				return fmt.Errorf("decode statement %s: %w", it.Item().Key(), err)
			}
			fn(st)
		}
		return nil
	})
}

// Prompts implements Store.
func (b *Badger) Prompts(_ context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	var prompts []string
	err := b.each(func(st Statement) {
		if st.SearchInResponseTo == "" {
			return
		}
		if _, ok := seen[st.SearchInResponseTo]; ok {
			return
		}
		seen[st.SearchInResponseTo] = struct{}{}
		prompts = append(prompts, st.SearchInResponseTo)
	})
	if err != nil {
		return nil, err
	}
	return prompts, nil
}

// Responses implements Store.
func (b *Badger) Responses(_ context.Context, searchPrompt string) ([]Statement, error) {
	var out []Statement
	err := b.each(func(st Statement) {
		if st.SearchInResponseTo == searchPrompt {
			out = append(out, st)
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Count implements Store.
func (b *Badger) Count(_ context.Context) (int, error) {
	n := 0
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(statementPrefix); it.ValidForPrefix(statementPrefix); it.Next() {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count statements: %w", err)
	}
	return n, nil
}

// Close releases the sequence lease and closes the database.
func (b *Badger) Close() error {
	if err := b.seq.Release(); err != nil {
		b.db.Close()
		return fmt.Errorf("release statement sequence: %w", err)
	}
	return b.db.Close()
}
