// Blueprint for new Go projects
// Author: Christi Mahu – https://christimahu.dev
// Part of the dev repo: https://github.com/christimahu/dev/
// This file is part of a minimal idiomatic Go blueprint for creating new applications.
//
// corpus.go - Loads conversation corpora written in the ChatterBot corpus
// YAML format, either from the copy bundled into the binary or from disk.

package corpus

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data
var bundled embed.FS

// ErrNotFound is returned when an identifier names neither a bundled corpus
// nor a readable file or directory.
var ErrNotFound = errors.New("corpus not found")

// Conversation is an ordered run of lines where each line answers the one
// before it.
type Conversation struct {
	Categories []string
	Lines      []string
}

// document mirrors one corpus YAML file.
type document struct {
	Categories    []string   `yaml:"categories"`
	Conversations [][]string `yaml:"conversations"`
}

// Load resolves id and returns every conversation it contains.
//
// Accepted identifiers:
//   - "corpus.english" for every bundled file of a language
//   - "corpus.english.greetings" for a single bundled file
//   - either of the above prefixed with "chatterbot."
//   - a path to a .yml/.yaml file or a directory of them
func Load(id string) ([]Conversation, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrNotFound)
	}

	if info, err := os.Stat(id); err == nil {
		if info.IsDir() {
			return loadDir(os.DirFS(id), ".", id)
		}
		return loadFile(os.DirFS(filepath.Dir(id)), filepath.Base(id))
	}

	name := strings.TrimPrefix(id, "chatterbot.")
	if !strings.HasPrefix(name, "corpus.") {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	parts := strings.Split(strings.TrimPrefix(name, "corpus."), ".")
	p := path.Join(append([]string{"data"}, parts...)...)

	if info, err := fs.Stat(bundled, p); err == nil && info.IsDir() {
		return loadDir(bundled, p, id)
	}
	for _, ext := range []string{".yml", ".yaml"} {
		if _, err := fs.Stat(bundled, p+ext); err == nil {
			return loadFile(bundled, p+ext)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
}

// Bundled lists the identifiers of every corpus file shipped in the binary.
func Bundled() ([]string, error) {
	var ids []string
	err := fs.WalkDir(bundled, "data", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isCorpusFile(p) {
			return nil
		}
		rel := strings.TrimSuffix(strings.TrimPrefix(p, "data/"), path.Ext(p))
		ids = append(ids, "corpus."+strings.ReplaceAll(rel, "/", "."))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk bundled corpus: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

func isCorpusFile(name string) bool {
	ext := path.Ext(name)
	return ext == ".yml" || ext == ".yaml"
}

func loadDir(fsys fs.FS, dir, id string) ([]Conversation, error) {
	var files []string
	err := fs.WalkDir(fsys, dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isCorpusFile(p) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read corpus %q: %w", id, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %q has no corpus files", ErrNotFound, id)
	}
	sort.Strings(files)

	var out []Conversation
	for _, f := range files {
		convs, err := loadFile(fsys, f)
		if err != nil {
			return nil, err
		}
		out = append(out, convs...)
	}
	return out, nil
}

func loadFile(fsys fs.FS, name string) ([]Conversation, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read corpus file %s: %w", name, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse corpus file %s: %w", name, err)
	}

	out := make([]Conversation, 0, len(doc.Conversations))
	for _, lines := range doc.Conversations {
		if len(lines) == 0 {
			continue
		}
		out = append(out, Conversation{Categories: doc.Categories, Lines: lines})
	}
	return out, nil
}
