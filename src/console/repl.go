// Blueprint for new Go projects
// Author: Christi Mahu – https://christimahu.dev
// Part of the dev repo: https://github.com/christimahu/dev/
// This file is part of a minimal idiomatic Go blueprint for creating new applications.
//
// repl.go - The interactive loop: read a line, ask the bot, print the reply,
// until an exit keyword or the end of input.

package console

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Banners printed around a session.
const (
	StartBanner = "Chatbot started"
	StopBanner  = "Chatbot stopped"
)

// ExitKeywords end the session when a line equals one of them exactly.
var ExitKeywords = []string{"quit", "exit"}

// Responder answers one input line.
type Responder interface {
	Respond(ctx context.Context, input string) (string, error)
}

// State of a REPL.
type State int

const (
	Running State = iota
	Stopped
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// REPL is a synchronous read-eval-print loop over a Responder.
type REPL struct {
	responder Responder
	reader    LineReader
	out       io.Writer
	format    func(string) string
	exits     map[string]struct{}
	state     State
}

// Option configures a REPL.
type Option func(*REPL)

// WithFormat post-processes every reply before it is printed.
func WithFormat(format func(string) string) Option {
	return func(r *REPL) { r.format = format }
}

// New returns a REPL ready to Run.
func New(responder Responder, reader LineReader, out io.Writer, opts ...Option) *REPL {
	r := &REPL{
		responder: responder,
		reader:    reader,
		out:       out,
		format:    func(s string) string { return s },
		exits:     make(map[string]struct{}, len(ExitKeywords)),
		state:     Running,
	}
	for _, k := range ExitKeywords {
		r.exits[k] = struct{}{}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// State reports whether the loop is still running.
func (r *REPL) State() State {
	return r.state
}

// Run prints the start banner, answers lines until an exit keyword or end of
// input, then prints the stop banner. A read or Responder error ends the
// loop without the stop banner and is returned.
func (r *REPL) Run(ctx context.Context) error {
	if _, err := fmt.Fprintln(r.out, StartBanner); err != nil {
		return err
	}

	for r.state == Running {
		line, err := r.reader.ReadLine()
		if errors.Is(err, io.EOF) {
			r.state = Stopped
			break
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if _, ok := r.exits[line]; ok {
			r.state = Stopped
			break
		}

		reply, err := r.responder.Respond(ctx, line)
		if err != nil {
			return fmt.Errorf("respond to %q: %w", line, err)
		}
		if _, err := fmt.Fprintln(r.out, r.format(reply)); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(r.out, StopBanner)
	return err
}
