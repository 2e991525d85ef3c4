// Blueprint for new Go projects
// Author: Christi Mahu – https://christimahu.dev
// Part of the dev repo: https://github.com/christimahu/dev/
// This file is part of a minimal idiomatic Go blueprint for creating new applications.
//
// repl_test.go - Transcript tests for the interactive loop. Each
// testdata/*.txtar archive holds an "input" file fed to stdin and the
// expected "output".

package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

type echoResponder struct {
	calls []string
	err   error
}

func (e *echoResponder) Respond(_ context.Context, input string) (string, error) {
	e.calls = append(e.calls, input)
	if e.err != nil {
		return "", e.err
	}
	return "echo: " + input, nil
}

func section(t *testing.T, a *txtar.Archive, name string) string {
	t.Helper()
	for _, f := range a.Files {
		if f.Name == name {
			return string(f.Data)
		}
	}
	t.Fatalf("archive has no %q section", name)
	return ""
}

func TestREPL_Transcripts(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txtar"), func(t *testing.T) {
			a, err := txtar.ParseFile(file)
			require.NoError(t, err)

			var out bytes.Buffer
			in := strings.NewReader(section(t, a, "input"))
			r := New(&echoResponder{}, NewLineReader(in, &out), &out)

			require.NoError(t, r.Run(context.Background()))
			assert.Equal(t, section(t, a, "output"), out.String())
			assert.Equal(t, Stopped, r.State())
		})
	}
}

// No input at all still prints both banners exactly once.
func TestREPL_EmptyInput(t *testing.T) {
	var out bytes.Buffer
	responder := &echoResponder{}
	r := New(responder, NewLineReader(strings.NewReader(""), &out), &out)

	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, StartBanner+"\n"+StopBanner+"\n", out.String())
	assert.Empty(t, responder.calls)
}

// The exit keyword itself is never sent to the responder.
func TestREPL_ExitNotForwarded(t *testing.T) {
	var out bytes.Buffer
	responder := &echoResponder{}
	r := New(responder, NewLineReader(strings.NewReader("one\ntwo\nquit\n"), &out), &out)

	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, []string{"one", "two"}, responder.calls)
}

// Replies pass through the format hook before printing.
func TestREPL_WithFormat(t *testing.T) {
	var out bytes.Buffer
	r := New(&echoResponder{}, NewLineReader(strings.NewReader("Hi\n"), &out), &out,
		WithFormat(strings.ToUpper))

	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, "Chatbot started\nECHO: HI\nChatbot stopped\n", out.String())
}

// A responder failure ends the loop with an error and no stop banner.
func TestREPL_ResponderError(t *testing.T) {
	var out bytes.Buffer
	boom := errors.New("storage gone")
	r := New(&echoResponder{err: boom}, NewLineReader(strings.NewReader("Hi\nexit\n"), &out), &out)

	err := r.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StartBanner+"\n", out.String())
	assert.Equal(t, Running, r.State())
}

type failingReader struct{ err error }

func (f failingReader) ReadLine() (string, error) { return "", f.err }
func (f failingReader) Close() error              { return nil }

// Read errors other than end of input are reported.
func TestREPL_ReadError(t *testing.T) {
	var out bytes.Buffer
	boom := errors.New("tty lost")
	err := New(&echoResponder{}, failingReader{err: boom}, &out).Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

// Non-terminal input falls back to the scanner reader.
func TestNewLineReader_Scanner(t *testing.T) {
	lr := NewLineReader(strings.NewReader("a\r\nb"), io.Discard)
	defer lr.Close()

	line, err := lr.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "a", line)

	line, err = lr.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "b", line)

	_, err = lr.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "stopped", Stopped.String())
}
