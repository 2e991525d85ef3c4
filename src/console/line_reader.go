// Blueprint for new Go projects
// Author: Christi Mahu – https://christimahu.dev
// Part of the dev repo: https://github.com/christimahu/dev/
// This file is part of a minimal idiomatic Go blueprint for creating new applications.
//
// line_reader.go - Reads one line of user input at a time, with line editing
// and history when attached to a terminal.

package console

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
)

// LineReader returns successive input lines without their line terminator.
// At end of input it returns io.EOF.
type LineReader interface {
	ReadLine() (string, error)
	Close() error
}

// NewLineReader picks a terminal line editor when both in and out are
// terminals, and a plain scanner otherwise (pipes, files, tests).
func NewLineReader(in io.Reader, out io.Writer) LineReader {
	if fi, ok := in.(*os.File); ok {
		if fo, ok := out.(*os.File); ok {
			if isatty.IsTerminal(fi.Fd()) && isatty.IsTerminal(fo.Fd()) {
				l := liner.NewLiner()
				l.SetCtrlCAborts(true)
				return &linerReader{l: l}
			}
		}
	}
	return &scannerReader{scanner: bufio.NewScanner(in)}
}

type scannerReader struct {
	scanner *bufio.Scanner
}

func (s *scannerReader) ReadLine() (string, error) {
	if s.scanner.Scan() {
		return strings.TrimSuffix(s.scanner.Text(), "\r"), nil
	}
	if err := s.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (s *scannerReader) Close() error { return nil }

type linerReader struct {
	l *liner.State
}

func (lr *linerReader) ReadLine() (string, error) {
	line, err := lr.l.Prompt("")
	if err != nil {
		// Ctrl-C ends the session like closing the input does
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", io.EOF
		}
		return "", err
	}
	if line != "" {
		lr.l.AppendHistory(line)
	}
	return line, nil
}

func (lr *linerReader) Close() error {
	return lr.l.Close()
}
