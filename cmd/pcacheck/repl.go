package main

import (
	"strings"

	"github.com/chzyer/readline"
)

// lineReader is the thin seam between runREPL and the readline library, so
// runREPL only depends on Readline/Close rather than the whole
// *readline.Instance surface.
type lineReader struct {
	rl *readline.Instance
}

func newLineReader(prompt string) (*lineReader, error) {
	rl, err := readline.New(prompt)
	if err != nil {
		return nil, err
	}
	return &lineReader{rl: rl}, nil
}

// Readline returns the next trimmed line, recording it in the session's
// history.
func (l *lineReader) Readline() (string, error) {
	line, err := l.rl.Readline()
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line != "" {
		readline.AddHistory(line)
	}
	return line, nil
}

func (l *lineReader) Close() error {
	return l.rl.Close()
}
