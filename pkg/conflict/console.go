package conflict

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Console is the line-oriented channel prompts are asked through
type Console interface {
	// WriteLine writes s followed by a newline
	WriteLine(s string)
	// Prompt writes s without a newline and reads one line of input
	Prompt(s string) (string, error)
}

// ErrNoInput is returned by Prompt when the console has no input stream
var ErrNoInput = errors.New("no input stream")

// StreamConsole is a Console over plain reader and writer streams
type StreamConsole struct {
	in  *bufio.Reader
	out io.Writer
}

// NewStreamConsole creates a console reading answers from in and writing to out.
// A nil in makes every prompt fail, which callers treat as "skip".
func NewStreamConsole(in io.Reader, out io.Writer) *StreamConsole {
	c := &StreamConsole{out: out}
	if in != nil {
		c.in = bufio.NewReader(in)
	}
	if c.out == nil {
		c.out = io.Discard
	}
	return c
}

func (c *StreamConsole) WriteLine(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *StreamConsole) Prompt(s string) (string, error) {
	fmt.Fprint(c.out, s)
	if c.in == nil {
		return "", ErrNoInput
	}
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
