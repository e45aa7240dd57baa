// Package prompt reads operator answers one line at a time.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// New creates a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Ask prints question and returns the trimmed answer line. At end of input
// with nothing typed it returns "" and io.EOF.
func (p *Prompter) Ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}
		return line, err
	}
	return line, nil
}

// AskPicks asks until the answer holds at least one number in 1..max. An
// empty answer or end of input returns nil.
func (p *Prompter) AskPicks(question string, max int) []int {
	for {
		answer, err := p.Ask(question)
		if err != nil || answer == "" {
			return nil
		}
		if picks := ParsePicks(answer, max); len(picks) > 0 {
			return picks
		}
		fmt.Fprintf(p.out, "No valid selections. Use numbers 1-%d.\n", max)
	}
}

// ParsePicks parses a comma-separated list of 1-based indices, keeping
// those in 1..max in first-seen order without repeats.
func ParsePicks(input string, max int) []int {
	var picks []int
	seen := make(map[int]bool)
	for _, part := range strings.Split(input, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 || n > max || seen[n] {
			continue
		}
		seen[n] = true
		picks = append(picks, n)
	}
	return picks
}
