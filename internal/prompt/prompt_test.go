package prompt

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestParsePicks(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want []int
	}{
		{"1,3", 5, []int{1, 3}},
		{" 2 , 5 ", 5, []int{2, 5}},
		{"0,6,x", 5, nil},
		{"3,3,1", 5, []int{3, 1}},
		{"", 5, nil},
		{"1", 0, nil},
	}
	for _, tt := range tests {
		got := ParsePicks(tt.in, tt.max)
		if len(got) != len(tt.want) {
			t.Errorf("ParsePicks(%q, %d) = %v, want %v", tt.in, tt.max, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParsePicks(%q, %d) = %v, want %v", tt.in, tt.max, got, tt.want)
				break
			}
		}
	}
}

func TestAsk(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("  hello \nlast"), &out)

	got, err := p.Ask("Q1: ")
	if err != nil || got != "hello" {
		t.Fatalf("got %q, %v", got, err)
	}
	got, err = p.Ask("Q2: ")
	if err != nil || got != "last" {
		t.Fatalf("unterminated last line: got %q, %v", got, err)
	}
	if _, err := p.Ask("Q3: "); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
	if out.String() != "Q1: Q2: Q3: " {
		t.Errorf("out = %q", out.String())
	}
}

func TestAskPicksRepromptsOnInvalid(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("9\nabc\n2,1\n"), &out)

	picks := p.AskPicks("Pick: ", 3)
	if len(picks) != 2 || picks[0] != 2 || picks[1] != 1 {
		t.Errorf("picks = %v", picks)
	}
	if n := strings.Count(out.String(), "Pick: "); n != 3 {
		t.Errorf("asked %d times, want 3", n)
	}
	if !strings.Contains(out.String(), "No valid selections. Use numbers 1-3.") {
		t.Errorf("missing guidance: %q", out.String())
	}
}

func TestAskPicksEmptyEnds(t *testing.T) {
	p := New(strings.NewReader("\n1\n"), io.Discard)
	if picks := p.AskPicks("Pick: ", 3); picks != nil {
		t.Errorf("expected nil, got %v", picks)
	}
}
