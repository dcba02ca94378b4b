package shd

import (
	"testing"

	"github.com/gogpu/shdc/ir"
)

func newTestParser() *Parser {
	p := NewParser(ir.NewLibrary())
	p.path = "test.shd"
	p.line = 1
	return p
}

func TestStripComments(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain line", "plain line"},
		{"code // comment", "code"},
		{"// whole line", ""},
		{"a /* b */ c", "a  c"},
		{"/* x */", ""},
		{"a /* b */ c /* d */ e", "a  c  e"},
		{"  \t padded \t ", "padded"},
		{"", ""},
	}

	for _, tt := range tests {
		p := newTestParser()
		got, err := p.stripComments(tt.input)
		if err != nil {
			t.Errorf("stripComments(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("stripComments(%q) = %q, want %q", tt.input, got, tt.expected)
		}
		if p.inComment {
			t.Errorf("stripComments(%q): comment state left open", tt.input)
		}
	}
}

func TestStripCommentsSpanningLines(t *testing.T) {
	p := newTestParser()

	got, err := p.stripComments("a /* b")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != "a" {
		t.Errorf("First line = %q, want %q", got, "a")
	}
	if !p.inComment {
		t.Fatal("Expected open comment state after first line")
	}

	got, err = p.stripComments("c */ d")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != "d" {
		t.Errorf("Second line = %q, want %q", got, "d")
	}
	if p.inComment {
		t.Error("Comment state still open after terminator")
	}
}

func TestStripCommentsFullCommentLines(t *testing.T) {
	p := newTestParser()

	if _, err := p.stripComments("start /*"); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	got, err := p.stripComments("entirely inside the comment")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("Line inside comment = %q, want empty", got)
	}
	got, err = p.stripComments("*/ tail")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != "tail" {
		t.Errorf("Line after terminator = %q, want %q", got, "tail")
	}
}

func TestStripCommentsNestedCommentError(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{"block in block", []string{"a /*", "b /* c */ d"}},
		{"winged in block", []string{"a /*", "b // c */ d"}},
		{"open in full comment line", []string{"a /*", "b /* c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestParser()
			var err *ir.Error
			for _, line := range tt.lines {
				if _, err = p.stripComments(line); err != nil {
					break
				}
			}
			if err == nil {
				t.Fatal("Expected comment-in-comment error, got none")
			}
			if err.Kind != ir.KindSyntax {
				t.Errorf("Error kind = %v, want syntax", err.Kind)
			}
		})
	}
}

func TestUnterminatedBlockComment(t *testing.T) {
	p := NewParser(ir.NewLibrary())
	src := "@code_block cb\nline /* open\n"
	err := p.ParseSource("test.shd", src)
	if err == nil {
		t.Fatal("Expected unterminated comment error, got none")
	}
}
