package tokenizer

import "testing"

func TestCountTextTokens(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{name: "empty", text: "", want: 0},
		{name: "single word", text: "foo", want: 1},
		{name: "two words", text: "hello world", want: 2},
		{name: "repeated spaces", text: "a   b", want: 2},
		{name: "tabs and newlines", text: "a\tb\nc", want: 3},
		{name: "leading and trailing space", text: "  padded  ", want: 1},
		{name: "whitespace only", text: " \t\n ", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountTextTokens(tt.text); got != tt.want {
				t.Errorf("CountTextTokens(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestCountBatchTokens(t *testing.T) {
	if got := CountBatchTokens([]string{"hello world", "foo"}); got != 3 {
		t.Errorf("CountBatchTokens = %d, want 3", got)
	}
	if got := CountBatchTokens(nil); got != 0 {
		t.Errorf("CountBatchTokens(nil) = %d, want 0", got)
	}
	if got := CountBatchTokens([]string{"", ""}); got != 0 {
		t.Errorf("CountBatchTokens of empty strings = %d, want 0", got)
	}
}
