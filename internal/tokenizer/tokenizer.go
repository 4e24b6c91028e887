// Package tokenizer provides approximate token counting for usage accounting.
//
// Counts are whitespace-delimited word counts, not the embedding engine's
// tokenizer output. Clients expecting OpenAI-style usage fields get a useful
// approximation without a round trip through the engine.
package tokenizer

import "strings"

// CountTextTokens returns the number of whitespace-delimited tokens in text.
func CountTextTokens(text string) int {
	return len(strings.Fields(text))
}

// CountBatchTokens sums CountTextTokens over all texts in the batch.
func CountBatchTokens(texts []string) int {
	total := 0
	for _, t := range texts {
		total += CountTextTokens(t)
	}
	return total
}
