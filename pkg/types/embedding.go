// Package types defines the OpenAI-compatible wire types for the embedding API.
package types

import (
	"encoding/json"
	"fmt"
)

// EmbeddingInput is the polymorphic "input" field of an embedding request.
// The OpenAI API accepts either a single string or an array of strings;
// both forms are captured here and resolved to a canonical []string by Texts.
type EmbeddingInput struct {
	// Text is set when the input was a single JSON string.
	Text *string `json:"-"`
	// Batch is set when the input was a JSON array of strings.
	Batch []string `json:"-"`
}

// UnmarshalJSON decodes the input union. Anything other than a string or an
// array of strings is a decode failure.
func (e *EmbeddingInput) UnmarshalJSON(data []byte) error {
	e.Text = nil
	e.Batch = nil

	if string(data) == "null" {
		return fmt.Errorf("input cannot be null")
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.Text = &s
		return nil
	}

	var batch []string
	if err := json.Unmarshal(data, &batch); err == nil {
		e.Batch = batch
		return nil
	}

	return fmt.Errorf("input must be a string or an array of strings")
}

// MarshalJSON emits the single-string form when set, the array form otherwise.
func (e EmbeddingInput) MarshalJSON() ([]byte, error) {
	if e.Text != nil {
		return json.Marshal(*e.Text)
	}
	return json.Marshal(e.Batch)
}

// Texts resolves the union to its canonical ordered form: a single string
// becomes a one-element slice, an array is returned as-is with order
// preserved. A request that carried no input at all yields nil.
func (e EmbeddingInput) Texts() []string {
	if e.Text != nil {
		return []string{*e.Text}
	}
	return e.Batch
}

// EncodingFormat selects the wire representation of the returned vectors.
type EncodingFormat string

const (
	// EncodingFormatFloat returns embeddings as raw JSON number arrays.
	EncodingFormatFloat EncodingFormat = "float"
	// EncodingFormatBase64 is accepted for client compatibility. Responses
	// are currently emitted as float arrays regardless of this setting.
	EncodingFormatBase64 EncodingFormat = "base64"
)

// UnmarshalJSON rejects unknown encoding formats at decode time.
func (f *EncodingFormat) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("encoding_format must be a string")
	}
	switch EncodingFormat(s) {
	case EncodingFormatFloat, EncodingFormatBase64:
		*f = EncodingFormat(s)
		return nil
	case "":
		*f = EncodingFormatFloat
		return nil
	default:
		return fmt.Errorf("unknown encoding_format %q", s)
	}
}

// EmbeddingRequest is an OpenAI-compatible embedding request.
type EmbeddingRequest struct {
	// Input is the text to embed: a single string or an array of strings.
	Input EmbeddingInput `json:"input"`

	// Model is advisory only. The service runs exactly one loaded model and
	// does not switch based on this field; responses always carry the
	// configured model name.
	Model string `json:"model,omitempty"`

	// EncodingFormat is "float" (default) or "base64".
	EncodingFormat EncodingFormat `json:"encoding_format,omitempty"`
}

// EmbeddingResponse is an OpenAI-compatible embedding response.
type EmbeddingResponse struct {
	Object string            `json:"object"`
	Data   []EmbeddingObject `json:"data"`
	Model  string            `json:"model"`
	Usage  Usage             `json:"usage"`
}

// EmbeddingObject is a single embedding tagged with the index of the input
// text it corresponds to.
type EmbeddingObject struct {
	Object    string    `json:"object"`
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
}

// Usage carries approximate token accounting. Counts are whitespace-delimited
// word counts summed across the batch, not the engine tokenizer's counts.
type Usage struct {
	PromptTokens int `json:"prompt_tokens"`
	TotalTokens  int `json:"total_tokens"`
}
