// Package llm talks to hosted language models for word-list generation.
//
// Every provider returns JSON that has already been checked against the
// request's Schema. Cross-cutting behavior (retries, rate limiting, request
// logging) is layered on as Provider decorators; see NewProvider.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured output from a prompt.
type Provider interface {
	// Generate sends req and returns the model's output. With a Schema set,
	// Response.Content is JSON valid against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Request is one generation call.
type Request struct {
	System    string
	Messages  []Message
	Schema    *Schema
	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the author of a Message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserPrompt is a single-turn conversation holding prompt.
func UserPrompt(prompt string) []Message {
	return []Message{{Role: RoleUser, Content: prompt}}
}

// Schema is a named JSON Schema for structured output. Name is kebab-case
// and doubles as the tool or schema name some providers require.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response is the output of a Generate call.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is "end" or "max_tokens".
	StopReason string
}

// Usage is the token count of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
