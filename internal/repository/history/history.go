// Package history stores per-session conversation transcripts for the
// assistant. Each session keeps a bounded list of messages so the model
// receives recent context without unbounded growth.
package history

// Message is a single conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// DefaultMaxMessages bounds how many messages a session retains.
// Older messages are dropped first.
const DefaultMaxMessages = 40
