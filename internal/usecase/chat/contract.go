package chat

import (
	"context"
	"encoding/json"

	openai "github.com/sashabaranov/go-openai"

	"github.com/outfitly/stylist/internal/domain/facet"
	"github.com/outfitly/stylist/internal/domain/result"
	"github.com/outfitly/stylist/internal/repository/history"
)

// Completer is the slice of the OpenAI-compatible client the orchestrator
// needs (ISP).
type Completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// HistoryStore persists per-session conversation transcripts.
type HistoryStore interface {
	Append(ctx context.Context, sessionID string, msgs ...history.Message) error
	Messages(ctx context.Context, sessionID string) ([]history.Message, error)
}

// ProductFilter runs a validated facet query against the catalog.
type ProductFilter interface {
	Filter(ctx context.Context, q facet.Query) result.FilterResult
}

// Recommender produces pairing recommendations for a seed product.
type Recommender interface {
	Recommend(ctx context.Context, seedDescription string, seedJSON json.RawMessage, q facet.Query) result.RecommendResult
}
