// Package chat orchestrates the assistant conversation: it forwards the user
// message to an OpenAI-compatible model with the catalog tools attached,
// dispatches any tool call into the filter or pairing engine and composes the
// final reply with the matched products.
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/outfitly/stylist/internal/domain"
	"github.com/outfitly/stylist/internal/domain/facet"
	"github.com/outfitly/stylist/internal/domain/result"
	"github.com/outfitly/stylist/internal/logger"
	"github.com/outfitly/stylist/internal/metrics"
	"github.com/outfitly/stylist/internal/repository/history"
)

const systemPrompt = `You are Sara, an AI fashion assistant. You have access to tools to search for products and get recommendations.

When a user asks about products:
1. Use the filter_products tool to search for products based on their request
2. Be smart about spelling - if someone types "womrn hoodie" or "women hoodie", understand they mean "women hoodie"
3. Use flexible search terms that will find products even with minor spelling variations
4. Present the results in a helpful, friendly way
5. If they ask about a specific product, use get_similar_products to show recommendations

Always be helpful and suggest specific products based on what the user is looking for. Handle spelling mistakes gracefully by using the correct spelling in your search.`

const (
	replyTroubleProcessing = "I'm sorry, I'm having trouble processing your request right now."
	replyCannotProcess     = "I'm sorry, I couldn't process your request right now."
)

// Reply is the assistant response for one chat turn.
type Reply struct {
	SessionID       string                  `json:"session_id"`
	Message         string                  `json:"message"`
	Products        []result.Product        `json:"products"`
	Recommendations []result.Recommendation `json:"recommendations,omitempty"`
}

// Service is the assistant orchestrator.
type Service struct {
	llm     Completer
	history HistoryStore
	filters ProductFilter
	pairs   Recommender
	model   string
}

// New creates the chat orchestrator.
func New(llm Completer, hist HistoryStore, filters ProductFilter, pairs Recommender, model string) *Service {
	return &Service{
		llm:     llm,
		history: hist,
		filters: filters,
		pairs:   pairs,
		model:   model,
	}
}

// Chat runs one conversation turn. An empty sessionID starts a new session.
// Model and tool failures degrade to an apology reply rather than an error;
// only an empty message is rejected.
func (s *Service) Chat(ctx context.Context, sessionID, userMessage string) (Reply, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(userMessage) == "" {
		return Reply{}, fmt.Errorf("%w: empty message", domain.ErrMalformedQuery)
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	past, err := s.history.Messages(ctx, sessionID)
	if err != nil {
		// A lost transcript degrades context, not the turn.
		log.Warn("Failed to load session history", zap.String("session_id", sessionID), zap.Error(err))
		past = nil
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(past)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, m := range past {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})

	resp, err := s.llm.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    s.model,
		Messages: messages,
		Tools:    toolDefinitions(),
	})

	reply := Reply{SessionID: sessionID, Products: []result.Product{}}
	switch {
	case err != nil:
		log.Error("Chat completion failed", zap.String("session_id", sessionID), zap.Error(err))
		reply.Message = replyTroubleProcessing
	case len(resp.Choices) == 0:
		log.Warn("Chat completion returned no choices", zap.String("session_id", sessionID))
		reply.Message = replyCannotProcess
	default:
		msg := resp.Choices[0].Message
		if len(msg.ToolCalls) > 0 {
			s.dispatch(ctx, msg.ToolCalls[0], &reply)
		} else {
			reply.Message = msg.Content
		}
	}
	if reply.Message == "" {
		reply.Message = replyCannotProcess
	}

	if err := s.history.Append(ctx, sessionID,
		history.Message{Role: openai.ChatMessageRoleUser, Content: userMessage},
		history.Message{Role: openai.ChatMessageRoleAssistant, Content: reply.Message},
	); err != nil {
		log.Warn("Failed to append session history", zap.String("session_id", sessionID), zap.Error(err))
	}

	return reply, nil
}

// dispatch executes a single tool call and fills the reply.
func (s *Service) dispatch(ctx context.Context, call openai.ToolCall, reply *Reply) {
	log := logger.FromContext(ctx)
	name := call.Function.Name
	metrics.ChatToolCallsTotal.WithLabelValues(name).Inc()

	log.Debug("Dispatching tool call",
		zap.String("tool", name),
		zap.String("arguments", call.Function.Arguments))

	switch name {
	case toolFilterProducts:
		s.runFilter(ctx, call.Function.Arguments, reply)
	case toolSimilarProducts:
		s.runSimilar(ctx, call.Function.Arguments, reply)
	default:
		reply.Message = fmt.Sprintf("I used the %s tool to help with your request.", name)
	}
}

func (s *Service) runFilter(ctx context.Context, rawArgs string, reply *Reply) {
	log := logger.FromContext(ctx)

	var args filterArgs
	if err := unmarshalArgs(rawArgs, &args); err != nil {
		log.Warn("Malformed filter_products arguments", zap.Error(err))
		reply.Message = replyCannotProcess
		return
	}

	q, err := facet.New(facet.Params{
		Gender:      args.Gender,
		Category:    args.Category,
		Color:       args.Color,
		Size:        args.Size,
		SearchTerm:  args.SearchTerm,
		MinPrice:    args.MinPrice,
		MaxPrice:    args.MaxPrice,
		SortByPrice: args.SortByPrice,
		Limit:       args.Limit,
	}, facet.DefaultFilterLimit)
	if err != nil {
		log.Warn("Rejected filter_products facets", zap.Error(err))
		reply.Message = replyCannotProcess
		return
	}

	res := s.filters.Filter(ctx, q)
	switch {
	case res.Success && res.TotalCount > 0:
		reply.Message = fmt.Sprintf("I found %d products that match your request! Here are some great options:", res.TotalCount)
		reply.Products = res.Products
	case res.Success:
		reply.Message = res.Message
	case res.Message != "":
		reply.Message = res.Message
	default:
		reply.Message = replyCannotProcess
	}
}

func (s *Service) runSimilar(ctx context.Context, rawArgs string, reply *Reply) {
	log := logger.FromContext(ctx)

	var args similarArgs
	if err := unmarshalArgs(rawArgs, &args); err != nil {
		log.Warn("Malformed get_similar_products arguments", zap.Error(err))
		reply.Message = replyCannotProcess
		return
	}

	q, _ := facet.New(facet.Params{}, facet.DefaultRecommendLimit)
	res := s.pairs.Recommend(ctx, args.ProductDescription, args.CurrentProduct, q)
	if !res.Success {
		reply.Message = replyCannotProcess
		return
	}
	reply.Message = fmt.Sprintf("I found %d similar products for you!", res.TotalCount)
	reply.Recommendations = res.Recommendations
}
