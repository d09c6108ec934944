package chat

import (
	"encoding/json"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	toolFilterProducts  = "filter_products"
	toolSimilarProducts = "get_similar_products"
)

// filterArgs mirrors the filter_products tool schema the model fills in.
type filterArgs struct {
	Gender      string   `json:"gender"`
	Category    string   `json:"category"`
	Color       string   `json:"color"`
	Size        string   `json:"size"`
	SearchTerm  string   `json:"search_term"`
	MinPrice    *float64 `json:"min_price"`
	MaxPrice    *float64 `json:"max_price"`
	SortByPrice string   `json:"sort_by_price"`
	Limit       int      `json:"limit"`
}

// similarArgs mirrors the get_similar_products tool schema. CurrentProduct
// arrives either as a JSON object or as a JSON-encoded string of one.
type similarArgs struct {
	ProductDescription string          `json:"product_description"`
	CurrentProduct     json.RawMessage `json:"current_product"`
}

var filterSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"gender": {"type": "string", "description": "Product gender: 'men', 'women', 'male', 'female'"},
		"category": {"type": "string", "description": "Product category, e.g. 'hoodie', 'pants', 'shirt', 'sweatshirt', 'jacket', 'top'"},
		"color": {"type": "string", "description": "Product color, e.g. 'black', 'white', 'blue', 'red', 'pink', 'gray'"},
		"size": {"type": "string", "description": "Product size: 'S', 'M', 'L', 'XL', 'small', 'medium', 'large'"},
		"search_term": {"type": "string", "description": "Fallback free-text search for complex queries"},
		"min_price": {"type": "number", "description": "Minimum price in dollars"},
		"max_price": {"type": "number", "description": "Maximum price in dollars"},
		"sort_by_price": {"type": "string", "enum": ["asc", "desc"], "description": "Sort results by price"},
		"limit": {"type": "integer", "description": "Maximum number of products to return"}
	}
}`)

var similarSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"product_description": {"type": "string", "description": "Description of the product to pair with"},
		"current_product": {"type": "string", "description": "JSON-encoded product the user is viewing"}
	},
	"required": ["product_description"]
}`)

// unmarshalArgs decodes a tool-call argument payload. Models occasionally
// emit an empty string for a no-argument call; that decodes to zero values.
func unmarshalArgs(raw string, dst any) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dst)
}

// toolDefinitions returns the tools advertised to the model on every turn.
func toolDefinitions() []openai.Tool {
	return []openai.Tool{
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        toolFilterProducts,
				Description: "Filter catalog products by gender, category, color, size, price range and free-text search terms.",
				Parameters:  filterSchema,
			},
		},
		{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        toolSimilarProducts,
				Description: "Get complementary product recommendations that pair well with a given product.",
				Parameters:  similarSchema,
			},
		},
	}
}
