package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"google.golang.org/genai"

	"petstore-catalog/internal/ports/llm"
)

const DefaultModel = "gemini-2.0-flash"

var ErrMissingAPIKey = errors.New("gemini: api key is required")

// Models es el subconjunto de *genai.Models que usamos.
type Models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var _ Models = (*genai.Models)(nil)

type Client struct {
	models Models
	model  string
}

var _ llm.ToolCaller = (*Client)(nil)

func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return NewWithModels(client.Models, model), nil
}

func NewWithModels(models Models, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{models: models, model: model}
}

func (c *Client) CallTool(ctx context.Context, prompt string, tool llm.ToolSpec) (*llm.ToolCall, error) {
	cfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{
			FunctionDeclarations: []*genai.FunctionDeclaration{{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  toSchema(tool.InputSchema),
			}},
		}},
	}

	resp, err := c.models.GenerateContent(ctx, c.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	if resp == nil {
		return nil, nil
	}

	calls := resp.FunctionCalls()
	if len(calls) == 0 || calls[0] == nil {
		return nil, nil
	}

	args := calls[0].Args
	if args == nil {
		args = map[string]any{}
	}
	return &llm.ToolCall{Name: calls[0].Name, Arguments: args}, nil
}

// toSchema traduce el subconjunto de JSON Schema que usan las tools.
func toSchema(s *jsonschema.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        schemaType(s),
		Description: s.Description,
		Required:    s.Required,
		Items:       toSchema(s.Items),
	}
	for _, v := range s.Enum {
		out.Enum = append(out.Enum, fmt.Sprint(v))
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toSchema(prop)
		}
	}
	return out
}

func schemaType(s *jsonschema.Schema) genai.Type {
	t := s.Type
	if t == "" && len(s.Types) > 0 {
		t = s.Types[0]
	}
	switch t {
	case "object":
		return genai.TypeObject
	case "array":
		return genai.TypeArray
	case "string":
		return genai.TypeString
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeUnspecified
	}
}
