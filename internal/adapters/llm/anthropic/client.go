package anthropic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/jsonschema-go/jsonschema"

	"petstore-catalog/internal/platform/httpclient"
	"petstore-catalog/internal/ports/llm"
)

const (
	DefaultBaseURL = "https://api.anthropic.com"
	DefaultModel   = "claude-3-5-haiku-latest"

	apiVersion   = "2023-06-01"
	messagesPath = "/v1/messages"
	maxTokens    = 1024
)

var (
	ErrNotConfigured = errors.New("anthropic client not configured")
	ErrUnauthorized  = errors.New("anthropic unauthorized")
	ErrUpstream      = errors.New("anthropic upstream error")
)

// Config del cliente. APIKey normalmente viene de LLM_API_KEY.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration

	// Opcional, para tests.
	Transport http.RoundTripper
}

type Client struct {
	http  *httpclient.Client
	model string
}

var _ llm.ToolCaller = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, ErrNotConfigured
	}
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}

	hc, err := httpclient.New(base, cfg.Timeout,
		httpclient.WithHeader("x-api-key", key),
		httpclient.WithHeader("anthropic-version", apiVersion),
		httpclient.WithTransport(cfg.Transport),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotConfigured, err)
	}
	return &Client{http: hc, model: model}, nil
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type toolDef struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	InputSchema *jsonschema.Schema `json:"input_schema"`
}

type messagesRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	Messages  []message `json:"messages"`
	Tools     []toolDef `json:"tools"`
}

type contentBlock struct {
	Type  string         `json:"type"`
	Text  string         `json:"text,omitempty"`
	Name  string         `json:"name,omitempty"`
	Input map[string]any `json:"input,omitempty"`
}

type messagesResponse struct {
	Content    []contentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
}

func (c *Client) CallTool(ctx context.Context, prompt string, tool llm.ToolSpec) (*llm.ToolCall, error) {
	if c == nil || c.http == nil {
		return nil, ErrNotConfigured
	}

	schema := tool.InputSchema
	if schema == nil {
		schema = &jsonschema.Schema{Type: "object"}
	}

	req := messagesRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages:  []message{{Role: "user", Content: prompt}},
		Tools: []toolDef{{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: schema,
		}},
	}

	var resp messagesResponse
	if err := c.http.DoJSON(ctx, http.MethodPost, messagesPath, req, &resp); err != nil {
		switch httpclient.StatusCode(err) {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, ErrUnauthorized
		default:
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
	}

	for _, block := range resp.Content {
		if block.Type != "tool_use" {
			continue
		}
		args := block.Input
		if args == nil {
			args = map[string]any{}
		}
		return &llm.ToolCall{Name: block.Name, Arguments: args}, nil
	}
	return nil, nil
}
