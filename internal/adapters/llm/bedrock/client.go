package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/document"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"petstore-catalog/internal/ports/llm"
)

const (
	DefaultModel  = "us.amazon.nova-micro-v1:0"
	DefaultRegion = "us-east-1"
)

var ErrMalformedResponse = errors.New("bedrock: malformed converse response")

// API es el subconjunto de *bedrockruntime.Client que usamos.
type API interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

var _ API = (*bedrockruntime.Client)(nil)

// Client implementa llm.ToolCaller sobre la Converse API.
type Client struct {
	api   API
	model string
}

var _ llm.ToolCaller = (*Client)(nil)

// New carga la config AWS por defecto (env, shared config, rol) para region.
func New(ctx context.Context, region, model string) (*Client, error) {
	if region == "" {
		region = DefaultRegion
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewWithAPI(bedrockruntime.NewFromConfig(cfg), model), nil
}

func NewWithAPI(api API, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{api: api, model: model}
}

func (c *Client) CallTool(ctx context.Context, prompt string, tool llm.ToolSpec) (*llm.ToolCall, error) {
	schema, err := schemaDocument(tool)
	if err != nil {
		return nil, err
	}

	out, err := c.api.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(c.model),
		Messages: []types.Message{{
			Role:    types.ConversationRoleUser,
			Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: prompt}},
		}},
		ToolConfig: &types.ToolConfiguration{
			Tools: []types.Tool{
				&types.ToolMemberToolSpec{Value: types.ToolSpecification{
					Name:        aws.String(tool.Name),
					Description: aws.String(tool.Description),
					InputSchema: &types.ToolInputSchemaMemberJson{Value: schema},
				}},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("bedrock converse: %w", err)
	}
	if out == nil {
		return nil, ErrMalformedResponse
	}

	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return nil, fmt.Errorf("%w: output %T", ErrMalformedResponse, out.Output)
	}

	// El primer bloque toolUse gana; el texto libre se ignora.
	for _, block := range msg.Value.Content {
		use, ok := block.(*types.ContentBlockMemberToolUse)
		if !ok {
			continue
		}
		if use.Value.Input == nil {
			return &llm.ToolCall{Name: aws.ToString(use.Value.Name), Arguments: map[string]any{}}, nil
		}
		raw, err := use.Value.Input.MarshalSmithyDocument()
		if err != nil {
			return nil, fmt.Errorf("%w: tool input: %v", ErrMalformedResponse, err)
		}
		args, err := llm.DecodeArguments(raw)
		if err != nil {
			return nil, err
		}
		return &llm.ToolCall{Name: aws.ToString(use.Value.Name), Arguments: args}, nil
	}

	return nil, nil
}

// schemaDocument pasa el JSON Schema de la tool a documento smithy.
func schemaDocument(tool llm.ToolSpec) (document.Interface, error) {
	m := map[string]any{"type": "object"}
	if tool.InputSchema != nil {
		b, err := json.Marshal(tool.InputSchema)
		if err != nil {
			return nil, fmt.Errorf("bedrock: marshal tool schema: %w", err)
		}
		m = map[string]any{}
		if err := json.Unmarshal(b, &m); err != nil {
			return nil, fmt.Errorf("bedrock: tool schema: %w", err)
		}
	}
	return document.NewLazyDocument(m), nil
}
