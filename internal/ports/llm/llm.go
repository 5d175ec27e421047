package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
)

var (
	ErrNotConfigured = errors.New("llm: no provider configured")
	ErrToolMismatch  = errors.New("llm: tool call does not match declared tool")
	ErrPanic         = errors.New("llm: provider panicked")
)

// ToolSpec declara una tool invocable. InputSchema es el JSON Schema de los argumentos;
// cada adapter lo traduce a su formato (Converse, genai, Messages API).
type ToolSpec struct {
	Name        string
	Description string
	InputSchema *jsonschema.Schema
}

// ToolCall son los argumentos que devolvió el modelo para una tool.
type ToolCall struct {
	Name      string
	Arguments map[string]any
}

// ToolCaller es el colaborador LLM: pide al modelo que invoque tool a partir de prompt.
// (nil, nil) significa que respondió sin invocar la tool.
type ToolCaller interface {
	CallTool(ctx context.Context, prompt string, tool ToolSpec) (*ToolCall, error)
}

type Outcome int

const (
	OutcomeInvoked Outcome = iota
	OutcomeNoTool
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInvoked:
		return "invoked"
	case OutcomeNoTool:
		return "no_tool"
	default:
		return "failed"
	}
}

// Result es el resultado etiquetado de una invocación. Call solo viene con OutcomeInvoked,
// Err solo con OutcomeFailed.
type Result struct {
	Outcome Outcome
	Call    *ToolCall
	Err     error
}

func failed(err error) Result {
	return Result{Outcome: OutcomeFailed, Err: err}
}

// Invoke llama a caller y reduce cualquier falla (error, panic, respuesta que no respeta
// el schema) a OutcomeFailed. Nunca devuelve error ni propaga panics.
func Invoke(ctx context.Context, caller ToolCaller, prompt string, tool ToolSpec) (res Result) {
	if caller == nil {
		return failed(ErrNotConfigured)
	}

	defer func() {
		if r := recover(); r != nil {
			res = failed(fmt.Errorf("%w: %v", ErrPanic, r))
		}
	}()

	call, err := caller.CallTool(ctx, prompt, tool)
	if err != nil {
		return failed(err)
	}
	if call == nil {
		return Result{Outcome: OutcomeNoTool}
	}

	if !strings.EqualFold(strings.TrimSpace(call.Name), tool.Name) {
		return failed(fmt.Errorf("%w: got %q want %q", ErrToolMismatch, call.Name, tool.Name))
	}

	args, err := normalize(call.Arguments)
	if err != nil {
		return failed(fmt.Errorf("%w: %v", ErrToolMismatch, err))
	}
	if tool.InputSchema != nil {
		resolved, err := tool.InputSchema.Resolve(nil)
		if err != nil {
			return failed(fmt.Errorf("llm: resolve tool schema: %w", err))
		}
		if err := resolved.Validate(args); err != nil {
			return failed(fmt.Errorf("%w: %v", ErrToolMismatch, err))
		}
	}

	return Result{
		Outcome: OutcomeInvoked,
		Call:    &ToolCall{Name: tool.Name, Arguments: args},
	}
}

// normalize pasa los argumentos por JSON para dejarlos en el modelo de valores de
// encoding/json (float64, string, bool, map, slice) sin importar qué tipos usó el SDK.
func normalize(args map[string]any) (map[string]any, error) {
	if args == nil {
		return map[string]any{}, nil
	}
	b, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeArguments decodifica JSON crudo de argumentos (lo que mandan Converse y Messages API).
func DecodeArguments(raw []byte) (map[string]any, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return map[string]any{}, nil
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("llm: decode tool arguments: %w", err)
	}
	return out, nil
}
