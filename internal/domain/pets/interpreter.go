package pets

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"petstore-catalog/internal/platform/logger"
	"petstore-catalog/internal/ports/llm"
)

// Interpreter traduce texto libre a filtros vía tool call, con fallback por keywords.
type Interpreter struct {
	caller llm.ToolCaller
	log    logger.Logger
	tracer trace.Tracer
	newID  func() string
}

// NewInterpreter acepta caller nil: todas las queries van al fallback.
func NewInterpreter(caller llm.ToolCaller, log logger.Logger) *Interpreter {
	if log == nil {
		log = logger.Nop()
	}
	return &Interpreter{
		caller: caller,
		log:    log,
		tracer: otel.Tracer("petstore-catalog/pets"),
		newID:  uuid.NewString,
	}
}

// Interpret nunca falla: un error del LLM se loguea y se resuelve con KeywordFilter.
func (in *Interpreter) Interpret(ctx context.Context, text string, all []Pet) QueryResult {
	queryID := in.newID()
	ctx, span := in.tracer.Start(ctx, "pets.Interpret", trace.WithAttributes(
		attribute.String("query.id", queryID),
		attribute.Int("pets.input", len(all)),
	))
	defer span.End()

	log := in.log.With(map[string]any{"query_id": queryID})

	res := llm.Invoke(ctx, in.caller, queryPrompt(text), FilterTool())
	span.SetAttributes(attribute.String("llm.outcome", res.Outcome.String()))

	var out QueryResult
	switch res.Outcome {
	case llm.OutcomeInvoked:
		matched := applyCriteria(all, criteriaFromArgs(res.Call.Arguments))
		out = QueryResult{
			Pets:           truncate(matched),
			Count:          len(matched),
			FiltersApplied: res.Call.Arguments,
		}
		queryOutcomes.WithLabelValues("llm").Inc()
		log.Debug("query resolved by llm", map[string]any{"filters": res.Call.Arguments, "count": out.Count})

	case llm.OutcomeNoTool:
		head := make([]Pet, len(all))
		copy(head, all)
		out = QueryResult{
			Pets:           truncate(head),
			Count:          len(all),
			FiltersApplied: map[string]any{},
		}
		queryOutcomes.WithLabelValues("no_tool").Inc()
		log.Info("llm answered without tool call", map[string]any{"count": out.Count})

	default:
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, "llm failed, using keyword fallback")
		log.Warn("llm error, using keyword fallback", map[string]any{"error": res.Err})

		out = KeywordFilter(text, all)
		queryOutcomes.WithLabelValues("fallback").Inc()
	}

	span.SetAttributes(attribute.Int("pets.count", out.Count))
	return out
}
