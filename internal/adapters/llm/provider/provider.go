package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"petstore-catalog/internal/adapters/llm/anthropic"
	"petstore-catalog/internal/adapters/llm/bedrock"
	"petstore-catalog/internal/adapters/llm/gemini"
	"petstore-catalog/internal/platform/config"
	"petstore-catalog/internal/platform/logger"
	"petstore-catalog/internal/ports/llm"
)

var (
	ErrUnknownProvider = errors.New("unknown llm provider")
	ErrRateLimited     = errors.New("llm rate limit exceeded")
)

// New arma el ToolCaller según cfg.Provider.
// Con "none" devuelve nil: toda consulta cae al filtro por palabras clave.
func New(ctx context.Context, cfg config.LLM, log logger.Logger) (llm.ToolCaller, error) {
	if log == nil {
		log = logger.Nop()
	}

	var (
		caller llm.ToolCaller
		err    error
	)

	switch p := strings.ToLower(strings.TrimSpace(cfg.Provider)); p {
	case "", config.ProviderNone:
		log.Info("llm provider disabled", map[string]any{"provider": config.ProviderNone})
		return nil, nil
	case config.ProviderBedrock:
		caller, err = bedrock.New(ctx, cfg.Region, cfg.Model)
	case config.ProviderGemini:
		caller, err = gemini.New(ctx, cfg.APIKey, cfg.Model)
	case config.ProviderAnthropic:
		caller, err = anthropic.NewClient(anthropic.Config{
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			Timeout: cfg.Timeout,
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, p)
	}
	if err != nil {
		return nil, fmt.Errorf("llm provider %s: %w", cfg.Provider, err)
	}

	caller = WithTimeout(caller, cfg.Timeout)
	if cfg.RateLimit > 0 {
		caller = WithRateLimit(caller, rate.NewLimiter(rate.Limit(cfg.RateLimit), max(cfg.RateBurst, 1)))
	}

	log.Info("llm provider ready", map[string]any{
		"provider":   cfg.Provider,
		"model":      cfg.Model,
		"rate_limit": cfg.RateLimit,
	})
	return caller, nil
}

type timeoutCaller struct {
	next    llm.ToolCaller
	timeout time.Duration
}

// WithTimeout acota cada llamada; d <= 0 deja el caller como está.
func WithTimeout(next llm.ToolCaller, d time.Duration) llm.ToolCaller {
	if next == nil || d <= 0 {
		return next
	}
	return timeoutCaller{next: next, timeout: d}
}

func (c timeoutCaller) CallTool(ctx context.Context, prompt string, tool llm.ToolSpec) (*llm.ToolCall, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.next.CallTool(ctx, prompt, tool)
}

type rateLimited struct {
	next llm.ToolCaller
	lim  *rate.Limiter
}

// WithRateLimit no espera: si no hay token, la llamada falla y el intérprete usa el fallback.
func WithRateLimit(next llm.ToolCaller, lim *rate.Limiter) llm.ToolCaller {
	if next == nil || lim == nil {
		return next
	}
	return rateLimited{next: next, lim: lim}
}

func (c rateLimited) CallTool(ctx context.Context, prompt string, tool llm.ToolSpec) (*llm.ToolCall, error) {
	if !c.lim.Allow() {
		return nil, ErrRateLimited
	}
	return c.next.CallTool(ctx, prompt, tool)
}
