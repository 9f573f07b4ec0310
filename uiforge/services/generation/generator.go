// Package generation turns a user prompt into component code by asking an
// external model and scraping the reply.
package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"uiforge/uiforge/services/llm"
	"uiforge/uiforge/utils/apperr"
	"uiforge/uiforge/utils/logging"

	"go.uber.org/zap"
)

type Generator struct {
	variants  []llm.Variant
	providers map[string]llm.Completer
}

// NewGenerator tries variants in order against the provider each one names.
func NewGenerator(variants []llm.Variant, providers map[string]llm.Completer) *Generator {
	return &Generator{variants: variants, providers: providers}
}

func (g *Generator) Variants() []llm.Variant {
	return append([]llm.Variant(nil), g.variants...)
}

// Generate never returns an empty result. When every variant fails the result
// is an error display block and err wraps apperr.ErrUpstream.
func (g *Generator) Generate(ctx context.Context, prompt string) (Result, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Result{}, fmt.Errorf("%w: prompt is required", apperr.ErrInvalidInput)
	}
	defer logging.LogDuration(ctx, "generation_generate")()

	raw, variant, err := g.complete(ctx, BuildPrompt(prompt))
	if err != nil {
		return ErrorResult(err), err
	}
	result, strategy := Extract(raw)
	result.Model = variant.String()
	logging.AppLogger.Info("generation complete",
		zap.String("model", result.Model),
		zap.String("strategy", strategy),
		zap.Int("raw_len", len(raw)),
	)
	return result, nil
}

// complete walks the variants one at a time until one answers.
func (g *Generator) complete(ctx context.Context, prompt string) (string, llm.Variant, error) {
	lastErr := errors.New("no model variants configured")
	for i, v := range g.variants {
		if ctx.Err() != nil {
			lastErr = ctx.Err()
			break
		}
		text, err := g.attempt(ctx, v, prompt)
		if err == nil {
			return text, v, nil
		}
		lastErr = fmt.Errorf("%s: %w", v, err)
		logging.ErrorLogger.Error("model variant failed",
			zap.String("variant", v.String()),
			zap.Int("attempt", i+1),
			zap.Int("of", len(g.variants)),
			zap.Error(err),
		)
	}
	return "", llm.Variant{}, fmt.Errorf("%w: all %d model variants failed, last error: %v",
		apperr.ErrUpstream, len(g.variants), lastErr)
}

func (g *Generator) attempt(ctx context.Context, v llm.Variant, prompt string) (text string, err error) {
	p, ok := g.providers[v.Provider]
	if !ok || p == nil {
		return "", fmt.Errorf("provider %q not configured", v.Provider)
	}
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("panic: %v", r)
		}
	}()
	text, err = p.Complete(ctx, v.Model, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.New("empty response")
	}
	return text, nil
}
