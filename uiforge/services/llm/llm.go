package llm

import (
	"context"
	"fmt"
	"strings"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Completer sends one prompt to one model and returns the raw reply text.
type Completer interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}

// Variant names a provider and the model to request from it.
type Variant struct {
	Provider string
	Model    string
}

func (v Variant) String() string {
	return v.Provider + ":" + v.Model
}

// ParseVariant reads "provider:model". A bare model name is a Gemini model.
func ParseVariant(s string) (Variant, error) {
	s = strings.TrimSpace(s)
	provider, model, ok := strings.Cut(s, ":")
	if !ok {
		provider, model = ProviderGemini, s
	}
	provider = strings.ToLower(strings.TrimSpace(provider))
	model = strings.TrimSpace(model)
	if provider == "" || model == "" {
		return Variant{}, fmt.Errorf("invalid model variant %q", s)
	}
	return Variant{Provider: provider, Model: model}, nil
}

func ParseVariants(list []string) ([]Variant, error) {
	variants := make([]Variant, 0, len(list))
	for _, s := range list {
		v, err := ParseVariant(s)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
