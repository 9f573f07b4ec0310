package generation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"uiforge/uiforge/services/llm"
	"uiforge/uiforge/utils/apperr"
)

type fakeCompleter struct {
	replies map[string]string
	errs    map[string]error
	panics  map[string]bool
	calls   []string
	prompts []string
}

func (f *fakeCompleter) Complete(ctx context.Context, model, prompt string) (string, error) {
	f.calls = append(f.calls, model)
	f.prompts = append(f.prompts, prompt)
	if f.panics[model] {
		panic("boom")
	}
	if err := f.errs[model]; err != nil {
		return "", err
	}
	return f.replies[model], nil
}

func variants(t *testing.T, list ...string) []llm.Variant {
	t.Helper()
	vs, err := llm.ParseVariants(list)
	if err != nil {
		t.Fatal(err)
	}
	return vs
}

func TestGenerateFallsThroughVariantsInOrder(t *testing.T) {
	fake := &fakeCompleter{
		errs:    map[string]error{"m1": errors.New("503 overloaded")},
		panics:  map[string]bool{"m2": true},
		replies: map[string]string{"m3": "", "m4": "JSX: <div>ok</div>\nCSS: div{}\nExplanation: fine"},
	}
	g := NewGenerator(variants(t, "fake:m1", "fake:m2", "fake:m3", "fake:m4", "fake:m5"),
		map[string]llm.Completer{"fake": fake})

	r, err := g.Generate(context.Background(), "a div")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if strings.Join(fake.calls, ",") != "m1,m2,m3,m4" {
		t.Errorf("unexpected call order %v", fake.calls)
	}
	if r.MarkupText != "<div>ok</div>" || r.Model != "fake:m4" {
		t.Errorf("unexpected result %+v", r)
	}
	if !strings.Contains(fake.prompts[0], "a div") || !strings.Contains(fake.prompts[0], "JSX:") {
		t.Errorf("prompt template not applied: %q", fake.prompts[0])
	}
}

func TestGenerateAllVariantsFail(t *testing.T) {
	fake := &fakeCompleter{errs: map[string]error{
		"m1": errors.New("first"),
		"m2": errors.New("second"),
	}}
	g := NewGenerator(variants(t, "fake:m1", "fake:m2", "missing:m3"),
		map[string]llm.Completer{"fake": fake})

	r, err := g.Generate(context.Background(), "a div")
	if !errors.Is(err, apperr.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if !strings.Contains(err.Error(), `provider "missing" not configured`) {
		t.Errorf("expected last error in message, got %v", err)
	}
	if r.StyleText != "" {
		t.Errorf("expected empty style, got %q", r.StyleText)
	}
	if r.MarkupText == "" || !strings.Contains(r.MarkupText, "Generation failed") {
		t.Errorf("expected error display markup, got %q", r.MarkupText)
	}
}

func TestGenerateNoVariants(t *testing.T) {
	r, err := NewGenerator(nil, nil).Generate(context.Background(), "x")
	if !errors.Is(err, apperr.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if r.MarkupText == "" {
		t.Error("expected displayable markup")
	}
}

func TestGenerateRejectsEmptyPrompt(t *testing.T) {
	_, err := NewGenerator(nil, nil).Generate(context.Background(), "   ")
	if !errors.Is(err, apperr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGenerateUnparseableReplyUsesFallback(t *testing.T) {
	fake := &fakeCompleter{replies: map[string]string{"m1": "no code here, sorry"}}
	g := NewGenerator(variants(t, "fake:m1"), map[string]llm.Completer{"fake": fake})

	r, err := g.Generate(context.Background(), "x")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(r.MarkupText, "no code here, sorry") {
		t.Errorf("expected excerpt, got %q", r.MarkupText)
	}
}
