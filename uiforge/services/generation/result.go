package generation

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

const (
	excerptLimit = 200
	errorLimit   = 300
)

// Result is what one generation round produces.
type Result struct {
	MarkupText      string `json:"markup_text"`
	StyleText       string `json:"style_text"`
	ExplanationText string `json:"explanation_text"`
	Model           string `json:"model,omitempty"`
}

const fallbackStyle = `.ai-fallback {
  font-family: system-ui, sans-serif;
  padding: 16px;
  border: 1px dashed #94a3b8;
  border-radius: 8px;
}
.ai-fallback pre {
  white-space: pre-wrap;
}`

// Excerpt returns at most the first 200 characters of raw, trimmed.
func Excerpt(raw string) string {
	return truncateRunes(strings.TrimSpace(raw), excerptLimit)
}

// Fallback is the display block shown when no code could be pulled out of raw.
func Fallback(raw string) Result {
	return Result{
		MarkupText: `<div className="ai-fallback">
  <p>The AI reply could not be turned into a component. Raw excerpt:</p>
  <pre>{` + jsString(Excerpt(raw)) + `}</pre>
</div>`,
		StyleText:       fallbackStyle,
		ExplanationText: "Could not extract code from the AI response; showing a raw excerpt instead.",
	}
}

// ErrorResult is the displayable payload returned when every model variant failed.
func ErrorResult(err error) Result {
	detail := "unknown error"
	if err != nil {
		detail = truncateRunes(err.Error(), errorLimit)
	}
	return Result{
		MarkupText: `<div className="ai-error">
  <h3>Generation failed</h3>
  <p>{` + jsString(detail) + `}</p>
</div>`,
		StyleText:       "",
		ExplanationText: "The AI service is unavailable right now. Please try again.",
	}
}

// jsString renders s as a string literal usable inside a JSX expression.
func jsString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
