package llm

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"uiforge/uiforge/utils/logging"

	"github.com/go-resty/resty/v2"
)

type GeminiClient struct {
	client *resty.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig map[string]interface{} `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// NewGeminiClient returns a client for the generateContent REST endpoint under baseURL.
func NewGeminiClient(baseURL, apiKey string) *GeminiClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", apiKey)
	return &GeminiClient{client: client}
}

func (c *GeminiClient) Complete(ctx context.Context, model, prompt string) (string, error) {
	defer logging.LogDuration(ctx, "gemini_complete")()

	var out geminiResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(geminiRequest{
			Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
			GenerationConfig: map[string]interface{}{
				"temperature": 0.4,
			},
		}).
		SetResult(&out).
		Post("/models/" + url.PathEscape(model) + ":generateContent")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("gemini request failed: %s - %s", resp.Status(), truncate(resp.String(), 300))
	}
	if out.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("gemini blocked prompt: %s", out.PromptFeedback.BlockReason)
	}
	if len(out.Candidates) == 0 {
		return "", fmt.Errorf("no candidates returned from gemini")
	}
	var sb strings.Builder
	for _, part := range out.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}
