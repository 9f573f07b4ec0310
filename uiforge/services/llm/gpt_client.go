package llm

import (
	"context"
	"fmt"

	"uiforge/uiforge/utils/logging"

	openai "github.com/sashabaranov/go-openai"
)

type GPTClient struct {
	client *openai.Client
}

// NewGPTClient talks to OpenAI, or to a compatible endpoint when baseURL is set.
func NewGPTClient(apiKey, baseURL string) *GPTClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &GPTClient{client: openai.NewClientWithConfig(cfg)}
}

func (c *GPTClient) Complete(ctx context.Context, model, prompt string) (string, error) {
	defer logging.LogDuration(ctx, "gpt_complete")()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.4,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no content in GPT response")
	}
	return resp.Choices[0].Message.Content, nil
}
