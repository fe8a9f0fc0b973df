package openai

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/moviedex/internal/domain"
)

// Fallback is the fixed sentence the model is instructed to emit when the
// provided context does not contain the answer.
const Fallback = "I cannot answer that based on the provided movie information."

const systemPrompt = `You are a movie question answering assistant.
Follow these rules:
1. Answer only from the movie context provided by the user.
2. Do not use outside knowledge, even when you know the movie.
3. If the context is insufficient to answer, reply exactly: "` + Fallback + `"
4. Keep the answer short and factual.`

// Answerer answers questions about a single movie via chat completion,
// grounded only in the supplied title and overview.
type Answerer struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// AnswererConfig holds the chat completion settings.
type AnswererConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewAnswerer creates a chat completion answerer.
func NewAnswerer(cfg *AnswererConfig) *Answerer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Answerer{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

// Answer returns the model's reply verbatim.
func (a *Answerer) Answer(ctx context.Context, title, overview, question string) (string, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(title, overview, question)},
		},
	})
	if err != nil {
		return "", parseAPIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty chat completion response: %w", domain.ErrProviderError)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func buildUserPrompt(title, overview, question string) string {
	var b strings.Builder
	b.WriteString("Movie context:\n")
	b.WriteString("Title: " + title + "\n")
	b.WriteString("Overview: " + overview + "\n\n")
	b.WriteString("Question: " + question)
	return b.String()
}
