// Package llm wraps the OpenAI chat API as an optional summarizer for
// composed responses. The pipeline works fully without it; when it is
// disabled or failing, the composer falls back to template summaries.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/DJ-no1/floatchat-backend/internal/intent"
	"github.com/DJ-no1/floatchat-backend/internal/search/web"
	"github.com/DJ-no1/floatchat-backend/pkg/circuitbreaker"
	"github.com/DJ-no1/floatchat-backend/pkg/config"
	"github.com/DJ-no1/floatchat-backend/pkg/logger"
	"github.com/DJ-no1/floatchat-backend/pkg/retry"
)

const systemPrompt = `You summarize web search results about the Argo ocean observation program.

Rules:
1. Use ONLY the numbered snippets provided. Never invent numbers, dates, or facts.
2. If the snippets do not answer the question, say so and point at the most relevant link.
3. Mention source domains inline, e.g. (incois.gov.in).
4. Two to four sentences of markdown, no headings.`

type Client struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	cb          *circuitbreaker.CircuitBreaker
	retryCfg    retry.Config
}

func NewClient(cfg config.LLMConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	cb := circuitbreaker.New("llm", circuitbreaker.Config{
		MaxRequests:      2,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Logger:           logger.GetLogger(),
	})

	logger.Info("LLM summarizer initialized", zap.String("model", cfg.Model))

	return &Client{
		client:      openai.NewClient(cfg.APIKey),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		timeout:     timeout,
		cb:          cb,
		retryCfg: retry.Config{
			MaxAttempts:  2,
			InitialDelay: 500 * time.Millisecond,
			Logger:       logger.GetLogger(),
		},
	}
}

// Summarize implements compose.Summarizer.
func (c *Client) Summarize(ctx context.Context, query string, it intent.Intent, results []web.Result) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var summary string
	err := c.cb.Execute(ctx, func() error {
		return retry.Do(ctx, c.retryCfg, func() error {
			resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
				Model:       c.model,
				Temperature: c.temperature,
				MaxTokens:   c.maxTokens,
				Messages: []openai.ChatCompletionMessage{
					{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
					{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(query, it, results)},
				},
			})
			if err != nil {
				return fmt.Errorf("failed to create completion: %w", err)
			}
			if len(resp.Choices) == 0 {
				return fmt.Errorf("completion returned no choices")
			}

			logger.Debug("Summary generated",
				zap.Int("prompt_tokens", resp.Usage.PromptTokens),
				zap.Int("completion_tokens", resp.Usage.CompletionTokens),
			)

			summary = strings.TrimSpace(resp.Choices[0].Message.Content)
			return nil
		})
	})
	if err != nil {
		return "", err
	}

	return summary, nil
}

func buildUserPrompt(query string, it intent.Intent, results []web.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question (%s): %s\n\nSearch results:\n", it, query)
	for i, r := range results {
		fmt.Fprintf(&b, "[%d] %s (%s)\n%s\n", i+1, r.Title, r.Source, r.Snippet)
		if r.Published != "" {
			fmt.Fprintf(&b, "Published: %s\n", r.Published)
		}
		b.WriteString("\n")
	}
	return b.String()
}
