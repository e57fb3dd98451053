package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"docqa/internal/config"
)

const defaultTimeout = 60 * time.Second

// Client invokes the configured generative model. No automatic retries:
// provider failures are surfaced to the caller.
type Client struct {
	model       llms.Model
	temperature float64
	timeout     time.Duration
}

func NewClient(cfg *config.Config) (*Client, error) {
	model, err := openai.New(
		openai.WithToken(cfg.APIKey()),
		openai.WithModel(cfg.LLMModel),
	)
	if err != nil {
		return nil, fmt.Errorf("initializing LLM client: %w", err)
	}
	return &Client{
		model:       model,
		temperature: cfg.Temperature,
		timeout:     defaultTimeout,
	}, nil
}

// Generate runs one completion for the assembled prompt and returns the
// model output verbatim.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	}
	resp, err := c.model.GenerateContent(ctx, messages, llms.WithTemperature(c.temperature))
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}
	log.Debug().Int("prompt_len", len(prompt)).Msg("generated completion")
	return resp.Choices[0].Content, nil
}
