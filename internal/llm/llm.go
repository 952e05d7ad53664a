// Package llm generates commit messages through an OpenAI-compatible API.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samzong/gwp/internal/config"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// requestTimeout bounds the outbound call so a hung endpoint cannot
	// stall a repository's pipeline forever.
	requestTimeout = 30 * time.Second

	// maxResponseTokens bounds the response; commit messages are short.
	maxResponseTokens = 200

	systemPrompt = "You are a professional Git commit message generator, " +
		"helping developers generate commit messages that comply with the " +
		"Conventional Commits specification."
)

// ChatCompleter is the slice of the OpenAI client used by this package.
type ChatCompleter interface {
	CreateChatCompletion(
		ctx context.Context,
		request openai.ChatCompletionRequest,
	) (openai.ChatCompletionResponse, error)
}

// Client generates commit messages for diffs.
type Client struct {
	completer ChatCompleter
	model     string
}

// New builds a client from configuration. The API key is required; an empty
// key yields an error from GenerateCommitMessage rather than from New so the
// caller can uniformly fall back.
func New(cfg *config.Config) *Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.APIBase != "" {
		clientConfig.BaseURL = cfg.APIBase
	}

	c := &Client{model: cfg.Model}
	if cfg.APIKey != "" {
		c.completer = openai.NewClientWithConfig(clientConfig)
	}
	return c
}

// NewWithCompleter builds a client around an existing completer. Used in tests.
func NewWithCompleter(completer ChatCompleter, model string) *Client {
	return &Client{completer: completer, model: model}
}

// GenerateCommitMessage sends the prompt and returns the trimmed first choice.
func (c *Client) GenerateCommitMessage(ctx context.Context, prompt string) (string, error) {
	if c.completer == nil {
		return "", errors.New("API key not set, configure it with: gwp config set apikey YOUR_API_KEY")
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.completer.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: maxResponseTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to call LLM: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("LLM returned empty response")
	}

	message := strings.TrimSpace(resp.Choices[0].Message.Content)
	if message == "" {
		return "", errors.New("LLM returned blank message")
	}

	return message, nil
}
