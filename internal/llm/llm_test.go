package llm

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samzong/gwp/internal/config"
)

type mockCompleter struct {
	response openai.ChatCompletionResponse
	err      error
	lastReq  openai.ChatCompletionRequest
}

func (m *mockCompleter) CreateChatCompletion(
	_ context.Context,
	request openai.ChatCompletionRequest,
) (openai.ChatCompletionResponse, error) {
	m.lastReq = request
	return m.response, m.err
}

func responseWith(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func TestGenerateCommitMessage_Success(t *testing.T) {
	mock := &mockCompleter{response: responseWith("  feat: update config\n")}
	client := NewWithCompleter(mock, "gpt-4")

	message, err := client.GenerateCommitMessage(context.Background(), "diff prompt")

	require.NoError(t, err)
	assert.Equal(t, "feat: update config", message)
	assert.Equal(t, "gpt-4", mock.lastReq.Model)
	assert.Equal(t, maxResponseTokens, mock.lastReq.MaxTokens)
	require.Len(t, mock.lastReq.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, mock.lastReq.Messages[0].Role)
	assert.Equal(t, "diff prompt", mock.lastReq.Messages[1].Content)
}

func TestGenerateCommitMessage_TransportError(t *testing.T) {
	mock := &mockCompleter{err: errors.New("connection refused")}
	client := NewWithCompleter(mock, "gpt-4")

	_, err := client.GenerateCommitMessage(context.Background(), "prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to call LLM")
}

func TestGenerateCommitMessage_EmptyChoices(t *testing.T) {
	mock := &mockCompleter{response: openai.ChatCompletionResponse{}}
	client := NewWithCompleter(mock, "gpt-4")

	_, err := client.GenerateCommitMessage(context.Background(), "prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestGenerateCommitMessage_BlankContent(t *testing.T) {
	mock := &mockCompleter{response: responseWith("   \n")}
	client := NewWithCompleter(mock, "gpt-4")

	_, err := client.GenerateCommitMessage(context.Background(), "prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "blank message")
}

func TestGenerateCommitMessage_MissingAPIKey(t *testing.T) {
	client := New(&config.Config{Model: "gpt-4"})

	_, err := client.GenerateCommitMessage(context.Background(), "prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not set")
}
