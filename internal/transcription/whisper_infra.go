package transcription

import (
	"bytes"
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const (
	GroqBaseURL        = "https://api.groq.com/openai/v1"
	DefaultGroqModel   = "whisper-large-v3"
	DefaultOpenAIModel = openai.Whisper1
)

// WhisperClient talks to any OpenAI-compatible /audio/transcriptions endpoint
// (Groq, OpenAI).
type WhisperClient struct {
	client *openai.Client
	model  string
}

func NewWhisperClient(apiKey, baseURL, model string) *WhisperClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &WhisperClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (c *WhisperClient) Transcribe(ctx context.Context, audio []byte, stagedPath string) (string, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.model,
		FilePath: stagedPath,
		Reader:   bytes.NewReader(audio),
		Format:   openai.AudioResponseFormatText,
	})
	if err != nil {
		return "", fmt.Errorf("whisper request: %w", err)
	}
	return resp.Text, nil
}
