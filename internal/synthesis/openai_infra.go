package synthesis

import (
	"context"
	"fmt"
	"io"
	"log"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAISpeech detects the language from the text itself, so the tag is only logged.
type OpenAISpeech struct {
	client *openai.Client
	voice  openai.SpeechVoice
}

func NewOpenAISpeech(apiKey, baseURL, voice string) *OpenAISpeech {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if voice == "" {
		voice = string(openai.VoiceAlloy)
	}
	return &OpenAISpeech{
		client: openai.NewClientWithConfig(cfg),
		voice:  openai.SpeechVoice(voice),
	}
}

func (o *OpenAISpeech) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	if text == "" {
		return nil, errNoText
	}
	log.Printf("[tts/openai] voice=%s lang=%s", o.voice, language)

	resp, err := o.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.TTSModel1,
		Input:          text,
		Voice:          o.voice,
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return nil, fmt.Errorf("openai speech request: %w", err)
	}
	defer resp.Close()

	audio, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("read openai speech: %w", err)
	}
	return audio, nil
}
