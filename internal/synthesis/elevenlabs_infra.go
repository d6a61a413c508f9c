package synthesis

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
)

const (
	elevenLabsURL          = "https://api.elevenlabs.io/v1/text-to-speech/%s"
	DefaultElevenLabsVoice = "EXAVITQu4vr4xnSDxMaL" // Rachel
	elevenLabsModel        = "eleven_flash_v2_5"
)

type ElevenLabsClient struct {
	apiKey  string
	voiceID string
	url     string
	httpCli *http.Client
}

func NewElevenLabsClient(apiKey, voiceID string) *ElevenLabsClient {
	if voiceID == "" {
		voiceID = DefaultElevenLabsVoice
	}
	return &ElevenLabsClient{
		apiKey:  apiKey,
		voiceID: voiceID,
		url:     fmt.Sprintf(elevenLabsURL, voiceID),
		httpCli: http.DefaultClient,
	}
}

func (c *ElevenLabsClient) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	payload, err := json.Marshal(map[string]string{
		"text":          text,
		"model_id":      elevenLabsModel,
		"language_code": language,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("elevenlabs error: %s", string(b))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read elevenlabs audio: %w", err)
	}
	return audio, nil
}
