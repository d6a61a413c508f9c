package transcription

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

type Service struct {
	engine   Engine
	provider string
	timeout  time.Duration
}

func NewService(engine Engine, provider string, timeout time.Duration) *Service {
	return &Service{
		engine:   engine,
		provider: provider,
		timeout:  timeout,
	}
}

// Transcribe returns trimmed text, FallbackText when the engine returned only
// whitespace, or an *Error wrapping the upstream failure. It never retries.
func (s *Service) Transcribe(ctx context.Context, audio []byte, stagedPath string) (string, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	log.Printf("[stt] start provider=%s size=%s", s.provider, humanize.Bytes(uint64(len(audio))))

	text, err := s.engine.Transcribe(ctx, audio, stagedPath)
	if err != nil {
		log.Printf("[stt] fail provider=%s err=%v", s.provider, err)
		return "", &Error{Provider: s.provider, Err: err}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		log.Printf("[stt] empty transcript provider=%s, using fallback", s.provider)
		return FallbackText, nil
	}

	log.Printf("[stt] done provider=%s text=%q", s.provider, text)
	return text, nil
}
