package synthesis

import (
	"context"
	"log"
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

// Synthesize buffers the whole utterance. The language tag is passed through
// unvalidated; unsupported tags come back as *Error from the engine.
func (s *Service) Synthesize(ctx context.Context, text, language string) ([]byte, error) {
	if language == "" {
		language = DefaultLanguage
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	log.Printf("[tts] start provider=%s lang=%s text=%q", s.provider, language, text)

	audio, err := s.engine.Synthesize(ctx, text, language)
	if err != nil {
		log.Printf("[tts] fail provider=%s lang=%s err=%v", s.provider, language, err)
		return nil, &Error{Provider: s.provider, Language: language, Err: err}
	}

	log.Printf("[tts] done provider=%s size=%s", s.provider, humanize.Bytes(uint64(len(audio))))
	return audio, nil
}
