package synthesis

import "context"

// DefaultLanguage is used when the caller passes no language tag.
const DefaultLanguage = "en"

// Engine is a remote text-to-speech backend returning a complete encoded utterance.
type Engine interface {
	Synthesize(ctx context.Context, text, language string) ([]byte, error)
}
