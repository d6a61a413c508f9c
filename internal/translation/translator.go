package translation

import "context"

// Translator turns text into the target language.
type Translator interface {
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

// Echo returns its input unchanged. It stands in until a real translation stage exists.
type Echo struct{}

func NewEcho() Echo { return Echo{} }

func (Echo) Translate(_ context.Context, text, _ string) (string, error) {
	return text, nil
}
