package transcription

import "context"

// FallbackText is returned instead of an error when the engine hears nothing usable.
const FallbackText = "I didn't catch that. Could you please speak clearly?"

// Engine is a remote speech-to-text backend.
// stagedPath points at an on-disk copy of audio for engines that need a file name.
type Engine interface {
	Transcribe(ctx context.Context, audio []byte, stagedPath string) (string, error)
}
