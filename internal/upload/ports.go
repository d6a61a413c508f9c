package upload

import "context"

// Stage is a point in the life of one upload request.
type Stage string

const (
	StageReceived         Stage = "received"
	StageStaged           Stage = "staged"
	StageTranscribed      Stage = "transcribed"
	StageCleaned          Stage = "cleaned"
	StageCleanedWithError Stage = "cleaned_with_error"
)

// Transcriber is the transcription gateway as seen by the upload flow.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, stagedPath string) (string, error)
}

type Service interface {
	// Handle stages audio, transcribes it and removes the staged copy on every path.
	Handle(ctx context.Context, audio []byte, filename, languageCode string) (string, error)
}
