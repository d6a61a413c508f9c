package transcription

import "fmt"

// Error is a failed upstream transcription call.
type Error struct {
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("transcription (%s): %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
