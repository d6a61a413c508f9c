package synthesis

import "fmt"

// Error is a failed upstream synthesis call. No audio accompanies it.
type Error struct {
	Provider string
	Language string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("synthesis (%s, lang=%s): %v", e.Provider, e.Language, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
