package capture

import (
	"errors"
	"fmt"
)

var (
	// ErrEncoderNotFound indicates the encoder binary is not on PATH.
	ErrEncoderNotFound = errors.New("capture: encoder binary not found")

	// ErrNoFrames indicates an encode was requested with no captured frames.
	ErrNoFrames = errors.New("capture: no frames to encode")
)

// EncodeError is returned when the encoder ran but exited non-zero.
type EncodeError struct {
	Binary   string
	ExitCode int
	Output   []byte
	Wrapped  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("capture: %s exited with status %d", e.Binary, e.ExitCode)
}

func (e *EncodeError) Unwrap() error {
	return e.Wrapped
}
