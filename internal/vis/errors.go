package vis

import "errors"

var (
	// ErrNotSetup is returned by Render and Record before Setup succeeded.
	ErrNotSetup = errors.New("vis: view not set up")

	// ErrNoOutput is returned when recording is requested without a path.
	ErrNoOutput = errors.New("vis: no output path for recording")
)
