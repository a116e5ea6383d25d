package media

import "errors"

// Common errors for media operations.
var (
	ErrInvalidURL    = errors.New("invalid media url")
	ErrNotImage      = errors.New("file is not an image")
	ErrNoMedia       = errors.New("no media selected")
	ErrNotMedia      = errors.New("node is not an image or video embed")
	ErrNotResizing   = errors.New("no resize in progress")
	ErrInvalidHandle = errors.New("invalid resize handle")
)
