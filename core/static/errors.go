package static

import (
	"errors"
	"fmt"
)

var (
	// ErrPathRejected is the parent of every resolver rejection.
	ErrPathRejected = errors.New("request path rejected")

	// ErrMalformedPath is returned for paths with invalid percent-encoding or NUL bytes.
	ErrMalformedPath = fmt.Errorf("%w: malformed path", ErrPathRejected)

	// ErrPathEscapesRoot is returned when a path resolves outside the root directory.
	ErrPathEscapesRoot = fmt.Errorf("%w: path escapes root", ErrPathRejected)

	ErrEmptyRoot = errors.New("root directory is required")
)
