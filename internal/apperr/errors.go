// Package apperr defines the error taxonomy shared by the sync pipeline.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig marks invalid or missing configuration. Always fatal, raised
	// before any state is mutated.
	ErrConfig = errors.New("configuration error")
	// ErrUnsafePurge is returned when a purge target is not strictly inside
	// the project root. It wraps ErrConfig.
	ErrUnsafePurge = fmt.Errorf("%w: unsafe purge target", ErrConfig)
	// ErrParse marks a metadata header that could not be parsed.
	ErrParse = errors.New("parse error")
	// ErrProcess marks a fatal failure while processing a single document.
	ErrProcess = errors.New("processing error")
)
