package model

import (
	"errors"

	"github.com/ms42scan/ms42scan/internal/binreader"
)

// Error kinds shared across the detector and its I/O boundary. Hot-loop
// errors (bounds failures, unparseable template attributes) are always
// recovered locally by the caller; only IOFailure, DecodeFailure, and
// WriteFailure are meant to surface to a CLI caller.
var (
	// ErrIOFailure wraps a failed read of the image, a template catalog,
	// or a hints export.
	ErrIOFailure = errors.New("model: io failure")

	// ErrDecodeFailure wraps malformed JSON input (templates, hints, or
	// a persisted map set).
	ErrDecodeFailure = errors.New("model: decode failure")

	// ErrOutOfBounds is re-exported from image/binreader for callers that
	// only import model.
	ErrOutOfBounds = binreader.ErrOutOfBounds

	// ErrMalformedTemplate marks a template whose EMBEDDEDDATA attributes
	// are missing, unparseable, or non-positive. The rescanner skips the
	// offending template rather than aborting.
	ErrMalformedTemplate = errors.New("model: malformed template")

	// ErrWriteFailure wraps a failed XDF or JSON emission.
	ErrWriteFailure = errors.New("model: write failure")
)
