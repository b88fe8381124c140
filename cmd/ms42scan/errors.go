package main

import (
	"errors"

	"github.com/ms42scan/ms42scan/model"
)

// Exit codes: 0 success, 2 input-read failure, 3 decode failure, 4
// output-write failure.
const (
	exitSuccess     = 0
	exitReadFailure = 2
	exitDecodeError = 3
	exitWriteError  = 4
)

func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, model.ErrDecodeFailure):
		return exitDecodeError
	case errors.Is(err, model.ErrWriteFailure):
		return exitWriteError
	case errors.Is(err, model.ErrIOFailure):
		return exitReadFailure
	default:
		return exitReadFailure
	}
}
