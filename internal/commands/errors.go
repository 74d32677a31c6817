package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to command failures so hosts can match on them without
// parsing messages.
const (
	codeInvalidInput    = "POSTS_CMD_INVALID_INPUT"
	codeRunCancelled    = "POSTS_CMD_CANCELLED"
	codeRunTimedOut     = "POSTS_CMD_TIMED_OUT"
	codeRunContextError = "POSTS_CMD_CONTEXT_ERROR"
	codeRunFailed       = "POSTS_CMD_FAILED"
)

func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "post command rejected invalid input").
		WithTextCode(codeInvalidInput)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "post command run cancelled").
			WithTextCode(codeRunCancelled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "post command run timed out").
			WithTextCode(codeRunTimedOut)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "post command context error").
			WithTextCode(codeRunContextError)
	}
}

func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "post command run failed").
		WithTextCode(codeRunFailed)
}
