package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
)

// Log logs an error using the default slog logger, extracting metadata if it's
// a StructuredError.
func Log(err error) {
	LogTo(slog.Default(), err)
}

// LogTo logs an error using logger, extracting metadata if it's a
// StructuredError.
func LogTo(logger *slog.Logger, err error) {
	var serr *StructuredError
	if !errors.As(err, &serr) {
		logger.Error(err.Error())
		return
	}

	args := make([]any, 0, len(serr.metadata)*2+2)

	cause := serr.metadata["cause"]
	if serr.cause != nil {
		cause = serr.cause
	}
	if cause != nil {
		args = append(args, "cause", cause)
	}

	keys := make([]string, 0, len(serr.metadata))
	for k := range serr.metadata {
		if k != "cause" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		args = append(args, k, serr.metadata[k])
	}

	logger.Error(serr.Error(), args...)
}

// Message returns a user-facing message for err: the error text followed by
// its cause, if it's a StructuredError with one.
func Message(err error) string {
	var serr *StructuredError
	if !errors.As(err, &serr) || serr.cause == nil {
		return err.Error()
	}
	return fmt.Sprintf("%s: %s", serr.Error(), serr.cause)
}
