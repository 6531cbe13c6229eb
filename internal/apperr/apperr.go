package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes every handler knows how to map.
// Services wrap these with context via the *f constructors so callers can
// both errors.Is them and read a useful message.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrUnavailable     = errors.New("store unavailable")
)

func InvalidArgumentf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func Unavailablef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnavailable, fmt.Sprintf(format, args...))
}

// PartialFailure reports a multi-step workflow that committed some writes
// before a later step failed. Committed writes are NOT rolled back; the
// ids carried here let the client retry just the remaining step.
type PartialFailure struct {
	Op           string // workflow name, e.g. "submit" or "upvote"
	SubmissionID string // submission already created/incremented
	Remaining    string // the step still to be done
	Err          error  // failure of the remaining step
}

func (e *PartialFailure) Error() string {
	return fmt.Sprintf("%s partially completed (submission %s), retry %s: %v",
		e.Op, e.SubmissionID, e.Remaining, e.Err)
}

func (e *PartialFailure) Unwrap() error {
	return e.Err
}
