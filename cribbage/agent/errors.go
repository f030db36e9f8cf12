package agent

import (
	"errors"
	"fmt"
)

var (
	ErrHandSize    = errors.New("discard needs a hand of 5 or 6 cards")
	ErrNoLegalPlay = errors.New("no legal play")
	ErrNoCandidate = errors.New("no discard candidate completed a trial")
)

// HandSizeError reports a discard request for a hand that is neither 5 nor 6
// cards. It matches ErrHandSize.
type HandSizeError struct {
	Size int
}

func (e *HandSizeError) Error() string {
	return fmt.Sprintf("%v: got %d", ErrHandSize, e.Size)
}

func (e *HandSizeError) Is(target error) bool { return target == ErrHandSize }
