package quiz

import "errors"

// Session creation failures.
var (
	ErrUnknownMode      = errors.New("unknown mode")
	ErrEmptyQuestionSet = errors.New("empty question set")
	ErrInvalidQuestion  = errors.New("invalid question")
)

// ErrAlreadyAnswered is returned for a submission made while the previous
// judgment is still settling. The duplicate is ignored.
var ErrAlreadyAnswered = errors.New("already answered")

// Precondition violations. These indicate a caller bug, not a player mistake.
var (
	ErrModeMismatch       = errors.New("operation does not apply to this mode")
	ErrOptionOutOfRange   = errors.New("option index out of range")
	ErrMatchUnresolved    = errors.New("match question not resolved")
	ErrUnknownWord        = errors.New("word not part of this question")
	ErrUnknownMeaning     = errors.New("meaning not part of this question")
	ErrWordMatched        = errors.New("word already matched")
	ErrMeaningUnavailable = errors.New("meaning already consumed")
	ErrSessionCompleted   = errors.New("session completed")
	ErrSessionClosed      = errors.New("session closed")
)
