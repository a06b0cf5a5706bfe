package core

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrAuthRequired       = errors.New("authentication required")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")

	ErrAlreadyVoted = errors.New("you have already voted in this poll")
	ErrPollClosed   = errors.New("poll is closed")
	// ErrVoteConflict means the store aborted the vote transaction because of a
	// concurrent write. The vote was not counted and may be retried.
	ErrVoteConflict = errors.New("vote conflicted with a concurrent update")

	ErrGenerationFailed = errors.New("article generation failed")
)
