package domain

import "errors"

var (
	// ErrNotFound is returned when a challenge, duel or user is missing.
	ErrNotFound = errors.New("not found")
	// ErrNotAuthorized is returned when the actor is not a legitimate
	// participant for the requested mutation.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrSelfChallenge is returned when a user tries to challenge themselves.
	ErrSelfChallenge = errors.New("cannot challenge yourself")
	// ErrAlreadyAccepted is an idempotency guard on double acceptance.
	ErrAlreadyAccepted = errors.New("duel already accepted")
	// ErrAlreadyComplete is returned when a participant has answered every card.
	ErrAlreadyComplete = errors.New("all answers already submitted")
	// ErrDuelNotActive is returned when submitting to a duel that is not
	// accepted yet or already finished.
	ErrDuelNotActive = errors.New("duel not active")
	// ErrInvalidChoice is returned for a choice outside {0,1,2}.
	ErrInvalidChoice = errors.New("invalid answer choice")
	// ErrIndexOutOfRange is returned for a card index beyond the snapshot.
	ErrIndexOutOfRange = errors.New("card index out of range")
	// ErrDuelNotFinished is returned when asking for the result of a duel
	// that has no recorded winner yet.
	ErrDuelNotFinished = errors.New("duel not finished")
	// ErrCorruptDuelState is fatal: ledger and snapshot disagree. Never
	// retried, never silently repaired.
	ErrCorruptDuelState = errors.New("corrupt duel state")
)
