package models

import "errors"

// Domain errors. Services return these; the HTTP layer maps each to a
// stable {code, message} body. Anything not in this list collapses to a
// generic internal error with no detail leaked.
var (
	ErrEmailExists         = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUserNotFound        = errors.New("user not found")
	ErrMatchNotFound       = errors.New("match not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrMatchFull           = errors.New("match is full")
	ErrAlreadyJoined       = errors.New("player already joined this match")
	ErrSelfJoin            = errors.New("organizer cannot join their own match")
	ErrMatchNotOpen        = errors.New("match is not open for joining")
	ErrInvalidStatus       = errors.New("invalid participant status")
	ErrForbidden           = errors.New("forbidden")
)
