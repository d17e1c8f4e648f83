package models

import (
	"errors"
)

var (
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrApartmentNotFound  = errors.New("models: apartment not found")
	ErrUserNotFound       = errors.New("models: user not found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")

	ErrNoUser            = errors.New("no user id supplied")
	ErrNotOwner          = errors.New("apartment does not belong to user")
	ErrLikeInFlight      = errors.New("like toggle already in flight")
	ErrNoImages          = errors.New("apartment requires at least one image")
	ErrMissingReason     = errors.New("a reason is required")
	ErrUnknownReason     = errors.New("unknown close reason")
	ErrAlreadyClosed     = errors.New("apartment already closed")
	ErrAlreadyRegistered = errors.New("already registered for open house")
)
