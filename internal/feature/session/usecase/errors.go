// Package usecase implements the business logic for the session feature.
package usecase

import "errors"

var (
	// ErrNoSession is returned when no stored session exists, or the stored
	// record is malformed and has been discarded.
	ErrNoSession = errors.New("no session")

	// ErrEmptyToken is returned when activation is attempted without a credential.
	ErrEmptyToken = errors.New("token must not be empty")

	// ErrTokenExpired is returned when the credential itself is already past
	// its embedded expiry at activation time.
	ErrTokenExpired = errors.New("token already expired")
)
