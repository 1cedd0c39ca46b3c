// Package entity defines the domain entities for the session feature.
package entity

import "time"

// State is one of the three session lifecycle states.
type State int

const (
	// StateUnauthenticated means no valid session exists.
	StateUnauthenticated State = iota
	// StateActive means the session is valid and outside the warning window.
	StateActive
	// StateExpiring means the session is inside the warning window and the
	// user should be prompted to extend or log out.
	StateExpiring
)

// String returns the wire representation used by the status endpoint.
func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateExpiring:
		return "expiring"
	default:
		return "unauthenticated"
	}
}

// Session is the client-held proof of authentication: an opaque credential
// and the moment it was issued. The expiry window is a policy of the
// lifecycle manager, not of the record itself.
type Session struct {
	Token    string
	IssuedAt time.Time
}

// Remaining returns how much of the window is left at now. It can be
// negative once the window has elapsed.
func (s Session) Remaining(window time.Duration, now time.Time) time.Duration {
	return window - now.Sub(s.IssuedAt)
}

// Expired reports whether the window has fully elapsed at now.
func (s Session) Expired(window time.Duration, now time.Time) bool {
	return s.Remaining(window, now) <= 0
}

// StateAt returns the lifecycle state at now for the given window and
// warning lead time.
func (s Session) StateAt(window, warning time.Duration, now time.Time) State {
	remaining := s.Remaining(window, now)
	switch {
	case remaining <= 0:
		return StateUnauthenticated
	case remaining <= warning:
		return StateExpiring
	default:
		return StateActive
	}
}
