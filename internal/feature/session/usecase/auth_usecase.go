package usecase

import (
	"context"
	"fmt"
)

// Credentials is the result of a successful credential exchange. UserName
// and UserEmail are present only when the backend supplies a user object.
type Credentials struct {
	Token     string
	UserName  string
	UserEmail string
}

// CredentialExchanger performs the remote login.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type CredentialExchanger interface {
	Exchange(ctx context.Context, email, password string) (Credentials, error)
}

// SessionActivator is the slice of the lifecycle manager the login flow needs.
type SessionActivator interface {
	Activate(token string) error
}

// authUsecase ties the remote credential exchange to the local session
// lifecycle.
type authUsecase struct {
	exchanger CredentialExchanger
	sessions  SessionActivator
}

// NewAuthUsecase creates a new authUsecase instance.
func NewAuthUsecase(exchanger CredentialExchanger, sessions SessionActivator) *authUsecase {
	return &authUsecase{exchanger: exchanger, sessions: sessions}
}

// Login exchanges the credentials with the backend and, on success, activates
// the local session. Local state only changes after backend confirmation.
func (u *authUsecase) Login(ctx context.Context, email, password string) (Credentials, error) {
	creds, err := u.exchanger.Exchange(ctx, email, password)
	if err != nil {
		return Credentials{}, fmt.Errorf("credential exchange: %w", err)
	}
	if err := u.sessions.Activate(creds.Token); err != nil {
		return Credentials{}, fmt.Errorf("activate session: %w", err)
	}
	return creds, nil
}
