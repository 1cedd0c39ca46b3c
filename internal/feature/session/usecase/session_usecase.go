package usecase

import (
	"log/slog"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"wealthwise_gateway/internal/feature/session/domain/entity"
)

const (
	// DefaultDuration is the fixed session window.
	DefaultDuration = 4 * time.Hour
	// DefaultWarningLead is how long before expiry the Expiring state begins.
	DefaultWarningLead = time.Minute
)

// SessionStore persists the session record locally.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SessionStore interface {
	// Save persists the record.
	Save(s entity.Session) error
	// Load retrieves the stored record. It returns ErrNoSession when no
	// record exists or the stored content is malformed.
	Load() (entity.Session, error)
	// Clear removes any stored record. Clearing an absent record is a no-op.
	Clear() error
}

// Manager drives the session lifecycle state machine. All mutations happen
// under one lock; the warning and expiry timers are stopped and restarted
// atomically on every transition so at most one of each is ever pending.
type Manager struct {
	store   SessionStore
	window  time.Duration
	warning time.Duration
	now     func() time.Time

	mu        sync.Mutex
	state     entity.State
	session   entity.Session
	effective time.Duration // window, clamped to the token's own expiry
	warnTimer *time.Timer
	expTimer  *time.Timer
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock injects the time source. Tests use this to walk the clock.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithWindow overrides the fixed session duration.
func WithWindow(d time.Duration) Option {
	return func(m *Manager) { m.window = d }
}

// WithWarningLead overrides the warning lead time.
func WithWarningLead(d time.Duration) Option {
	return func(m *Manager) { m.warning = d }
}

// NewManager creates a Manager in the Unauthenticated state.
func NewManager(store SessionStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		window:  DefaultDuration,
		warning: DefaultWarningLead,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Restore loads the persisted record on startup. An already-elapsed window
// clears all state instead of re-entering Active with negative remaining
// time; a malformed record counts as no session.
func (m *Manager) Restore() entity.State {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, err := m.store.Load()
	if err != nil {
		if err != ErrNoSession {
			slog.Warn("session restore failed", "error", err)
		}
		m.clearLocked()
		return entity.StateUnauthenticated
	}

	effective := m.effectiveWindow(rec)
	if rec.Expired(effective, m.now()) {
		slog.Info("stored session already expired, clearing")
		m.clearLocked()
		return entity.StateUnauthenticated
	}

	m.session = rec
	m.effective = effective
	m.state = rec.StateAt(effective, m.warning, m.now())
	m.armTimersLocked()
	return m.state
}

// Activate records a fresh credential, persists it and starts the countdown.
func (m *Manager) Activate(token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec := entity.Session{Token: token, IssuedAt: m.now()}
	effective := m.effectiveWindow(rec)
	if effective <= 0 {
		return ErrTokenExpired
	}

	if err := m.store.Save(rec); err != nil {
		slog.Warn("session persist failed", "error", err)
	}

	m.session = rec
	m.effective = effective
	m.state = entity.StateActive
	m.armTimersLocked()
	return nil
}

// Extend resets the issue timestamp to now and restarts the countdown at the
// full duration. Only a live session (Active or Expiring) can be extended.
func (m *Manager) Extend() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.syncLocked() == entity.StateUnauthenticated {
		return ErrNoSession
	}

	m.session.IssuedAt = m.now()
	m.effective = m.effectiveWindow(m.session)
	if m.effective <= 0 {
		m.clearLocked()
		return ErrTokenExpired
	}

	if err := m.store.Save(m.session); err != nil {
		slog.Warn("session persist failed", "error", err)
	}
	m.state = entity.StateActive
	m.armTimersLocked()
	return nil
}

// Deactivate clears all session state. Safe to call in any state.
func (m *Manager) Deactivate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked()
}

// State returns the current lifecycle state, re-deriving it from the clock
// so an elapsed window is observed even between timer fires.
func (m *Manager) State() entity.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.syncLocked()
}

// Remaining returns the time left in the window, or zero when no session.
func (m *Manager) Remaining() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.syncLocked() == entity.StateUnauthenticated {
		return 0
	}
	return m.session.Remaining(m.effective, m.now())
}

// Token returns the held credential and whether a live session exists.
// Expiring still counts: the credential stays valid through the warning
// window.
func (m *Manager) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.syncLocked() == entity.StateUnauthenticated {
		return "", false
	}
	return m.session.Token, true
}

// Close stops the pending timers.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopTimersLocked()
}

// syncLocked reconciles the stored state with the clock, clearing an elapsed
// session as a side effect.
func (m *Manager) syncLocked() entity.State {
	if m.state == entity.StateUnauthenticated {
		return m.state
	}
	s := m.session.StateAt(m.effective, m.warning, m.now())
	if s == entity.StateUnauthenticated {
		slog.Info("session expired")
		m.clearLocked()
		return entity.StateUnauthenticated
	}
	m.state = s
	return s
}

func (m *Manager) clearLocked() {
	m.stopTimersLocked()
	m.session = entity.Session{}
	m.effective = 0
	m.state = entity.StateUnauthenticated
	if m.store != nil {
		if err := m.store.Clear(); err != nil {
			slog.Warn("session clear failed", "error", err)
		}
	}
}

func (m *Manager) stopTimersLocked() {
	if m.warnTimer != nil {
		m.warnTimer.Stop()
		m.warnTimer = nil
	}
	if m.expTimer != nil {
		m.expTimer.Stop()
		m.expTimer = nil
	}
}

// armTimersLocked replaces both timers for the current session. The expiry
// timer also covers the warning prompt timing out: the prompt window and the
// remainder of the session end at the same instant.
func (m *Manager) armTimersLocked() {
	m.stopTimersLocked()

	remaining := m.session.Remaining(m.effective, m.now())
	if lead := remaining - m.warning; lead > 0 {
		m.warnTimer = time.AfterFunc(lead, func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if m.state == entity.StateActive {
				slog.Info("session entering warning window")
				m.state = entity.StateExpiring
			}
		})
	}
	m.expTimer = time.AfterFunc(remaining, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.syncLocked()
	})
}

// effectiveWindow clamps the fixed window to the credential's own expiry when
// the token is a JWT carrying an exp claim. A client countdown has no
// business outliving the credential itself.
func (m *Manager) effectiveWindow(rec entity.Session) time.Duration {
	window := m.window
	exp, ok := tokenExpiry(rec.Token)
	if !ok {
		return window
	}
	if ttl := exp.Sub(rec.IssuedAt); ttl < window {
		return ttl
	}
	return window
}

// tokenExpiry extracts the exp claim from a JWT without verifying the
// signature. The gateway cannot verify it (the signing secret belongs to the
// backend); the claim is used only to bound the local countdown.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
