// Package adapters provides persistence implementations for the session feature.
package adapters

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"wealthwise_gateway/internal/feature/session/domain/entity"
	"wealthwise_gateway/internal/feature/session/usecase"
)

// SessionFile implements usecase.SessionStore on a single JSON file, the
// local analog of the browser's stored session record.
type SessionFile struct {
	path string
}

var _ usecase.SessionStore = (*SessionFile)(nil)

// NewSessionFile creates a SessionFile at the given path.
func NewSessionFile(path string) *SessionFile {
	return &SessionFile{path: path}
}

// sessionRecord is the on-disk shape: the token plus the issue timestamp in
// Unix milliseconds, matching the record the browser variant stored.
type sessionRecord struct {
	Token     string `json:"token"`
	LoginTime int64  `json:"loginTime"`
}

// Save writes the record with owner-only permissions.
func (f *SessionFile) Save(s entity.Session) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(sessionRecord{
		Token:     s.Token,
		LoginTime: s.IssuedAt.UnixMilli(),
	})
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o600)
}

// Load reads the stored record. A missing file, unreadable content or an
// incomplete record all count as no session; malformed files are removed so
// they are not re-parsed on every start.
func (f *SessionFile) Load() (entity.Session, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return entity.Session{}, usecase.ErrNoSession
		}
		return entity.Session{}, err
	}

	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil || rec.Token == "" || rec.LoginTime <= 0 {
		_ = os.Remove(f.path)
		return entity.Session{}, usecase.ErrNoSession
	}

	return entity.Session{
		Token:    rec.Token,
		IssuedAt: time.UnixMilli(rec.LoginTime),
	}, nil
}

// Clear removes the stored record. A missing file is not an error.
func (f *SessionFile) Clear() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
