package adapters

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wealthwise_gateway/internal/feature/session/domain/entity"
	"wealthwise_gateway/internal/feature/session/usecase"
)

func testFile(t *testing.T) *SessionFile {
	t.Helper()
	return NewSessionFile(filepath.Join(t.TempDir(), "session.json"))
}

func TestSessionFile_SaveAndLoad(t *testing.T) {
	t.Parallel()

	f := testFile(t)
	issued := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, f.Save(entity.Session{Token: "tok-1", IssuedAt: issued}))

	got, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got.Token)
	assert.True(t, got.IssuedAt.Equal(issued), "issue time survives the millisecond round trip")
}

func TestSessionFile_LoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := testFile(t).Load()
	assert.ErrorIs(t, err, usecase.ErrNoSession)
}

func TestSessionFile_CorruptContentTreatedAsNoSession(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "{{{"},
		{name: "empty token", content: `{"token":"","loginTime":123}`},
		{name: "missing login time", content: `{"token":"tok-1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "session.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			f := NewSessionFile(path)
			_, err := f.Load()

			assert.ErrorIs(t, err, usecase.ErrNoSession)
			_, statErr := os.Stat(path)
			assert.True(t, os.IsNotExist(statErr), "malformed file is removed")
		})
	}
}

func TestSessionFile_Clear(t *testing.T) {
	t.Parallel()

	f := testFile(t)
	require.NoError(t, f.Save(entity.Session{Token: "tok-1", IssuedAt: time.Now()}))

	require.NoError(t, f.Clear())
	_, err := f.Load()
	assert.ErrorIs(t, err, usecase.ErrNoSession)

	assert.NoError(t, f.Clear(), "clearing an absent record is a no-op")
}

func TestSessionFile_SaveCreatesParentDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "session.json")
	f := NewSessionFile(path)

	require.NoError(t, f.Save(entity.Session{Token: "tok-1", IssuedAt: time.Now()}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}
