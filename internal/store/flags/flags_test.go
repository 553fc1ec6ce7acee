package flags

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "flags.json"))
	require.NoError(t, err)
	return s
}

func TestSetAndGet(t *testing.T) {
	s := newTestStore(t)

	want := Flags{
		AuthToken:      "abc.def.ghi",
		UserType:       "user",
		UserID:         "u1",
		UserPlanStatus: "ativo",
		Authenticated:  true,
		UserData:       json.RawMessage(`{"uu_id":"u1"}`),
	}
	require.NoError(t, s.Set(want))
	assert.Equal(t, want, s.Get())
}

func TestSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.json")

	s, err := New(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(Flags{AuthToken: "tok", UserID: "u1", Authenticated: true}))

	reopened, err := New(path)
	require.NoError(t, err)
	got := reopened.Get()
	assert.Equal(t, "tok", got.AuthToken)
	assert.Equal(t, "u1", got.UserID)
	assert.True(t, got.Authenticated)
}

func TestClearKeepsDeviceID(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Set(Flags{AuthToken: "tok", UserID: "u1", DeviceID: "dev-1"}))
	require.NoError(t, s.Clear())

	got := s.Get()
	assert.Empty(t, got.AuthToken)
	assert.Empty(t, got.UserID)
	assert.False(t, got.Authenticated)
	assert.Equal(t, "dev-1", got.DeviceID)
}

func TestCorruptFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := New(path)
	require.NoError(t, err)
	assert.Equal(t, Flags{}, s.Get())
}

func TestNewMissingFile(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "does-not-exist.json"))
	require.NoError(t, err)
	assert.Equal(t, Flags{}, s.Get())
}
