package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, key []byte) *SQLiteStore {
	store, err := NewSQLiteStore(":memory:", key)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_GetMissingKey(t *testing.T) {
	store := newTestStore(t, nil)

	value, err := store.Get("missing")
	assert.NoError(t, err)
	assert.Nil(t, value)
}

func TestSQLiteStore_SetOverwritesAndDeletes(t *testing.T) {
	store := newTestStore(t, nil)

	require.NoError(t, store.Set("theme", []byte(`"light"`)))
	require.NoError(t, store.Set("theme", []byte(`"dark"`)))

	value, err := store.Get("theme")
	require.NoError(t, err)
	assert.Equal(t, `"dark"`, string(value))

	require.NoError(t, store.Delete("theme"))
	value, err = store.Get("theme")
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestSQLiteStore_EncryptedValues(t *testing.T) {
	key, err := DeriveKey("correct horse battery staple")
	require.NoError(t, err)
	store := newTestStore(t, key)

	require.NoError(t, store.Set("recentItems", []byte(`[{"item_name":"Nike Air Max"}]`)))

	var stored string
	require.NoError(t, store.db.QueryRow("SELECT value FROM local_state WHERE key = ?", "recentItems").Scan(&stored))
	assert.NotContains(t, stored, "Nike")

	value, err := store.Get("recentItems")
	require.NoError(t, err)
	assert.Equal(t, `[{"item_name":"Nike Air Max"}]`, string(value))
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "state.db")

	store, err := NewSQLiteStore(dbPath, nil)
	require.NoError(t, err)
	require.NoError(t, store.Set("theme", []byte(`"dark"`)))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(dbPath, nil)
	require.NoError(t, err)
	defer reopened.Close()

	value, err := reopened.Get("theme")
	require.NoError(t, err)
	assert.Equal(t, `"dark"`, string(value))
}

func TestEncryptDecrypt_WrongKeyFails(t *testing.T) {
	key, _ := DeriveKey("one")
	other, _ := DeriveKey("two")

	sealed, err := Encrypt([]byte("secret"), key)
	require.NoError(t, err)

	_, err = Decrypt(sealed, other)
	assert.Error(t, err)

	plain, err := Decrypt(sealed, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("secret"), plain)
}

func TestDeriveKey_RejectsEmptyPassphrase(t *testing.T) {
	_, err := DeriveKey("")
	assert.Error(t, err)

	key, err := DeriveKey("passphrase")
	require.NoError(t, err)
	assert.Len(t, key, 32)
}

// failingStore simulates storage that is present but broken (quota, disabled).
type failingStore struct{}

func (failingStore) Get(string) ([]byte, error) { return nil, errors.New("storage disabled") }
func (failingStore) Set(string, []byte) error   { return errors.New("quota exceeded") }
func (failingStore) Delete(string) error        { return errors.New("storage disabled") }
func (failingStore) Close() error               { return nil }
