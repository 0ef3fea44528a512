package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesSchema(t *testing.T) {
	m, err := Open("file:dbtest_schema?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	db, err := m.DB()
	require.NoError(t, err)

	for _, table := range []string{"User", "Post"} {
		exists, err := tableExists(db, table)
		require.NoError(t, err)
		assert.True(t, exists, "table %s should exist", table)
	}
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	m, err := Open("file:dbtest_idem?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	db, err := m.DB()
	require.NoError(t, err)

	// Running setup again must not fail or recreate anything.
	require.NoError(t, ensureSchema(db))

	_, err = db.Exec(`INSERT INTO User (Username, HashedPassword, Salt, FirstName, LastName, IsVIP) VALUES ('a', 'h', 's', 'f', 'l', 0)`)
	require.NoError(t, err)
	require.NoError(t, ensureSchema(db))

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM User`))
	assert.Equal(t, 1, n, "existing rows must survive a schema re-run")
}

func TestCloseIsIdempotent(t *testing.T) {
	m, err := Open("file:dbtest_close?mode=memory&cache=shared")
	require.NoError(t, err)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
}

func TestReviveAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "revive.db")
	m, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	_, err = m.Exec(`INSERT INTO User (Username, HashedPassword, Salt, FirstName, LastName, IsVIP) VALUES ('a', 'h', 's', 'f', 'l', 0)`)
	require.NoError(t, err)

	require.NoError(t, m.Close())

	// The next access reconnects transparently and sees the old data.
	rows, err := m.Query(`SELECT Username FROM User`)
	require.NoError(t, err)
	defer rows.Close()

	require.True(t, rows.Next())
	var username string
	require.NoError(t, rows.Scan(&username))
	assert.Equal(t, "a", username)
	require.NoError(t, rows.Err())
}

func TestForeignKeysEnforced(t *testing.T) {
	m, err := Open("file:dbtest_fk?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })

	_, err = m.Exec(`INSERT INTO Post (Content, Author, Likes, Shares, DateTime, UserID) VALUES ('x', 'ghost', 0, 0, '2023-10-05T14:30:00', 999)`)
	assert.Error(t, err, "insert referencing a missing user should fail")
}
