package database_test

import (
	"context"
	"testing"

	"github.com/meghana367/bookstoreapp/util/database"

	"github.com/stretchr/testify/require"
)

func TestSeedAdmin_Once(t *testing.T) {
	ctx := context.Background()
	db, err := database.New(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.SeedAdmin(ctx, db, "library", "1234"))
	// Re-running startup must not duplicate or overwrite the admin row.
	require.NoError(t, database.SeedAdmin(ctx, db, "library", "changed"))

	var n int64
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE username = 'library'`).Scan(&n))
	require.Equal(t, int64(1), n)

	var role, password string
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT role, password FROM users WHERE username = 'library'`).Scan(&role, &password))
	require.Equal(t, "admin", role)
	require.Equal(t, "1234", password)
}

func TestNegativeCopiesRejectedBySchema(t *testing.T) {
	ctx := context.Background()
	db, err := database.New(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.ExecContext(ctx,
		`INSERT INTO books (name, author, copies) VALUES ('x', 'y', -1)`)
	require.Error(t, err)
}
