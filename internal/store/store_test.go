package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vbonduro/foodventory/internal/db"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func createTestUser(t *testing.T, d *sql.DB, username string) string {
	t.Helper()
	user, err := NewUserStore(d).Create(context.Background(), username, "", "x")
	require.NoError(t, err)
	return user.ID
}
