// Package testutil runs tests against a real Postgres named by TEST_DATABASE_URL.
package testutil

import (
	"context"
	"hotel/helper"
	"hotel/infras/postgres"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

const (
	EnvDatabaseURL = "TEST_DATABASE_URL"

	pingTimeout = 3 * time.Second
)

// tables in dependency order, children first
var tables = []string{"bookings", "guests", "rooms", "hotels"}

// Postgres returns a connection to an empty, fully migrated database. The test is skipped when
// TEST_DATABASE_URL is unset or the database does not answer.
func Postgres(t *testing.T) *postgres.Connection {
	t.Helper()

	databaseURL := os.Getenv(EnvDatabaseURL)
	if databaseURL == "" {
		t.Skipf("%s is not set", EnvDatabaseURL)
	}

	db, err := sqlx.Open("postgres", databaseURL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()

		t.Skipf("postgres is not reachable: %v", err)
	}

	migrator := helper.Migrator{DatabaseURL: databaseURL, Path: migrationsPath(t)}
	require.NoError(t, migrator.Run(helper.ActionUp))

	conn := postgres.FromDB(db)
	Truncate(t, conn)

	t.Cleanup(func() {
		_ = conn.Close()
	})

	return conn
}

// Truncate empties every table.
func Truncate(t *testing.T, conn *postgres.Connection) {
	t.Helper()

	for _, table := range tables {
		_, err := conn.Write.Exec("TRUNCATE TABLE " + table + " CASCADE")
		require.NoError(t, err)
	}
}

func migrationsPath(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)

	return filepath.Join(filepath.Dir(file), "..", "..", "migrations", "postgres")
}
