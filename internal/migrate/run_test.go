package migrate

import (
	"context"
	"database/sql"
	"net"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersions(t *testing.T) {
	versions, err := Versions()
	require.NoError(t, err)
	require.NotEmpty(t, versions)
	assert.Equal(t, "0001_auth_audit", versions[0])
	assert.IsIncreasing(t, versions)
}

// testDB opens the integration database directly; testutil imports this
// package so it cannot be used here.
func testDB(t *testing.T) *sql.DB {
	t.Helper()
	env := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	dsn := "postgres://" + env("TEST_DB_USER", "penuel") + ":" + env("TEST_DB_PASSWORD", "penuel") + "@" +
		net.JoinHostPort(env("TEST_DB_HOST", "localhost"), env("TEST_DB_PORT", "55432")) + "/" +
		env("TEST_DB_NAME", "penuel") + "?sslmode=disable"
	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if pingErr := db.PingContext(ctx); pingErr != nil {
		t.Skip("Test database not available:", pingErr)
	}
	return db
}

func TestRun_Idempotent(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	_, err := Run(ctx, db)
	require.NoError(t, err)

	applied, err := Run(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, applied)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT count(*) FROM schema_migrations WHERE version = '0001_auth_audit'`).Scan(&n))
	assert.Equal(t, 1, n)
}
