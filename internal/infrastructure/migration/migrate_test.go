package migration

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

func startPostgres(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("workify_migrate_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start postgres container")
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.PingContext(ctx))
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var exists bool
	err := db.QueryRow(`SELECT EXISTS (
		SELECT 1 FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name = $1)`, name).Scan(&exists)
	require.NoError(t, err)
	return exists
}

func referencedTable(t *testing.T, db *sql.DB, table, column string) string {
	t.Helper()
	var target string
	err := db.QueryRow(`SELECT ccu.table_name
		FROM information_schema.key_column_usage kcu
		JOIN information_schema.referential_constraints rc ON rc.constraint_name = kcu.constraint_name
		JOIN information_schema.constraint_column_usage ccu ON ccu.constraint_name = rc.unique_constraint_name
		WHERE kcu.table_name = $1 AND kcu.column_name = $2`, table, column).Scan(&target)
	require.NoError(t, err)
	return target
}

func TestMigrator_UpDown(t *testing.T) {
	db := startPostgres(t)

	m, err := New(db, zap.NewNop())
	require.NoError(t, err)

	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Zero(t, version)
	assert.False(t, dirty)

	require.NoError(t, m.Up())
	require.NoError(t, m.Up(), "a second run is a no-op")

	version, dirty, err = m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
	for _, table := range []string{"users", "clients", "contracts", "sales_invoices", "employee_rates", "project_budget_assignments", "audit_entries"} {
		assert.True(t, tableExists(t, db, table), table)
	}
	assert.Equal(t, "employees", referencedTable(t, db, "contracts", "owner_id"))

	require.NoError(t, m.Down())
	assert.False(t, tableExists(t, db, "clients"))

	require.NoError(t, m.Steps(1))
	assert.True(t, tableExists(t, db, "clients"))

	require.NoError(t, m.Force(1))
	require.NoError(t, m.GoTo(1))
}
