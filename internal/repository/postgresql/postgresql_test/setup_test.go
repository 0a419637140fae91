package postgresql_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cmlabs-hris/hris-selfservice-api/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

const migrationsDir = "../../../../migrations"

// TestDatabaseSetup holds a connection to the integration database
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the service
// migrations. Tests are skipped when the variable is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(db.Close)

	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	require.NoError(t, err)
	for _, f := range files {
		sql, err := os.ReadFile(f)
		require.NoError(t, err)
		_, err = db.Exec(ctx, string(sql))
		require.NoError(t, err, "failed to apply %s", filepath.Base(f))
	}

	setup := &TestDatabaseSetup{DB: db}
	setup.TruncateTables(t, "form_submissions")
	return setup
}

// TruncateTables empties the given tables
func (s *TestDatabaseSetup) TruncateTables(t *testing.T, tables ...string) {
	t.Helper()
	for _, table := range tables {
		_, err := s.DB.Exec(context.Background(), "TRUNCATE TABLE "+table+" CASCADE")
		require.NoError(t, err, "failed to truncate table %s", table)
	}
}
