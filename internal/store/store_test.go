// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"practicehub/internal/database"
	"practicehub/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "practicehub")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "practicehub")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testUser inserts a user with a unique email and registers cleanup.
// Practices must be cleaned before their authors (votes and comments
// cascade from the practice).
func testUser(t *testing.T, db *sql.DB, role models.Role) *models.User {
	t.Helper()

	email := "test-" + uuid.NewString()[:8] + "@practicehub.test"
	u, err := NewUserStore(db).Create(context.Background(), email, "changeme", "Test User", role)
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = $1", u.ID) })
	return u
}

// testPractice creates a draft practice with a unique title and registers cleanup.
func testPractice(t *testing.T, db *sql.DB, authorID uuid.UUID) *models.Practice {
	t.Helper()

	title := "Test Practice " + uuid.NewString()[:8]
	p, err := NewPracticeStore(db).Create(context.Background(), authorID, PracticeInput{
		Title:            title,
		ProblemStatement: "Customers stall during onboarding.",
		Solution:         "Assign a named onboarding owner in the first call.",
		Category:         models.CategoryOnboarding,
		Tags:             models.StringList{"onboarding", "kickoff"},
	})
	if err != nil {
		t.Fatalf("create test practice: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM practices WHERE id = $1", p.ID) })
	return p
}

// publishPractice force-moves a practice to published, bypassing the
// review workflow, for tests that need published fixtures.
func publishPractice(t *testing.T, db *sql.DB, id uuid.UUID) {
	t.Helper()
	_, err := db.Exec(
		"UPDATE practices SET status = 'published', published_at = NOW() WHERE id = $1", id)
	if err != nil {
		t.Fatalf("publish test practice: %v", err)
	}
}
