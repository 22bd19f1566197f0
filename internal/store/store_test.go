// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"

	"stockroom/internal/database"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "stockroom")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "stockroom")
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

	db, err := database.Connect(context.Background(), testDSN())
	if err != nil {
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// fixture is a category, sub-category and item inserted for one test.
type fixture struct {
	CategoryID    uuid.UUID
	SubcategoryID uuid.UUID
	ItemID        uuid.UUID
}

// insertFixture creates a small catalog tree with unique names and
// registers its removal with t.Cleanup.
func insertFixture(t *testing.T, db *sql.DB) fixture {
	t.Helper()

	var f fixture
	suffix := uuid.NewString()[:8]

	if err := db.QueryRow(
		"INSERT INTO categories (name) VALUES ($1) RETURNING id", "test-cat-"+suffix,
	).Scan(&f.CategoryID); err != nil {
		t.Fatalf("insert category: %v", err)
	}
	if err := db.QueryRow(
		"INSERT INTO categories (name, parent_id) VALUES ($1, $2) RETURNING id", "test-sub-"+suffix, f.CategoryID,
	).Scan(&f.SubcategoryID); err != nil {
		t.Fatalf("insert subcategory: %v", err)
	}
	if err := db.QueryRow(
		"INSERT INTO items (name, stock_count, search_text, subcategory_id) VALUES ($1, 5, 'gu10 led', $2) RETURNING id",
		"GU10 bulb "+suffix, f.SubcategoryID,
	).Scan(&f.ItemID); err != nil {
		t.Fatalf("insert item: %v", err)
	}

	t.Cleanup(func() {
		db.Exec("DELETE FROM stock_logs WHERE item_id = $1", f.ItemID)
		db.Exec("DELETE FROM items WHERE subcategory_id = $1", f.SubcategoryID)
		db.Exec("DELETE FROM categories WHERE id = $1", f.SubcategoryID)
		db.Exec("DELETE FROM categories WHERE id = $1", f.CategoryID)
	})
	return f
}
