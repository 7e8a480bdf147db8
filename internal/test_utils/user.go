package test_utils

import (
	"database/sql"
	"testing"
)

// InsertTestUser inserts a user row and returns its id. Repository tests
// need it because expenses, budgets, and recurring rules reference users.
func InsertTestUser(t *testing.T, db *sql.DB, username string) int {
	t.Helper()

	result, err := db.Exec(
		"INSERT INTO users (uid, username, display_name) VALUES (?, ?, ?)",
		"test-uid-"+username, username, "Test "+username,
	)
	if err != nil {
		t.Fatalf("Failed to insert test user: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to get test user id: %v", err)
	}
	return int(id)
}
