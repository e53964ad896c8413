package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data.
// It creates a default admin, a reviewer, and a member account if no users
// exist yet, so every role in the review workflow can be exercised locally.
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// All dev accounts share the same default password.
	hash, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	seedUsers := []struct {
		email, name, role string
	}{
		{"admin@practicehub.local", "Admin", "admin"},
		{"reviewer@practicehub.local", "Reviewer", "reviewer"},
		{"member@practicehub.local", "Member", "member"},
	}

	for _, u := range seedUsers {
		_, err = db.Exec(`
			INSERT INTO users (email, password_hash, display_name, role)
			VALUES ($1, $2, $3, $4)
		`, u.email, string(hash), u.name, u.role)
		if err != nil {
			return fmt.Errorf("seed insert %s: %w", u.email, err)
		}
	}

	// A published sample practice so the browse endpoint returns something
	// on a fresh database.
	_, err = db.Exec(`
		INSERT INTO practices (author_id, title, problem_statement, solution,
		                       category, tags, status, published_at)
		SELECT id, $1, $2, $3, $4, $5, 'published', NOW()
		FROM users WHERE email = 'member@practicehub.local'
	`,
		"Quarterly business review checklist",
		"QBRs drift into status updates and customers disengage.",
		"Anchor every QBR on the customer's own success metrics and close with agreed next steps.",
		"communication",
		`["qbr","meetings"]`,
	)
	if err != nil {
		return fmt.Errorf("seed insert sample practice: %w", err)
	}

	slog.Info("database seeded with default users",
		"emails", "admin@/reviewer@/member@practicehub.local",
		"password", "changeme",
	)

	return nil
}
