// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides the persistence layer over PostgreSQL. Each store
// is a plain struct around *sql.DB; multi-statement mutations that touch a
// ledger and its denormalized counter run inside a single transaction.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"practicehub/internal/models"
)

// PracticeStore handles practice CRUD and lifecycle transitions.
type PracticeStore struct {
	db *sql.DB
}

// NewPracticeStore creates a new PracticeStore with the given database connection.
func NewPracticeStore(db *sql.DB) *PracticeStore {
	return &PracticeStore{db: db}
}

const practiceColumns = `id, author_id, title, problem_statement, solution,
	expected_outcomes, variations, pitfalls, category, tags, industries,
	customer_ids, attachments, status, is_featured, view_count, upvote_count,
	downvote_count, save_count, use_count, comment_count, published_at,
	created_at, updated_at`

// scanPractice scans a row into a Practice struct.
func scanPractice(scanner interface{ Scan(...any) error }) (*models.Practice, error) {
	var p models.Practice
	err := scanner.Scan(
		&p.ID, &p.AuthorID, &p.Title, &p.ProblemStatement, &p.Solution,
		&p.ExpectedOutcomes, &p.Variations, &p.Pitfalls, &p.Category,
		&p.Tags, &p.Industries, &p.CustomerIDs, &p.Attachments,
		&p.Status, &p.IsFeatured, &p.ViewCount, &p.UpvoteCount,
		&p.DownvoteCount, &p.SaveCount, &p.UseCount, &p.CommentCount,
		&p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// PracticeInput carries the author-editable content fields of a practice.
type PracticeInput struct {
	Title            string                `json:"title"`
	ProblemStatement string                `json:"problem_statement"`
	Solution         string                `json:"solution"`
	ExpectedOutcomes *string               `json:"expected_outcomes"`
	Variations       *string               `json:"variations"`
	Pitfalls         *string               `json:"pitfalls"`
	Category         models.Category       `json:"category"`
	Tags             models.StringList     `json:"tags"`
	Industries       models.StringList     `json:"industries"`
	CustomerIDs      models.UUIDList       `json:"customer_ids"`
	Attachments      models.AttachmentList `json:"attachments"`
}

// validate checks required fields and the category enum.
func (in *PracticeInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", models.ErrValidation)
	}
	if strings.TrimSpace(in.ProblemStatement) == "" {
		return fmt.Errorf("%w: problem_statement is required", models.ErrValidation)
	}
	if strings.TrimSpace(in.Solution) == "" {
		return fmt.Errorf("%w: solution is required", models.ErrValidation)
	}
	if in.Category == "" {
		in.Category = models.CategoryGeneral
	}
	if !models.ValidCategory(in.Category) {
		return fmt.Errorf("%w: unknown category %q", models.ErrValidation, in.Category)
	}
	return nil
}

// Create inserts a new practice in draft status with all counters at zero.
func (s *PracticeStore) Create(ctx context.Context, authorID uuid.UUID, in PracticeInput) (*models.Practice, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO practices (author_id, title, problem_statement, solution,
		                       expected_outcomes, variations, pitfalls, category,
		                       tags, industries, customer_ids, attachments)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+practiceColumns,
		authorID, in.Title, in.ProblemStatement, in.Solution,
		in.ExpectedOutcomes, in.Variations, in.Pitfalls, in.Category,
		in.Tags, in.Industries, in.CustomerIDs, in.Attachments,
	)
	p, err := scanPractice(row)
	if err != nil {
		return nil, fmt.Errorf("create practice: %w", err)
	}
	return p, nil
}

// FindByID retrieves a practice by its UUID.
func (s *PracticeStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Practice, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+practiceColumns+` FROM practices WHERE id = $1`, id)
	p, err := scanPractice(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("practice %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find practice by id: %w", err)
	}
	return p, nil
}

// FindForViewer retrieves a practice hydrated with the viewer's vote and
// save state. These per-viewer fields are computed per request and never
// persisted on the practice record.
func (s *PracticeStore) FindForViewer(ctx context.Context, id, viewerID uuid.UUID) (*models.Practice, error) {
	p, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var vote sql.NullInt64
	var saved bool
	err = s.db.QueryRowContext(ctx, `
		SELECT pv.value, ps.practice_id IS NOT NULL
		FROM practices p
		LEFT JOIN practice_votes pv ON pv.practice_id = p.id AND pv.user_id = $2
		LEFT JOIN practice_saves ps ON ps.practice_id = p.id AND ps.user_id = $2
		WHERE p.id = $1
	`, id, viewerID).Scan(&vote, &saved)
	if err != nil {
		return nil, fmt.Errorf("hydrate practice for viewer: %w", err)
	}

	if vote.Valid {
		v := int(vote.Int64)
		p.UserVote = &v
	}
	p.IsSaved = saved
	return p, nil
}

// IncrementView bumps view_count by exactly one. Called on detail opens
// only, never on list renders; archived practices still accept view bumps.
func (s *PracticeStore) IncrementView(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE practices SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment view: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("practice %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// lockStatus reads a practice's status and author inside a transaction,
// taking a row lock so concurrent transitions serialize.
func lockStatus(ctx context.Context, tx *sql.Tx, id uuid.UUID) (models.PracticeStatus, uuid.UUID, error) {
	var status models.PracticeStatus
	var authorID uuid.UUID
	err := tx.QueryRowContext(ctx,
		`SELECT status, author_id FROM practices WHERE id = $1 FOR UPDATE`, id,
	).Scan(&status, &authorID)
	if err == sql.ErrNoRows {
		return "", uuid.Nil, fmt.Errorf("practice %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return "", uuid.Nil, fmt.Errorf("lock practice: %w", err)
	}
	return status, authorID, nil
}

// SubmitForReview transitions a draft to pending_review. Only the author
// may submit, and only from draft.
func (s *PracticeStore) SubmitForReview(ctx context.Context, id, actorID uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	status, authorID, err := lockStatus(ctx, tx, id)
	if err != nil {
		return err
	}
	if actorID != authorID {
		return fmt.Errorf("%w: only the author may submit for review", models.ErrPermission)
	}
	if status != models.StatusDraft {
		return fmt.Errorf("%w: cannot submit from %s", models.ErrInvalidState, status)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE practices SET status = 'pending_review', updated_at = NOW() WHERE id = $1
	`, id); err != nil {
		return fmt.Errorf("submit for review: %w", err)
	}
	return tx.Commit()
}

// Publish transitions pending_review to published, stamping published_at
// once. Publishing an already-published practice is a no-op — reviewer UI
// actions may race and must not error.
func (s *PracticeStore) Publish(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	status, _, err := lockStatus(ctx, tx, id)
	if err != nil {
		return err
	}
	switch status {
	case models.StatusPublished:
		return tx.Commit() // idempotent no-op
	case models.StatusPendingReview:
		// fall through to the update
	default:
		return fmt.Errorf("%w: cannot publish from %s", models.ErrInvalidState, status)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE practices
		SET status = 'published',
		    published_at = COALESCE(published_at, NOW()),
		    updated_at = NOW()
		WHERE id = $1
	`, id); err != nil {
		return fmt.Errorf("publish practice: %w", err)
	}
	return tx.Commit()
}

// Reject returns a pending_review practice to draft so the author can revise.
func (s *PracticeStore) Reject(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	status, _, err := lockStatus(ctx, tx, id)
	if err != nil {
		return err
	}
	if status != models.StatusPendingReview {
		return fmt.Errorf("%w: cannot reject from %s", models.ErrInvalidState, status)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE practices SET status = 'draft', updated_at = NOW() WHERE id = $1
	`, id); err != nil {
		return fmt.Errorf("reject practice: %w", err)
	}
	return tx.Commit()
}

// Archive moves a practice to its terminal archived status from any other
// status. The permission check (author or reviewer) lives in the handler.
func (s *PracticeStore) Archive(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	status, _, err := lockStatus(ctx, tx, id)
	if err != nil {
		return err
	}
	if status == models.StatusArchived {
		return fmt.Errorf("%w: practice is already archived", models.ErrInvalidState)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE practices SET status = 'archived', updated_at = NOW() WHERE id = $1
	`, id); err != nil {
		return fmt.Errorf("archive practice: %w", err)
	}
	return tx.Commit()
}

// SetFeatured toggles the featured flag, independent of lifecycle status.
// Restricted to reviewers/admins at the handler layer.
func (s *PracticeStore) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE practices SET is_featured = $2, updated_at = NOW() WHERE id = $1
	`, id, featured)
	if err != nil {
		return fmt.Errorf("set featured: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("practice %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// UpdateContent replaces the content fields of a draft. Once a practice is
// submitted its content is immutable — reviewers must never review stale text.
func (s *PracticeStore) UpdateContent(ctx context.Context, id, actorID uuid.UUID, in PracticeInput) (*models.Practice, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	status, authorID, err := lockStatus(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if actorID != authorID {
		return nil, fmt.Errorf("%w: only the author may edit", models.ErrPermission)
	}
	if status != models.StatusDraft {
		return nil, fmt.Errorf("%w: content is immutable once submitted", models.ErrInvalidState)
	}

	row := tx.QueryRowContext(ctx, `
		UPDATE practices SET
			title = $2, problem_statement = $3, solution = $4,
			expected_outcomes = $5, variations = $6, pitfalls = $7,
			category = $8, tags = $9, industries = $10, customer_ids = $11,
			attachments = $12, updated_at = NOW()
		WHERE id = $1
		RETURNING `+practiceColumns,
		id, in.Title, in.ProblemStatement, in.Solution,
		in.ExpectedOutcomes, in.Variations, in.Pitfalls, in.Category,
		in.Tags, in.Industries, in.CustomerIDs, in.Attachments,
	)
	p, err := scanPractice(row)
	if err != nil {
		return nil, fmt.Errorf("update practice content: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}
	return p, nil
}
