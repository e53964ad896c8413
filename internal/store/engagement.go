// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// engagement.go maintains the per-user vote, save, and usage ledgers and
// keeps the practice's denormalized counters equal to the ledger row counts.
// Every counter mutation here commits in the same transaction as its ledger
// write; the FOR UPDATE lock on the practice row serializes concurrent voters.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"practicehub/internal/models"
)

// EngagementStore handles the vote/save/usage ledgers for practices.
type EngagementStore struct {
	db *sql.DB
}

// NewEngagementStore returns a new EngagementStore.
func NewEngagementStore(db *sql.DB) *EngagementStore {
	return &EngagementStore{db: db}
}

// voteDeltas returns the (upvote_count, downvote_count) deltas for a vote
// transition. The nine (old,new) pairs are enumerated explicitly so the
// ledger/counter invariant stays mechanically checkable.
func voteDeltas(old, new int) (dUp, dDown int) {
	switch {
	case old == 0 && new == 0:
		return 0, 0
	case old == 0 && new == 1:
		return 1, 0
	case old == 0 && new == -1:
		return 0, 1
	case old == 1 && new == 0:
		return -1, 0
	case old == 1 && new == 1:
		return 0, 0
	case old == 1 && new == -1:
		return -1, 1
	case old == -1 && new == 0:
		return 0, -1
	case old == -1 && new == 1:
		return 1, -1
	case old == -1 && new == -1:
		return 0, 0
	}
	return 0, 0
}

// lockForEngagement locks the practice row and rejects mutations on
// archived practices. Missing practice maps to ErrNotFound.
func lockForEngagement(ctx context.Context, tx *sql.Tx, practiceID uuid.UUID) error {
	var status models.PracticeStatus
	err := tx.QueryRowContext(ctx,
		`SELECT status FROM practices WHERE id = $1 FOR UPDATE`, practiceID,
	).Scan(&status)
	if err == sql.ErrNoRows {
		return fmt.Errorf("practice %s: %w", practiceID, models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("lock practice: %w", err)
	}
	if status == models.StatusArchived {
		return fmt.Errorf("%w: practice is archived", models.ErrInvalidState)
	}
	return nil
}

// Vote records a user's vote (+1, -1, or 0 to clear) on a practice. The
// ledger upsert and the counter deltas commit atomically — the counters
// must never diverge from the ledger row counts, even under concurrent
// voters or an abandoned client request.
func (s *EngagementStore) Vote(ctx context.Context, practiceID, userID uuid.UUID, value int) (*models.VoteCounts, error) {
	if value < -1 || value > 1 {
		return nil, fmt.Errorf("%w: vote must be -1, 0, or 1", models.ErrValidation)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := lockForEngagement(ctx, tx, practiceID); err != nil {
		return nil, err
	}

	// Read the existing ledger row; absent row means old value 0.
	var old int
	err = tx.QueryRowContext(ctx, `
		SELECT value FROM practice_votes WHERE practice_id = $1 AND user_id = $2
	`, practiceID, userID).Scan(&old)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("read vote: %w", err)
	}

	if value == 0 {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM practice_votes WHERE practice_id = $1 AND user_id = $2
		`, practiceID, userID); err != nil {
			return nil, fmt.Errorf("delete vote: %w", err)
		}
	} else {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO practice_votes (practice_id, user_id, value)
			VALUES ($1, $2, $3)
			ON CONFLICT (practice_id, user_id)
			DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
		`, practiceID, userID, value); err != nil {
			return nil, fmt.Errorf("upsert vote: %w", err)
		}
	}

	dUp, dDown := voteDeltas(old, value)
	var counts models.VoteCounts
	err = tx.QueryRowContext(ctx, `
		UPDATE practices
		SET upvote_count = upvote_count + $2,
		    downvote_count = downvote_count + $3
		WHERE id = $1
		RETURNING upvote_count, downvote_count
	`, practiceID, dUp, dDown).Scan(&counts.UpvoteCount, &counts.DownvoteCount)
	if err != nil {
		return nil, fmt.Errorf("apply vote deltas: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit vote: %w", err)
	}
	return &counts, nil
}

// Save bookmarks a practice for a user. Saving an already-saved practice is
// a no-op success — the UI treats save as a toggle and must not error.
func (s *EngagementStore) Save(ctx context.Context, practiceID, userID uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := lockForEngagement(ctx, tx, practiceID); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO practice_saves (practice_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (practice_id, user_id) DO NOTHING
	`, practiceID, userID)
	if err != nil {
		return fmt.Errorf("insert save: %w", err)
	}

	// Counter moves only when the ledger actually changed.
	if n, _ := res.RowsAffected(); n == 1 {
		if _, err := tx.ExecContext(ctx, `
			UPDATE practices SET save_count = save_count + 1 WHERE id = $1
		`, practiceID); err != nil {
			return fmt.Errorf("increment save_count: %w", err)
		}
	}
	return tx.Commit()
}

// Unsave removes a bookmark. Unsaving a not-saved practice is a no-op success.
func (s *EngagementStore) Unsave(ctx context.Context, practiceID, userID uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := lockForEngagement(ctx, tx, practiceID); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `
		DELETE FROM practice_saves WHERE practice_id = $1 AND user_id = $2
	`, practiceID, userID)
	if err != nil {
		return fmt.Errorf("delete save: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 1 {
		if _, err := tx.ExecContext(ctx, `
			UPDATE practices SET save_count = save_count - 1 WHERE id = $1
		`, practiceID); err != nil {
			return fmt.Errorf("decrement save_count: %w", err)
		}
	}
	return tx.Commit()
}

// UsageInput carries the optional fields of a usage record.
type UsageInput struct {
	CustomerID *uuid.UUID           `json:"customer_id"`
	Outcome    *models.UsageOutcome `json:"outcome"`
	Notes      *string              `json:"notes"`
}

// RecordUsage appends a usage row and bumps use_count in the same
// transaction. use_count is monotonically non-decreasing.
func (s *EngagementStore) RecordUsage(ctx context.Context, practiceID, userID uuid.UUID, in UsageInput) (*models.UsageRecord, error) {
	if in.Outcome != nil && !models.ValidOutcome(*in.Outcome) {
		return nil, fmt.Errorf("%w: unknown outcome %q", models.ErrValidation, *in.Outcome)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := lockForEngagement(ctx, tx, practiceID); err != nil {
		return nil, err
	}

	rec := &models.UsageRecord{PracticeID: practiceID, UserID: userID}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO practice_usages (practice_id, user_id, customer_id, outcome, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, customer_id, outcome, notes, created_at
	`, practiceID, userID, in.CustomerID, in.Outcome, in.Notes,
	).Scan(&rec.ID, &rec.CustomerID, &rec.Outcome, &rec.Notes, &rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert usage: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE practices SET use_count = use_count + 1 WHERE id = $1
	`, practiceID); err != nil {
		return nil, fmt.Errorf("increment use_count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit usage: %w", err)
	}
	return rec, nil
}

// UserVote returns the viewer's current vote value, 0 if none.
func (s *EngagementStore) UserVote(ctx context.Context, practiceID, userID uuid.UUID) (int, error) {
	var value int
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM practice_votes WHERE practice_id = $1 AND user_id = $2
	`, practiceID, userID).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("user vote: %w", err)
	}
	return value, nil
}

// IsSaved reports whether the viewer bookmarked the practice.
func (s *EngagementStore) IsSaved(ctx context.Context, practiceID, userID uuid.UUID) (bool, error) {
	var saved bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM practice_saves WHERE practice_id = $1 AND user_id = $2
		)
	`, practiceID, userID).Scan(&saved)
	if err != nil {
		return false, fmt.Errorf("is saved: %w", err)
	}
	return saved, nil
}
