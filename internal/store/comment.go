// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"practicehub/internal/models"
)

// CommentStore handles the threaded Q&A attached to practices, including
// the comment upvote ledger. Comment votes are upvote-only.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore returns a new CommentStore.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

const commentColumns = `id, practice_id, author_id, parent_id, content,
	is_question, is_resolved, upvote_count, created_at`

func scanComment(scanner interface{ Scan(...any) error }) (*models.Comment, error) {
	var c models.Comment
	err := scanner.Scan(
		&c.ID, &c.PracticeID, &c.AuthorID, &c.ParentID, &c.Content,
		&c.IsQuestion, &c.IsResolved, &c.UpvoteCount, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Add creates a comment (or reply) and bumps the practice's comment_count
// in the same transaction. Replies count toward comment_count too.
func (s *CommentStore) Add(ctx context.Context, practiceID, authorID uuid.UUID, content string, isQuestion bool, parentID *uuid.UUID) (*models.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", models.ErrValidation)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := lockForEngagement(ctx, tx, practiceID); err != nil {
		return nil, err
	}

	// A reply must reference an existing comment on the same practice.
	if parentID != nil {
		var parentPractice uuid.UUID
		err := tx.QueryRowContext(ctx,
			`SELECT practice_id FROM practice_comments WHERE id = $1`, *parentID,
		).Scan(&parentPractice)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: parent comment does not exist", models.ErrValidation)
		}
		if err != nil {
			return nil, fmt.Errorf("check parent comment: %w", err)
		}
		if parentPractice != practiceID {
			return nil, fmt.Errorf("%w: parent comment belongs to a different practice", models.ErrValidation)
		}
	}

	row := tx.QueryRowContext(ctx, `
		INSERT INTO practice_comments (practice_id, author_id, parent_id, content, is_question)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+commentColumns,
		practiceID, authorID, parentID, content, isQuestion,
	)
	c, err := scanComment(row)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE practices SET comment_count = comment_count + 1 WHERE id = $1
	`, practiceID); err != nil {
		return nil, fmt.Errorf("increment comment_count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit comment: %w", err)
	}
	return c, nil
}

// ListByPractice returns all comments for a practice in chronological
// order, hydrated with the viewer's upvote state when viewerID is non-nil.
func (s *CommentStore) ListByPractice(ctx context.Context, practiceID uuid.UUID, viewerID *uuid.UUID) ([]models.Comment, error) {
	// A nil viewer becomes SQL NULL, so the upvote join matches nothing.
	var viewer any
	if viewerID != nil {
		viewer = *viewerID
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.practice_id, c.author_id, c.parent_id, c.content,
		       c.is_question, c.is_resolved, c.upvote_count, c.created_at,
		       cv.user_id IS NOT NULL AS has_upvoted
		FROM practice_comments c
		LEFT JOIN comment_votes cv ON cv.comment_id = c.id AND cv.user_id = $2
		WHERE c.practice_id = $1
		ORDER BY c.created_at
	`, practiceID, viewer)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var items []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(
			&c.ID, &c.PracticeID, &c.AuthorID, &c.ParentID, &c.Content,
			&c.IsQuestion, &c.IsResolved, &c.UpvoteCount, &c.CreatedAt,
			&c.HasUpvoted,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// Resolve marks a question comment as resolved. Only the comment author,
// the practice author, or an admin may resolve; non-questions are rejected.
func (s *CommentStore) Resolve(ctx context.Context, commentID, actorID uuid.UUID, actorIsAdmin bool) error {
	var isQuestion bool
	var commentAuthor, practiceAuthor uuid.UUID
	err := s.db.QueryRowContext(ctx, `
		SELECT c.is_question, c.author_id, p.author_id
		FROM practice_comments c
		JOIN practices p ON p.id = c.practice_id
		WHERE c.id = $1
	`, commentID).Scan(&isQuestion, &commentAuthor, &practiceAuthor)
	if err == sql.ErrNoRows {
		return fmt.Errorf("comment %s: %w", commentID, models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("find comment: %w", err)
	}

	if !isQuestion {
		return fmt.Errorf("%w: only question comments can be resolved", models.ErrInvalidState)
	}
	if actorID != commentAuthor && actorID != practiceAuthor && !actorIsAdmin {
		return fmt.Errorf("%w: not allowed to resolve this question", models.ErrPermission)
	}

	if _, err := s.db.ExecContext(ctx, `
		UPDATE practice_comments SET is_resolved = TRUE WHERE id = $1
	`, commentID); err != nil {
		return fmt.Errorf("resolve comment: %w", err)
	}
	return nil
}

// Upvote adds the user's upvote to a comment. Same ledger/counter
// transaction discipline as practice votes, but single-direction.
// Upvoting twice is a no-op.
func (s *CommentStore) Upvote(ctx context.Context, commentID, userID uuid.UUID) (int, error) {
	return s.setUpvote(ctx, commentID, userID, true)
}

// RemoveUpvote clears the user's upvote. Removing an absent upvote is a no-op.
func (s *CommentStore) RemoveUpvote(ctx context.Context, commentID, userID uuid.UUID) (int, error) {
	return s.setUpvote(ctx, commentID, userID, false)
}

func (s *CommentStore) setUpvote(ctx context.Context, commentID, userID uuid.UUID, upvoted bool) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Lock the comment row so concurrent upvoters serialize on the counter.
	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT upvote_count FROM practice_comments WHERE id = $1 FOR UPDATE`, commentID,
	).Scan(&count)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("comment %s: %w", commentID, models.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("lock comment: %w", err)
	}

	var res sql.Result
	if upvoted {
		res, err = tx.ExecContext(ctx, `
			INSERT INTO comment_votes (comment_id, user_id)
			VALUES ($1, $2)
			ON CONFLICT (comment_id, user_id) DO NOTHING
		`, commentID, userID)
	} else {
		res, err = tx.ExecContext(ctx, `
			DELETE FROM comment_votes WHERE comment_id = $1 AND user_id = $2
		`, commentID, userID)
	}
	if err != nil {
		return 0, fmt.Errorf("comment vote ledger: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 1 {
		delta := 1
		if !upvoted {
			delta = -1
		}
		err = tx.QueryRowContext(ctx, `
			UPDATE practice_comments SET upvote_count = upvote_count + $2
			WHERE id = $1
			RETURNING upvote_count
		`, commentID, delta).Scan(&count)
		if err != nil {
			return 0, fmt.Errorf("apply comment vote delta: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit comment vote: %w", err)
	}
	return count, nil
}
