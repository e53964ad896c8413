// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// search.go is the read-query façade: filtered, sorted, paginated browse
// over practices, with per-viewer vote/save hydration and the category
// count aggregate.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"practicehub/internal/models"
)

// Sort orders accepted by Search.
const (
	SortPopular  = "popular"
	SortRecent   = "recent"
	SortMostUsed = "most_used"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// SearchStore serves browse/search queries over practices.
type SearchStore struct {
	db *sql.DB
}

// NewSearchStore returns a new SearchStore.
func NewSearchStore(db *sql.DB) *SearchStore {
	return &SearchStore{db: db}
}

// SearchFilter describes one browse query.
type SearchFilter struct {
	Query    string
	Category models.Category
	Tags     []string
	Featured *bool
	SortBy   string
	Limit    int
	Offset   int

	// ViewerID widens visibility to the viewer's own drafts and pending
	// submissions and drives user_vote/is_saved hydration. Nil means an
	// unauthenticated browse: published practices only.
	ViewerID *uuid.UUID
}

// SearchResult is a page of practices plus pagination metadata.
type SearchResult struct {
	Items   []models.Practice `json:"items"`
	Total   int               `json:"total"`
	HasMore bool              `json:"has_more"`
}

// Search runs a filtered, sorted, paginated query. The visibility clause is
// an authorization boundary: drafts and pending submissions are only ever
// visible to their author, regardless of any other filter.
func (s *SearchStore) Search(ctx context.Context, f SearchFilter) (*SearchResult, error) {
	if f.Limit <= 0 {
		f.Limit = defaultPageSize
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	var where []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	// Visibility first — applied before any caller-supplied filter.
	if f.ViewerID != nil {
		where = append(where, fmt.Sprintf("(p.status = 'published' OR p.author_id = %s)", arg(*f.ViewerID)))
	} else {
		where = append(where, "p.status = 'published'")
	}

	if q := strings.TrimSpace(f.Query); q != "" {
		ph := arg("%" + q + "%")
		where = append(where, fmt.Sprintf("(p.title ILIKE %s OR p.problem_statement ILIKE %s)", ph, ph))
	}
	if f.Category != "" {
		if !models.ValidCategory(f.Category) {
			return nil, fmt.Errorf("%w: unknown category %q", models.ErrValidation, f.Category)
		}
		where = append(where, "p.category = "+arg(f.Category))
	}
	if len(f.Tags) > 0 {
		// JSONB containment: the practice must carry all requested tags.
		tagsJSON, err := json.Marshal(f.Tags)
		if err != nil {
			return nil, fmt.Errorf("marshal tags filter: %w", err)
		}
		where = append(where, "p.tags @> "+arg(string(tagsJSON)))
	}
	if f.Featured != nil {
		where = append(where, "p.is_featured = "+arg(*f.Featured))
	}

	whereClause := "WHERE " + strings.Join(where, " AND ")

	var orderBy string
	switch f.SortBy {
	case SortPopular:
		orderBy = "(p.upvote_count - p.downvote_count) DESC, p.created_at DESC"
	case SortMostUsed:
		orderBy = "p.use_count DESC, p.created_at DESC"
	case SortRecent, "":
		orderBy = "p.created_at DESC"
	default:
		return nil, fmt.Errorf("%w: unknown sort %q", models.ErrValidation, f.SortBy)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM practices p " + whereClause
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count practices: %w", err)
	}

	// Page query reuses the same args; hydration joins use the viewer id.
	// A nil viewer becomes SQL NULL, so the joins match nothing.
	var viewer any
	if f.ViewerID != nil {
		viewer = *f.ViewerID
	}
	viewerPh := arg(viewer)
	limitPh := arg(f.Limit)
	offsetPh := arg(f.Offset)

	pageQuery := fmt.Sprintf(`
		SELECT %s,
		       pv.value,
		       ps.practice_id IS NOT NULL AS is_saved
		FROM practices p
		LEFT JOIN practice_votes pv ON pv.practice_id = p.id AND pv.user_id = %s
		LEFT JOIN practice_saves ps ON ps.practice_id = p.id AND ps.user_id = %s
		%s
		ORDER BY %s
		LIMIT %s OFFSET %s
	`, prefixedPracticeColumns, viewerPh, viewerPh, whereClause, orderBy, limitPh, offsetPh)

	rows, err := s.db.QueryContext(ctx, pageQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("search practices: %w", err)
	}
	defer rows.Close()

	items := []models.Practice{}
	for rows.Next() {
		var p models.Practice
		var vote sql.NullInt64
		if err := rows.Scan(
			&p.ID, &p.AuthorID, &p.Title, &p.ProblemStatement, &p.Solution,
			&p.ExpectedOutcomes, &p.Variations, &p.Pitfalls, &p.Category,
			&p.Tags, &p.Industries, &p.CustomerIDs, &p.Attachments,
			&p.Status, &p.IsFeatured, &p.ViewCount, &p.UpvoteCount,
			&p.DownvoteCount, &p.SaveCount, &p.UseCount, &p.CommentCount,
			&p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
			&vote, &p.IsSaved,
		); err != nil {
			return nil, fmt.Errorf("scan practice: %w", err)
		}
		if vote.Valid {
			v := int(vote.Int64)
			p.UserVote = &v
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &SearchResult{
		Items:   items,
		Total:   total,
		HasMore: f.Offset+len(items) < total,
	}, nil
}

// prefixedPracticeColumns is practiceColumns with the p. alias for joins.
var prefixedPracticeColumns = func() string {
	cols := strings.Split(practiceColumns, ",")
	for i := range cols {
		cols[i] = "p." + strings.TrimSpace(cols[i])
	}
	return strings.Join(cols, ", ")
}()

// CategoryCounts returns the fixed category set with live counts of
// published practices per category.
func (s *SearchStore) CategoryCounts(ctx context.Context) ([]models.CategoryInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COUNT(*)
		FROM practices
		WHERE status = 'published'
		GROUP BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("category counts: %w", err)
	}
	defer rows.Close()

	counts := map[models.Category]int{}
	for rows.Next() {
		var c models.Category
		var n int
		if err := rows.Scan(&c, &n); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		counts[c] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	cats := models.Categories()
	for i := range cats {
		cats[i].Count = counts[cats[i].Category]
	}
	return cats, nil
}
