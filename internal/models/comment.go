// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a threaded Q&A entry under a practice. A non-nil ParentID makes
// it a reply; replies must reference a comment on the same practice. Comments
// carry an upvote-only ledger — there is no downvote counterpart.
type Comment struct {
	ID          uuid.UUID  `json:"id"`
	PracticeID  uuid.UUID  `json:"practice_id"`
	AuthorID    uuid.UUID  `json:"author_id"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	Content     string     `json:"content"`
	IsQuestion  bool       `json:"is_question"`
	IsResolved  bool       `json:"is_resolved"`
	UpvoteCount int        `json:"upvote_count"`
	CreatedAt   time.Time  `json:"created_at"`

	// Per-viewer field, hydrated per request and never persisted.
	HasUpvoted bool `json:"has_upvoted"`
}
