// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Vote is a ledger row recording a single user's vote on a practice.
// At most one row exists per (practice, user); value is +1 or -1.
// A vote of 0 removes the row rather than storing it.
type Vote struct {
	PracticeID uuid.UUID `json:"practice_id"`
	UserID     uuid.UUID `json:"user_id"`
	Value      int       `json:"value"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Save is a ledger row; its presence means the user bookmarked the practice.
type Save struct {
	PracticeID uuid.UUID `json:"practice_id"`
	UserID     uuid.UUID `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// UsageOutcome is the optional self-reported result of applying a practice.
type UsageOutcome string

const (
	OutcomeHelpful         UsageOutcome = "helpful"
	OutcomeSomewhatHelpful UsageOutcome = "somewhat_helpful"
	OutcomeNotHelpful      UsageOutcome = "not_helpful"
)

// ValidOutcome reports whether o is a known usage outcome.
func ValidOutcome(o UsageOutcome) bool {
	switch o {
	case OutcomeHelpful, OutcomeSomewhatHelpful, OutcomeNotHelpful:
		return true
	}
	return false
}

// UsageRecord is an append-only row capturing one application of a practice.
// The practice's use_count equals the number of these rows.
type UsageRecord struct {
	ID         uuid.UUID     `json:"id"`
	PracticeID uuid.UUID     `json:"practice_id"`
	UserID     uuid.UUID     `json:"user_id"`
	CustomerID *uuid.UUID    `json:"customer_id,omitempty"`
	Outcome    *UsageOutcome `json:"outcome,omitempty"`
	Notes      *string       `json:"notes,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

// VoteCounts is the aggregate returned after a vote mutation.
type VoteCounts struct {
	UpvoteCount   int `json:"upvote_count"`
	DownvoteCount int `json:"downvote_count"`
}
