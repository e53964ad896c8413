// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PracticeStatus represents the lifecycle state of a practice.
type PracticeStatus string

const (
	StatusDraft         PracticeStatus = "draft"
	StatusPendingReview PracticeStatus = "pending_review"
	StatusPublished     PracticeStatus = "published"
	StatusArchived      PracticeStatus = "archived"
)

// Attachment is a reference to an externally uploaded file. The URL is
// opaque — produced by the upload flow and stored verbatim.
type Attachment struct {
	Type string `json:"type"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Mime string `json:"mime"`
}

// StringList is a JSONB-backed list of strings (tags, industries).
type StringList []string

// Value implements driver.Valuer, serializing the list as a JSON array.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB columns.
func (l *StringList) Scan(src any) error {
	return scanJSON(src, l)
}

// UUIDList is a JSONB-backed list of UUIDs (linked customer ids).
type UUIDList []uuid.UUID

func (l UUIDList) Value() (driver.Value, error) {
	if l == nil {
		l = UUIDList{}
	}
	return json.Marshal(l)
}

func (l *UUIDList) Scan(src any) error {
	return scanJSON(src, l)
}

// AttachmentList is a JSONB-backed ordered list of attachments.
type AttachmentList []Attachment

func (l AttachmentList) Value() (driver.Value, error) {
	if l == nil {
		l = AttachmentList{}
	}
	return json.Marshal(l)
}

func (l *AttachmentList) Scan(src any) error {
	return scanJSON(src, l)
}

// scanJSON unmarshals a JSONB column value (bytes or string) into dst.
func scanJSON(src, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("scan json: unsupported type %T", src)
	}
}

// Practice is a shared best-practice document with lifecycle status and
// denormalized engagement counters. The counters always equal the row
// counts of the underlying vote/save/usage/comment ledgers.
type Practice struct {
	ID               uuid.UUID      `json:"id"`
	AuthorID         uuid.UUID      `json:"author_id"`
	Title            string         `json:"title"`
	ProblemStatement string         `json:"problem_statement"`
	Solution         string         `json:"solution"`
	ExpectedOutcomes *string        `json:"expected_outcomes,omitempty"`
	Variations       *string        `json:"variations,omitempty"`
	Pitfalls         *string        `json:"pitfalls,omitempty"`
	Category         Category       `json:"category"`
	Tags             StringList     `json:"tags"`
	Industries       StringList     `json:"industries"`
	CustomerIDs      UUIDList       `json:"customer_ids"`
	Attachments      AttachmentList `json:"attachments"`
	Status           PracticeStatus `json:"status"`
	IsFeatured       bool           `json:"is_featured"`
	ViewCount        int            `json:"view_count"`
	UpvoteCount      int            `json:"upvote_count"`
	DownvoteCount    int            `json:"downvote_count"`
	SaveCount        int            `json:"save_count"`
	UseCount         int            `json:"use_count"`
	CommentCount     int            `json:"comment_count"`
	PublishedAt      *time.Time     `json:"published_at,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`

	// Per-viewer fields, hydrated per request and never persisted.
	UserVote *int `json:"user_vote,omitempty"`
	IsSaved  bool `json:"is_saved"`
}

// IsPublished returns true if the practice is in published status.
func (p *Practice) IsPublished() bool {
	return p.Status == StatusPublished
}

// NetScore returns upvotes minus downvotes, the popularity sort key.
func (p *Practice) NetScore() int {
	return p.UpvoteCount - p.DownvoteCount
}
