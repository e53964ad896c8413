// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"practicehub/internal/middleware"
	"practicehub/internal/store"
)

// Comments handles the threaded Q&A under practices.
type Comments struct {
	comments *store.CommentStore
}

// NewComments creates the comment handler group.
func NewComments(comments *store.CommentStore) *Comments {
	return &Comments{comments: comments}
}

// List serves GET /best-practices/{id}/comments in chronological order,
// hydrated with the viewer's upvote state when authenticated.
func (h *Comments) List(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid practice id")
		return
	}

	var viewerID *uuid.UUID
	if viewer := middleware.IdentityFromCtx(r.Context()); viewer != nil {
		viewerID = &viewer.UserID
	}

	items, err := h.comments.ListByPractice(r.Context(), id, viewerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, items)
}

type addCommentRequest struct {
	Content    string     `json:"content"`
	IsQuestion bool       `json:"is_question"`
	ParentID   *uuid.UUID `json:"parent_id"`
}

// Add serves POST /best-practices/{id}/comments. A non-null parent_id makes
// the comment a reply; replies count toward comment_count too.
func (h *Comments) Add(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid practice id")
		return
	}
	viewer := middleware.IdentityFromCtx(r.Context())

	var req addCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateComment(req.Content); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	c, err := h.comments.Add(r.Context(), id, viewer.UserID, req.Content, req.IsQuestion, req.ParentID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusCreated, c)
}

// Resolve serves POST /comments/{id}/resolve for question comments.
func (h *Comments) Resolve(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	viewer := middleware.IdentityFromCtx(r.Context())

	if err := h.comments.Resolve(r.Context(), id, viewer.UserID, viewer.IsAdmin()); err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}

type commentVoteResponse struct {
	UpvoteCount int `json:"upvote_count"`
}

// Upvote serves POST /comments/{id}/upvote. Comment votes are upvote-only.
func (h *Comments) Upvote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	viewer := middleware.IdentityFromCtx(r.Context())

	count, err := h.comments.Upvote(r.Context(), id, viewer.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, commentVoteResponse{UpvoteCount: count})
}

// RemoveUpvote serves DELETE /comments/{id}/upvote.
func (h *Comments) RemoveUpvote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid comment id")
		return
	}
	viewer := middleware.IdentityFromCtx(r.Context())

	count, err := h.comments.RemoveUpvote(r.Context(), id, viewer.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, commentVoteResponse{UpvoteCount: count})
}
