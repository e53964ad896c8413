// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"practicehub/internal/cache"
	"practicehub/internal/middleware"
	"practicehub/internal/models"
	"practicehub/internal/store"
)

// Practices handles practice CRUD, lifecycle transitions, and browse queries.
type Practices struct {
	practices *store.PracticeStore
	search    *store.SearchStore
	counts    *cache.CategoryCountCache
}

// NewPractices creates the practice handler group.
func NewPractices(practices *store.PracticeStore, search *store.SearchStore, counts *cache.CategoryCountCache) *Practices {
	return &Practices{practices: practices, search: search, counts: counts}
}

// List serves GET /best-practices: filtered, sorted, paginated browse.
// Unauthenticated callers see published practices only; authenticated
// callers additionally see their own drafts and pending submissions.
func (h *Practices) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := store.SearchFilter{
		Query:    q.Get("q"),
		Category: models.Category(q.Get("category")),
		SortBy:   q.Get("sortBy"),
	}
	if tags := strings.TrimSpace(q.Get("tags")); tags != "" {
		filter.Tags = strings.Split(tags, ",")
	}
	if f := q.Get("featured"); f != "" {
		featured := f == "true" || f == "1"
		filter.Featured = &featured
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil {
		filter.Offset = v
	}
	if id := middleware.IdentityFromCtx(r.Context()); id != nil {
		filter.ViewerID = &id.UserID
	}

	result, err := h.search.Search(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, result)
}

// Categories serves GET /best-practices/categories: the fixed category enum
// with live counts of published practices, via the Valkey cache.
func (h *Practices) Categories(w http.ResponseWriter, r *http.Request) {
	if cats, ok := h.counts.Get(r.Context()); ok {
		writeData(w, http.StatusOK, cats)
		return
	}

	cats, err := h.search.CategoryCounts(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	h.counts.Set(r.Context(), cats)
	writeData(w, http.StatusOK, cats)
}

// Detail serves GET /best-practices/{id}. Opening a detail view increments
// view_count by exactly one unless the viewer is the author; list queries
// never do. Every detail open counts — there is no per-viewer dedup window
// (product decision to confirm).
func (h *Practices) Detail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid practice id")
		return
	}

	viewer := middleware.IdentityFromCtx(r.Context())

	p, err := h.practices.FindByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	// Drafts are visible only to their author; pending submissions also to
	// reviewers. Responding 404 avoids leaking that the id exists.
	switch p.Status {
	case models.StatusDraft:
		if viewer == nil || viewer.UserID != p.AuthorID {
			writeError(w, http.StatusNotFound, "practice not found")
			return
		}
	case models.StatusPendingReview:
		if viewer == nil || (viewer.UserID != p.AuthorID && !viewer.CanReview()) {
			writeError(w, http.StatusNotFound, "practice not found")
			return
		}
	}

	if viewer == nil || viewer.UserID != p.AuthorID {
		if err := h.practices.IncrementView(r.Context(), id); err != nil {
			writeDomainError(w, err)
			return
		}
		p.ViewCount++
	}

	if viewer != nil {
		p, err = h.practices.FindForViewer(r.Context(), id, viewer.UserID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
	}

	writeData(w, http.StatusOK, p)
}

// Create serves POST /best-practices. New practices start as drafts owned
// by the caller, with every counter at zero.
func (h *Practices) Create(w http.ResponseWriter, r *http.Request) {
	viewer := middleware.IdentityFromCtx(r.Context())

	var in store.PracticeInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validatePracticeInput(&in); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	p, err := h.practices.Create(r.Context(), viewer.UserID, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusCreated, p)
}

// Update serves PUT /best-practices/{id}: draft-only content edits.
func (h *Practices) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid practice id")
		return
	}
	viewer := middleware.IdentityFromCtx(r.Context())

	var in store.PracticeInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validatePracticeInput(&in); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	p, err := h.practices.UpdateContent(r.Context(), id, viewer.UserID, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, p)
}

// Submit serves POST /best-practices/{id}/submit: draft → pending_review.
func (h *Practices) Submit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid practice id")
		return
	}
	viewer := middleware.IdentityFromCtx(r.Context())

	if err := h.practices.SubmitForReview(r.Context(), id, viewer.UserID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}

// Publish serves POST /best-practices/{id}/publish (reviewer role).
// Idempotent: publishing an already-published practice succeeds unchanged.
func (h *Practices) Publish(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid practice id")
		return
	}

	if err := h.practices.Publish(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	h.counts.Invalidate(r.Context())
	writeData(w, http.StatusOK, nil)
}

// Reject serves POST /best-practices/{id}/reject (reviewer role):
// pending_review → draft so the author can revise.
func (h *Practices) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid practice id")
		return
	}

	if err := h.practices.Reject(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}

// Archive serves POST /best-practices/{id}/archive. The author may withdraw
// their own practice; reviewers and admins may archive any.
func (h *Practices) Archive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid practice id")
		return
	}
	viewer := middleware.IdentityFromCtx(r.Context())

	p, err := h.practices.FindByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if viewer.UserID != p.AuthorID && !viewer.CanReview() {
		writeError(w, http.StatusForbidden, "not allowed to archive this practice")
		return
	}

	if err := h.practices.Archive(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	h.counts.Invalidate(r.Context())
	writeData(w, http.StatusOK, nil)
}

type featureRequest struct {
	Featured bool `json:"featured"`
}

// Feature serves POST /best-practices/{id}/feature (reviewer role). The
// featured flag is independent of lifecycle status.
func (h *Practices) Feature(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid practice id")
		return
	}

	var req featureRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.practices.SetFeatured(r.Context(), id, req.Featured); err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}
