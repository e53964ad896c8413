// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"unicode/utf8"

	"practicehub/internal/middleware"
	"practicehub/internal/store"
)

// Engagement handles votes, saves, and usage records on practices.
type Engagement struct {
	engage *store.EngagementStore
}

// NewEngagement creates the engagement handler group.
func NewEngagement(engage *store.EngagementStore) *Engagement {
	return &Engagement{engage: engage}
}

type voteRequest struct {
	Vote int `json:"vote"`
}

// Vote serves POST /best-practices/{id}/vote with body {vote: 1|-1|0}.
// The response carries the recomputed aggregate counters.
func (h *Engagement) Vote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid practice id")
		return
	}
	viewer := middleware.IdentityFromCtx(r.Context())

	var req voteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	counts, err := h.engage.Vote(r.Context(), id, viewer.UserID, req.Vote)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, counts)
}

// Save serves POST /best-practices/{id}/save. Saving twice is a no-op
// success — the client treats save as a toggle.
func (h *Engagement) Save(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid practice id")
		return
	}
	viewer := middleware.IdentityFromCtx(r.Context())

	if err := h.engage.Save(r.Context(), id, viewer.UserID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}

// Unsave serves DELETE /best-practices/{id}/save. Unsaving a not-saved
// practice is also a no-op success.
func (h *Engagement) Unsave(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid practice id")
		return
	}
	viewer := middleware.IdentityFromCtx(r.Context())

	if err := h.engage.Unsave(r.Context(), id, viewer.UserID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}

// Use serves POST /best-practices/{id}/use, appending a usage record with
// an optional outcome, linked customer, and notes.
func (h *Engagement) Use(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid practice id")
		return
	}
	viewer := middleware.IdentityFromCtx(r.Context())

	var in store.UsageInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Notes != nil && utf8.RuneCountInString(*in.Notes) > maxNotesLen {
		writeError(w, http.StatusBadRequest, "notes are too long (max 2,000 characters)")
		return
	}

	rec, err := h.engage.RecordUsage(r.Context(), id, viewer.UserID, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusCreated, rec)
}
