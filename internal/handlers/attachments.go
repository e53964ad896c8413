// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"

	"practicehub/internal/storage"
)

// Attachments issues presigned upload URLs for practice attachments. The
// client uploads directly to object storage and then stores the returned
// file URL on the practice; the API treats that URL as opaque afterwards.
type Attachments struct {
	storage *storage.Client
}

// NewAttachments creates the attachment handler group. storage may be nil
// when object storage is not configured.
func NewAttachments(storage *storage.Client) *Attachments {
	return &Attachments{storage: storage}
}

type uploadURLRequest struct {
	Name string `json:"name"`
	Mime string `json:"mime"`
}

type uploadURLResponse struct {
	UploadURL string `json:"upload_url"`
	FileURL   string `json:"file_url"`
	Key       string `json:"key"`
}

// CreateUploadURL serves POST /best-practices/attachments. The object key
// is namespaced by a random UUID so uploads never collide or overwrite.
func (h *Attachments) CreateUploadURL(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	var req uploadURLRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := path.Base(strings.TrimSpace(req.Name))
	if name == "" || name == "." || name == "/" {
		writeError(w, http.StatusBadRequest, "a file name is required")
		return
	}
	if req.Mime == "" {
		req.Mime = "application/octet-stream"
	}

	key := fmt.Sprintf("attachments/%s/%s", uuid.NewString(), name)
	uploadURL, err := h.storage.PresignUpload(r.Context(), key, req.Mime, 0)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeData(w, http.StatusCreated, uploadURLResponse{
		UploadURL: uploadURL,
		FileURL:   h.storage.FileURL(key),
		Key:       key,
	})
}
