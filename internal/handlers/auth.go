// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strings"

	"practicehub/internal/middleware"
	"practicehub/internal/store"
	"practicehub/internal/token"
)

// Auth handles login and logout for the bearer-token identity layer.
type Auth struct {
	users  *store.UserStore
	tokens *token.Store
}

// NewAuth creates the auth handler group.
func NewAuth(users *store.UserStore, tokens *token.Store) *Auth {
	return &Auth{users: users, tokens: tokens}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token       string `json:"token"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// Login verifies credentials and issues a bearer token. Unknown email and
// wrong password produce the same response, so the endpoint cannot be used
// to probe for accounts.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := a.users.FindByEmail(r.Context(), email)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if user == nil || !a.users.CheckPassword(user, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	tok, err := a.tokens.Issue(r.Context(), &token.Identity{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeData(w, http.StatusOK, loginResponse{
		Token:       tok,
		UserID:      user.ID.String(),
		DisplayName: user.DisplayName,
		Role:        string(user.Role),
	})
}

// Logout revokes the presented bearer token.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.tokens.Revoke(r.Context(), middleware.BearerToken(r)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, nil)
}
