// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "errors"

// Domain error sentinels. Stores wrap these with fmt.Errorf("...: %w", ...)
// and handlers map them to HTTP status codes with errors.Is.
var (
	// ErrValidation marks a missing or invalid required field (HTTP 400).
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an unknown entity id (HTTP 404).
	ErrNotFound = errors.New("not found")

	// ErrPermission marks an actor not authorized for the action (HTTP 403).
	ErrPermission = errors.New("permission denied")

	// ErrInvalidState marks an action illegal for the entity's current
	// lifecycle status, e.g. editing a practice under review (HTTP 409).
	ErrInvalidState = errors.New("invalid state")
)
