// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios without string
// matching. For example, ErrEmailExists signals a uniqueness conflict on
// registration, while ErrNotFound is the generic absent-row result that
// repositories return instead of leaking sql.ErrNoRows.
package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist. Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when inserting or updating a user would
// violate the unique email constraint. Surfaced as HTTP 400.
var ErrEmailExists = errors.New("email already exists")

// ErrPhoneExists is returned when inserting or updating a user would
// violate the unique phone constraint. Surfaced as HTTP 400.
var ErrPhoneExists = errors.New("phone number already exists")
