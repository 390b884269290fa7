// Package repository implements thin SQL data access for users and tasks.
// Sentinel errors defined here let handlers distinguish the failure
// scenarios the wire envelope only reports as message text: a missing or
// soft-deleted record versus a validation conflict such as a duplicate email.
package repository

import "errors"

// ErrEmailExists is returned when a registration or update would reuse an
// email address that already belongs to an active user.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when no active user matches the lookup.
// Soft-deleted users are reported as not found, not as deleted.
var ErrUserNotFound = errors.New("user not found")

// ErrTaskNotFound is returned when no task matches the lookup.
var ErrTaskNotFound = errors.New("task not found")
