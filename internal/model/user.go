package model

import "time"

// User represents an application user record as stored in the `users` table.
// Passwords are only ever held as bcrypt hashes; the clear form is discarded
// as soon as the hash is computed. Deletion is a soft delete: DeletedAt is
// set and the row is excluded from normal reads but never physically removed.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Name         – display name.
//	Email        – unique email address among active users.
//	PasswordHash – bcrypt hashed password.
//	Birthday     – optional date of birth.
//	IsAdmin      – whether the user may use the backoffice login.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
//	DeletedAt    – soft-delete marker (nil while active).
type User struct {
	ID           uint64     // users.id
	Name         string     // users.name
	Email        string     // users.email
	PasswordHash string     // users.password_hash
	Birthday     *time.Time // users.birthday (nullable)
	IsAdmin      bool       // users.is_admin
	CreatedAt    time.Time  // users.created_at
	UpdatedAt    time.Time  // users.updated_at
	DeletedAt    *time.Time // users.deleted_at (nullable)
}
