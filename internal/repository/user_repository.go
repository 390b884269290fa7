package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pygus/pygus-backend/internal/model"
	"github.com/pygus/pygus-backend/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,name,email,password_hash,birthday,is_admin,created_at,updated_at,deleted_at"

// Create hashes the password and inserts a new user, returning its ID.
// The email must not belong to any active user; soft-deleted rows do not
// block re-registration.
func (r *UserRepo) Create(ctx context.Context, name, email, password string, birthday *time.Time, isAdmin bool, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	exists, err := r.activeEmailExists(ctx, email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrEmailExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, birthday, is_admin) VALUES (?,?,?,?,?)",
		name, email, hash, birthday, isAdmin)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches an active user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? AND deleted_at IS NULL LIMIT 1", email))
}

// GetByID fetches an active user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? AND deleted_at IS NULL LIMIT 1", id))
}

// List returns all active users in insertion order.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE deleted_at IS NULL ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Birthday,
			&u.IsAdmin, &u.CreatedAt, &u.UpdatedAt, &u.DeletedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UserUpdate carries the optional fields of a partial user update. Nil fields
// are left untouched.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string // re-hashed before storage
	Birthday *time.Time
	IsAdmin  *bool
}

// Update applies a partial update to an active user. It returns
// ErrUserNotFound when the user is absent or soft-deleted, and
// ErrEmailExists when the new email collides with another active user.
func (r *UserRepo) Update(ctx context.Context, id uint64, upd UserUpdate, cost int) error {
	sets := []string{}
	args := []any{}
	if upd.Name != nil {
		sets = append(sets, "name=?")
		args = append(args, *upd.Name)
	}
	if upd.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*upd.Email))
		taken, err := r.activeEmailTakenByOther(ctx, email, id)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailExists
		}
		sets = append(sets, "email=?")
		args = append(args, email)
	}
	if upd.Password != nil {
		hash, err := utils.HashPassword(*upd.Password, cost)
		if err != nil {
			return err
		}
		sets = append(sets, "password_hash=?")
		args = append(args, hash)
	}
	if upd.Birthday != nil {
		sets = append(sets, "birthday=?")
		args = append(args, *upd.Birthday)
	}
	if upd.IsAdmin != nil {
		sets = append(sets, "is_admin=?")
		args = append(args, *upd.IsAdmin)
	}
	if len(sets) == 0 {
		// Nothing to change; still report whether the user exists.
		_, err := r.GetByID(ctx, id)
		return err
	}
	args = append(args, id)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ",")+" WHERE id=? AND deleted_at IS NULL", args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either unknown id or the values matched the current row. Fall back
		// to an existence probe so "no change" is not reported as not found.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// SoftDelete marks an active user as deleted without purging the row.
func (r *UserRepo) SoftDelete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET deleted_at=UTC_TIMESTAMP() WHERE id=? AND deleted_at IS NULL", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Birthday,
		&u.IsAdmin, &u.CreatedAt, &u.UpdatedAt, &u.DeletedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

func (r *UserRepo) activeEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE email=? AND deleted_at IS NULL)", email).Scan(&exists)
	return exists, err
}

func (r *UserRepo) activeEmailTakenByOther(ctx context.Context, email string, id uint64) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE email=? AND id<>? AND deleted_at IS NULL)", email, id).Scan(&exists)
	return exists, err
}
