package handler

import (
	"context"
	"io"
	"time"

	"github.com/pygus/pygus-backend/internal/model"
	"github.com/pygus/pygus-backend/internal/repository"
)

// UserStore is the slice of the user repository the handlers depend on.
// Satisfied by *repository.UserRepo; tests substitute fakes.
type UserStore interface {
	Create(ctx context.Context, name, email, password string, birthday *time.Time, isAdmin bool, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id uint64, upd repository.UserUpdate, cost int) error
	SoftDelete(ctx context.Context, id uint64) error
}

// TaskStore is the slice of the task repository the handlers depend on.
// Satisfied by *repository.TaskRepo.
type TaskStore interface {
	Create(ctx context.Context, name, phoneme string, syllables []model.Syllable) (uint64, error)
	GetByID(ctx context.Context, id uint64) (model.Task, error)
	List(ctx context.Context) ([]model.Task, error)
	Update(ctx context.Context, id uint64, name, phoneme string, syllables []model.Syllable) error
	Delete(ctx context.Context, id uint64) error
}

// AssetUploader ingests binary task media. Satisfied by *storage.AssetStore.
type AssetUploader interface {
	Upload(ctx context.Context, prefix, filename string, body io.Reader, contentType string) error
}
