package handler

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/pygus/pygus-backend/internal/model"
	"github.com/pygus/pygus-backend/internal/repository"
	"github.com/pygus/pygus-backend/internal/utils"
)

// fakeUserStore keeps users in memory with the same soft-delete and
// duplicate-email semantics as the SQL repository.
type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint64
	users  map[uint64]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{nextID: 1, users: map[uint64]model.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, name, email, password string, birthday *time.Time, isAdmin bool, cost int) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email && u.DeletedAt == nil {
			return 0, repository.ErrEmailExists
		}
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	id := f.nextID
	f.nextID++
	f.users[id] = model.User{ID: id, Name: name, Email: email, PasswordHash: hash,
		Birthday: birthday, IsAdmin: isAdmin, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	return id, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email && u.DeletedAt == nil {
			return u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint64) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok || u.DeletedAt != nil {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.User
	for id := uint64(1); id < f.nextID; id++ {
		if u, ok := f.users[id]; ok && u.DeletedAt == nil {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) Update(_ context.Context, id uint64, upd repository.UserUpdate, cost int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok || u.DeletedAt != nil {
		return repository.ErrUserNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Password != nil {
		hash, err := utils.HashPassword(*upd.Password, cost)
		if err != nil {
			return err
		}
		u.PasswordHash = hash
	}
	if upd.Birthday != nil {
		u.Birthday = upd.Birthday
	}
	if upd.IsAdmin != nil {
		u.IsAdmin = *upd.IsAdmin
	}
	f.users[id] = u
	return nil
}

func (f *fakeUserStore) SoftDelete(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok || u.DeletedAt != nil {
		return repository.ErrUserNotFound
	}
	now := time.Now()
	u.DeletedAt = &now
	f.users[id] = u
	return nil
}

func (f *fakeUserStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users)
}

// fakeTaskStore keeps tasks in memory; tasks are hard-deleted.
type fakeTaskStore struct {
	mu     sync.Mutex
	nextID uint64
	tasks  map[uint64]model.Task
	order  []uint64
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{nextID: 1, tasks: map[uint64]model.Task{}}
}

func (f *fakeTaskStore) Create(_ context.Context, name, phoneme string, syllables []model.Syllable) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.tasks[id] = model.Task{ID: id, Name: name, Phoneme: phoneme, Syllables: syllables, CreatedAt: time.Now()}
	f.order = append(f.order, id)
	return id, nil
}

func (f *fakeTaskStore) GetByID(_ context.Context, id uint64) (model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	if !ok {
		return model.Task{}, repository.ErrTaskNotFound
	}
	return t, nil
}

func (f *fakeTaskStore) List(_ context.Context) ([]model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Task
	for _, id := range f.order {
		if t, ok := f.tasks[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskStore) Update(_ context.Context, id uint64, name, phoneme string, syllables []model.Syllable) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.tasks[id]
	if !ok {
		return repository.ErrTaskNotFound
	}
	t.Name, t.Phoneme, t.Syllables = name, phoneme, syllables
	f.tasks[id] = t
	return nil
}

func (f *fakeTaskStore) Delete(_ context.Context, id uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.tasks[id]; !ok {
		return repository.ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

// fixedResolver returns a fixed URL set; unknown keys resolve to "".
type fixedResolver struct{ urls map[string]string }

func (r *fixedResolver) ResolveURL(_ context.Context, prefix, filename string) string {
	return r.urls[prefix+"/"+filename]
}

// recordingUploader captures every upload key.
type recordingUploader struct {
	mu   sync.Mutex
	keys []string
}

func (u *recordingUploader) Upload(_ context.Context, prefix, filename string, body io.Reader, _ string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.keys = append(u.keys, prefix+"/"+filename)
	_, _ = io.Copy(io.Discard, body)
	return nil
}
