package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/pygus/pygus-backend/internal/model"
)

type TaskRepo struct{ DB *sql.DB }

func NewTaskRepo(db *sql.DB) *TaskRepo { return &TaskRepo{DB: db} }

// Create inserts a new task and returns its ID. The syllable sequence is
// stored as a JSON array so its order survives the round trip.
func (r *TaskRepo) Create(ctx context.Context, name, phoneme string, syllables []model.Syllable) (uint64, error) {
	raw, err := json.Marshal(syllables)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO tasks (name, phoneme, syllables) VALUES (?,?,?)",
		name, phoneme, raw)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a task by id. A missing task is ErrTaskNotFound.
func (r *TaskRepo) GetByID(ctx context.Context, id uint64) (model.Task, error) {
	var t model.Task
	var raw []byte
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,phoneme,syllables,created_at,updated_at FROM tasks WHERE id=? LIMIT 1",
		id).Scan(&t.ID, &t.Name, &t.Phoneme, &raw, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Task{}, ErrTaskNotFound
	}
	if err != nil {
		return model.Task{}, err
	}
	if err := json.Unmarshal(raw, &t.Syllables); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// List returns all tasks in insertion order.
func (r *TaskRepo) List(ctx context.Context) ([]model.Task, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,phoneme,syllables,created_at,updated_at FROM tasks ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		var raw []byte
		if err := rows.Scan(&t.ID, &t.Name, &t.Phoneme, &raw, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &t.Syllables); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Update replaces a task's name, phoneme and syllable sequence.
func (r *TaskRepo) Update(ctx context.Context, id uint64, name, phoneme string, syllables []model.Syllable) error {
	raw, err := json.Marshal(syllables)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE tasks SET name=?, phoneme=?, syllables=? WHERE id=?",
		name, phoneme, raw, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// MySQL reports zero affected rows for no-op updates too, so probe.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a task permanently. Tasks are hard-deleted; there is no
// deletion marker to filter on reads.
func (r *TaskRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM tasks WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTaskNotFound
	}
	return nil
}
