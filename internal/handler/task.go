package handler

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pygus/pygus-backend/internal/model"
	"github.com/pygus/pygus-backend/internal/queue"
	"github.com/pygus/pygus-backend/internal/repository"
	"github.com/pygus/pygus-backend/internal/service"
	"github.com/pygus/pygus-backend/internal/webutil"
)

// TaskHandler serves the task CRUD and assembly endpoints. Tasks are
// hard-deleted. Record mutations emit best-effort events to the broker;
// a broker outage never fails the request.
type TaskHandler struct {
	Tasks     TaskStore
	Assembler *service.TaskAssembler
	Publish   func(ctx context.Context, ev queue.TaskEvent) error
}

func NewTaskHandler(tasks TaskStore, assembler *service.TaskAssembler) *TaskHandler {
	return &TaskHandler{Tasks: tasks, Assembler: assembler, Publish: queue.PublishTaskEvent}
}

type taskReq struct {
	Name      string           `json:"name"`
	Phoneme   string           `json:"phoneme"`
	Syllables []model.Syllable `json:"syllables"`
}

func (req *taskReq) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	req.Phoneme = strings.TrimSpace(req.Phoneme)
	if req.Name == "" {
		return "O nome da tarefa é obrigatório"
	}
	if req.Phoneme == "" {
		return "O fonema da tarefa é obrigatório"
	}
	if len(req.Syllables) == 0 {
		return "A tarefa precisa de pelo menos uma sílaba"
	}
	return ""
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(c echo.Context) error {
	var req taskReq
	if err := c.Bind(&req); err != nil {
		return webutil.Fail(c, nil, "Requisição inválida")
	}
	if msg := req.validate(); msg != "" {
		return webutil.Fail(c, nil, msg)
	}
	id, err := h.Tasks.Create(c.Request().Context(), req.Name, req.Phoneme, req.Syllables)
	if err != nil {
		return webutil.Fail(c, nil, err.Error())
	}
	h.emit(queue.TaskEvent{Action: queue.ActionTaskCreated, TaskID: id, TaskName: req.Name, Phoneme: req.Phoneme})
	data := model.TaskSummary{ID: id, Name: req.Name, Phoneme: req.Phoneme, Syllables: req.Syllables}
	return webutil.OK(c, data, "Task created successfuly")
}

// ReadOne handles GET /tasks/:id: load the record, then resolve its image,
// whole-word audio and per-syllable audio URLs. A task whose media was never
// uploaded returns empty URLs, not a failure.
func (h *TaskHandler) ReadOne(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return webutil.Fail(c, nil, "Identificador inválido")
	}
	task, err := h.Tasks.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return webutil.Fail(c, nil, "Task removed")
		}
		return webutil.Fail(c, nil, err.Error())
	}
	view := h.Assembler.Assemble(c.Request().Context(), task)
	return webutil.OK(c, view, "Task returned successfully")
}

// ReadAll handles GET /tasks: the thin list grouped by phoneme. No asset
// URLs are resolved here; signing one URL per task per request would turn
// the listing into an N+1 against the object store.
func (h *TaskHandler) ReadAll(c echo.Context) error {
	tasks, err := h.Tasks.List(c.Request().Context())
	if err != nil {
		return webutil.Fail(c, []any{}, err.Error())
	}
	return webutil.OK(c, service.GroupByPhoneme(tasks), "Tasks returned successfully")
}

// ReadBackoffice handles GET /tasks/backoffice: the flat ungrouped list the
// admin panel consumes.
func (h *TaskHandler) ReadBackoffice(c echo.Context) error {
	tasks, err := h.Tasks.List(c.Request().Context())
	if err != nil {
		return webutil.Fail(c, []any{}, err.Error())
	}
	resp := make([]model.TaskSummary, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, service.Summarize(t))
	}
	return webutil.OK(c, resp, "Tasks returned successfully")
}

// Update handles PUT /tasks/:id, replacing name, phoneme and syllables.
func (h *TaskHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return webutil.Fail(c, nil, "Identificador inválido")
	}
	var req taskReq
	if err := c.Bind(&req); err != nil {
		return webutil.Fail(c, nil, "Requisição inválida")
	}
	if msg := req.validate(); msg != "" {
		return webutil.Fail(c, nil, msg)
	}
	if err := h.Tasks.Update(c.Request().Context(), id, req.Name, req.Phoneme, req.Syllables); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return webutil.Fail(c, nil, "Task removed")
		}
		return webutil.Fail(c, nil, err.Error())
	}
	h.emit(queue.TaskEvent{Action: queue.ActionTaskUpdated, TaskID: id, TaskName: req.Name, Phoneme: req.Phoneme})
	data := model.TaskSummary{ID: id, Name: req.Name, Phoneme: req.Phoneme, Syllables: req.Syllables}
	return webutil.OK(c, data, "Task updated successfuly")
}

// Delete handles DELETE /tasks/:id. Unlike users, tasks are removed for
// good; stored media stays in the bucket until replaced.
func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return webutil.Fail(c, nil, "Identificador inválido")
	}
	if err := h.Tasks.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return webutil.Fail(c, nil, "Task removed")
		}
		return webutil.Fail(c, nil, err.Error())
	}
	h.emit(queue.TaskEvent{Action: queue.ActionTaskDeleted, TaskID: id})
	return webutil.OK(c, map[string]any{}, "Task deleted successfuly")
}

// emit publishes an event without blocking the request or surfacing broker
// errors to the client.
func (h *TaskHandler) emit(ev queue.TaskEvent) {
	if h.Publish == nil {
		return
	}
	ev.At = time.Now().UTC().Format(time.RFC3339)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.Publish(ctx, ev)
	}()
}
