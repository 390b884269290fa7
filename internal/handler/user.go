package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pygus/pygus-backend/internal/config"
	"github.com/pygus/pygus-backend/internal/model"
	"github.com/pygus/pygus-backend/internal/repository"
	"github.com/pygus/pygus-backend/internal/webutil"
)

// UserHandler serves the user CRUD endpoints. Deletion is a soft delete:
// the record keeps existing but disappears from every read.
type UserHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewUserHandler(cfg config.Config, users UserStore) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users}
}

// userResp is the public shape of a user; the password hash never leaves
// the repository layer.
type userResp struct {
	ID       uint64 `json:"_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
	Birthday string `json:"birthday,omitempty"`
}

func toUserResp(u model.User) userResp {
	r := userResp{ID: u.ID, Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin}
	if u.Birthday != nil {
		r.Birthday = u.Birthday.Format("2006-01-02")
	}
	return r
}

type createUserReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Birthday string `json:"birthday"`
	IsAdmin  bool   `json:"isAdmin"`
}

// Create handles POST /users.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return webutil.Fail(c, nil, "Requisição inválida")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return webutil.Fail(c, nil, "E-mail e senha são obrigatórios")
	}
	if !emailRe.MatchString(req.Email) {
		return webutil.Fail(c, nil, "E-mail inválido")
	}
	var birthday *time.Time
	if req.Birthday != "" {
		d, err := time.Parse("2006-01-02", req.Birthday)
		if err != nil {
			return webutil.Fail(c, nil, "Data de nascimento inválida")
		}
		birthday = &d
	}
	uid, err := h.Users.Create(c.Request().Context(), strings.TrimSpace(req.Name),
		req.Email, req.Password, birthday, req.IsAdmin, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return webutil.Fail(c, nil, "O e-mail informado já foi cadastrado")
		}
		return webutil.Fail(c, nil, err.Error())
	}
	resp := userResp{ID: uid, Name: req.Name, Email: req.Email, IsAdmin: req.IsAdmin, Birthday: req.Birthday}
	return webutil.OK(c, resp, "User created successfuly")
}

// ReadOne handles GET /users/:id. A soft-deleted user reads as removed.
func (h *UserHandler) ReadOne(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return webutil.Fail(c, nil, "Identificador inválido")
	}
	u, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return webutil.Fail(c, nil, "User removed")
		}
		return webutil.Fail(c, nil, err.Error())
	}
	return webutil.OK(c, toUserResp(u), "User returned successfully")
}

// ReadAll handles GET /users; only active users are listed.
func (h *UserHandler) ReadAll(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return webutil.Fail(c, []any{}, err.Error())
	}
	resp := make([]userResp, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResp(u))
	}
	return webutil.OK(c, resp, "Users returned successfully")
}

type updateUserReq struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Birthday *string `json:"birthday"`
	IsAdmin  *bool   `json:"isAdmin"`
}

// Update handles PUT /users/:id with a partial update; absent fields are
// left untouched and a new password is re-hashed before storage.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return webutil.Fail(c, nil, "Identificador inválido")
	}
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return webutil.Fail(c, nil, "Requisição inválida")
	}
	upd := repository.UserUpdate{Name: req.Name, Password: req.Password, IsAdmin: req.IsAdmin}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !emailRe.MatchString(email) {
			return webutil.Fail(c, nil, "E-mail inválido")
		}
		upd.Email = &email
	}
	if req.Birthday != nil {
		d, err := time.Parse("2006-01-02", *req.Birthday)
		if err != nil {
			return webutil.Fail(c, nil, "Data de nascimento inválida")
		}
		upd.Birthday = &d
	}
	if err := h.Users.Update(c.Request().Context(), id, upd, h.Cfg.BcryptCost); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return webutil.Fail(c, nil, "User removed")
		case errors.Is(err, repository.ErrEmailExists):
			return webutil.Fail(c, nil, "O e-mail informado já foi cadastrado")
		default:
			return webutil.Fail(c, nil, err.Error())
		}
	}
	u, err := h.Users.GetByID(c.Request().Context(), id)
	if err != nil {
		return webutil.Fail(c, nil, err.Error())
	}
	return webutil.OK(c, toUserResp(u), "User updated successfuly")
}

// Delete handles DELETE /users/:id as a soft delete.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return webutil.Fail(c, nil, "Identificador inválido")
	}
	if err := h.Users.SoftDelete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return webutil.Fail(c, nil, "User removed")
		}
		return webutil.Fail(c, nil, err.Error())
	}
	return webutil.OK(c, map[string]any{}, "User deleted successfuly")
}
