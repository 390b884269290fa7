package handler

import (
	"errors"  // sentinel comparison against repository errors
	"regexp"  // email format validation
	"strings" // trimming and case folding
	"time"    // birthday parsing

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/pygus/pygus-backend/internal/config"
	"github.com/pygus/pygus-backend/internal/model"
	"github.com/pygus/pygus-backend/internal/repository"
	"github.com/pygus/pygus-backend/internal/utils"
	"github.com/pygus/pygus-backend/internal/webutil"
)

// AuthHandler bundles dependencies for the register/login endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

var emailRe = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Birthday string `json:"birthday"` // YYYY-MM-DD, optional
	IsAdmin  bool   `json:"isAdmin"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResp mirrors what the mobile client expects after register/login: the
// identity plus the bearer token in one flat object.
type authResp struct {
	ID      uint64 `json:"_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token"`
}

// Register creates a user and returns a token immediately. The email must
// not belong to any active user; the password is hashed before it is stored
// and never echoed back.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
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

	tok, err := utils.NewBearerToken(h.Cfg.JWTSecret, uid, req.Email, req.Name, h.Cfg.TokenTTLMin)
	if err != nil {
		return webutil.Fail(c, nil, err.Error())
	}

	return webutil.OK(c, authResp{
		ID:      uid,
		Email:   req.Email,
		Name:    req.Name,
		IsAdmin: req.IsAdmin,
		Token:   tok.Token,
	}, "Usuário cadastrado com sucesso")
}

// Login verifies credentials and returns a fresh token. Existing clients
// key on the distinct "user not found" and "wrong password" messages, so
// both texts stay even though the distinction leaks email existence.
func (h *AuthHandler) Login(c echo.Context) error {
	return h.login(c, false)
}

// LoginAdmin is Login with an additional admin-flag requirement.
func (h *AuthHandler) LoginAdmin(c echo.Context) error {
	return h.login(c, true)
}

func (h *AuthHandler) login(c echo.Context, adminOnly bool) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return webutil.Fail(c, nil, "Requisição inválida")
	}
	u, err := h.Users.GetByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return webutil.Fail(c, nil, "Usuário não encontrado")
		}
		return webutil.Fail(c, nil, err.Error())
	}
	if adminOnly && !u.IsAdmin {
		return webutil.Fail(c, nil, "Usuário não é administrador")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return webutil.Fail(c, nil, "Senha incorreta")
	}
	return h.issue(c, u)
}

func (h *AuthHandler) issue(c echo.Context, u model.User) error {
	tok, err := utils.NewBearerToken(h.Cfg.JWTSecret, u.ID, u.Email, u.Name, h.Cfg.TokenTTLMin)
	if err != nil {
		return webutil.Fail(c, nil, err.Error())
	}
	return webutil.OK(c, authResp{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		IsAdmin: u.IsAdmin,
		Token:   tok.Token,
	}, "Usuário logado com sucesso")
}
