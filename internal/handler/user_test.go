package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pygus/pygus-backend/internal/utils"
)

func TestCreateUserAndReadBack(t *testing.T) {
	users := newFakeUserStore()
	h := NewUserHandler(testConfig(), users)

	env := doReq(t, h.Create, http.MethodPost, "/users",
		`{"name":"Ana","email":"Ana@Example.com","password":"segredo","birthday":"2015-03-20"}`)
	require.Equal(t, 200, env.Code, env.Message)

	env = doReq(t, h.ReadOne, http.MethodGet, "/users/1", "", "id", "1")
	require.Equal(t, 200, env.Code, env.Message)
	data := env.Data.(map[string]any)
	assert.Equal(t, "Ana", data["name"])
	// Email is stored lowercased.
	assert.Equal(t, "ana@example.com", data["email"])
	assert.Equal(t, "2015-03-20", data["birthday"])
	assert.NotContains(t, data, "password")
}

func TestCreateUserRejectsBadBirthday(t *testing.T) {
	h := NewUserHandler(testConfig(), newFakeUserStore())
	env := doReq(t, h.Create, http.MethodPost, "/users",
		`{"name":"Ana","email":"ana@example.com","password":"x1","birthday":"20/03/2015"}`)
	assert.Equal(t, 400, env.Code)
}

func TestDeleteUserIsSoft(t *testing.T) {
	users := newFakeUserStore()
	h := NewUserHandler(testConfig(), users)

	doReq(t, h.Create, http.MethodPost, "/users", `{"name":"Ana","email":"ana@example.com","password":"x1"}`)
	env := doReq(t, h.Delete, http.MethodDelete, "/users/1", "", "id", "1")
	require.Equal(t, 200, env.Code, env.Message)

	// The row survives but every read reports the user as removed.
	assert.Equal(t, 1, users.count())
	env = doReq(t, h.ReadOne, http.MethodGet, "/users/1", "", "id", "1")
	assert.Equal(t, 400, env.Code)
	assert.Equal(t, "User removed", env.Message)

	env = doReq(t, h.ReadAll, http.MethodGet, "/users", "")
	require.Equal(t, 200, env.Code)
	assert.Empty(t, env.Data)
}

func TestUpdateUserPartial(t *testing.T) {
	users := newFakeUserStore()
	h := NewUserHandler(testConfig(), users)

	doReq(t, h.Create, http.MethodPost, "/users", `{"name":"Ana","email":"ana@example.com","password":"old"}`)
	env := doReq(t, h.Update, http.MethodPut, "/users/1", `{"password":"new"}`, "id", "1")
	require.Equal(t, 200, env.Code, env.Message)

	// Untouched fields survive and the new password is hashed.
	data := env.Data.(map[string]any)
	assert.Equal(t, "Ana", data["name"])
	u, err := users.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, utils.VerifyPassword(u.PasswordHash, "new"))
	assert.False(t, utils.VerifyPassword(u.PasswordHash, "old"))
}

func TestUpdateDeletedUserFails(t *testing.T) {
	users := newFakeUserStore()
	h := NewUserHandler(testConfig(), users)

	doReq(t, h.Create, http.MethodPost, "/users", `{"name":"Ana","email":"ana@example.com","password":"x1"}`)
	doReq(t, h.Delete, http.MethodDelete, "/users/1", "", "id", "1")

	env := doReq(t, h.Update, http.MethodPut, "/users/1", `{"name":"Outra"}`, "id", "1")
	assert.Equal(t, 400, env.Code)
	assert.Equal(t, "User removed", env.Message)
}
