package tests

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/IvanChernomyrdin/go-notekeeper/internal/server/api"
	crypt "github.com/IvanChernomyrdin/go-notekeeper/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-notekeeper/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-notekeeper/internal/shared/errors"
)

func TestHandler_Register_BadJSON(t *testing.T) {
	t.Parallel()

	h, _ := NewTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/createuser", bytes.NewBufferString("{bad json"))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[api.AuthResponse](t, rec)
	require.False(t, resp.Success)
	require.Equal(t, api.MsgBadJSON, resp.Error)
}

func TestHandler_Register_Success(t *testing.T) {
	t.Parallel()

	h, deps := NewTestHandler(t)
	userID := uuid.New()

	deps.Users.EXPECT().ExistsByEmail(gomock.Any(), "alice@example.com").Return(false, nil)
	deps.Users.EXPECT().
		Create(gomock.Any(), "Alice", "alice@example.com", gomock.Any()).
		DoAndReturn(func(_ context.Context, name, email, hash string) (models.User, error) {
			if hash == "" || hash == "secret1" {
				t.Fatalf("expected password hash, got %q", hash)
			}
			return models.User{ID: userID, Name: name, Email: email, PasswordHash: hash}, nil
		})

	req := httptest.NewRequest(http.MethodPost, "/auth/createuser",
		jsonBody(t, api.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "secret1"}))
	req.Header.Set(api.ContentType, api.JSONContentType)
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, api.JSONContentType, rec.Header().Get(api.ContentType))

	resp := decode[api.AuthResponse](t, rec)
	require.True(t, resp.Success)

	got, err := deps.Codec.Parse(resp.AuthToken)
	require.NoError(t, err)
	require.Equal(t, userID.String(), got)
}

func TestHandler_Register_ValidationErrors(t *testing.T) {
	t.Parallel()

	h, _ := NewTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/createuser",
		jsonBody(t, api.RegisterRequest{Name: "Al", Email: "nope", Password: "123"}))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[api.AuthResponse](t, rec)
	require.False(t, resp.Success)
	require.Empty(t, resp.AuthToken)
	require.Len(t, resp.Errors, 3)
	require.Equal(t, "name", resp.Errors[0].Param)
	require.Equal(t, "Al", resp.Errors[0].Value)
	require.Equal(t, "body", resp.Errors[0].Location)
}

func TestHandler_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	h, deps := NewTestHandler(t)
	deps.Users.EXPECT().ExistsByEmail(gomock.Any(), "alice@example.com").Return(true, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/createuser",
		jsonBody(t, api.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "secret1"}))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[api.AuthResponse](t, rec)
	require.False(t, resp.Success)
	require.Equal(t, api.MsgEmailExists, resp.Error)
}

// внутренняя причина не уходит клиенту
func TestHandler_Register_InternalError(t *testing.T) {
	t.Parallel()

	h, deps := NewTestHandler(t)
	deps.Users.EXPECT().ExistsByEmail(gomock.Any(), gomock.Any()).
		Return(false, serr.Internal(errors.New("connection refused")))

	req := httptest.NewRequest(http.MethodPost, "/auth/createuser",
		jsonBody(t, api.RegisterRequest{Name: "Alice", Email: "alice@example.com", Password: "secret1"}))
	rec := httptest.NewRecorder()

	h.Register(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.False(t, strings.Contains(rec.Body.String(), "connection refused"))
	resp := decode[api.AuthResponse](t, rec)
	require.Equal(t, api.MsgInternal, resp.Error)
}

func TestHandler_Login_Success(t *testing.T) {
	t.Parallel()

	h, deps := NewTestHandler(t)
	userID := uuid.New()
	hash, err := crypt.HashPasswordBcrypt("secret1", bcrypt.MinCost)
	require.NoError(t, err)

	deps.Users.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").
		Return(models.User{ID: userID, PasswordHash: hash}, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		jsonBody(t, api.LoginRequest{Email: "alice@example.com", Password: "secret1"}))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[api.AuthResponse](t, rec)
	require.True(t, resp.Success)
	got, err := deps.Codec.Parse(resp.AuthToken)
	require.NoError(t, err)
	require.Equal(t, userID.String(), got)
}

// неизвестный email и неверный пароль дают одинаковый ответ
func TestHandler_Login_WrongCredentialsIndistinguishable(t *testing.T) {
	t.Parallel()

	h, deps := NewTestHandler(t)
	hash, err := crypt.HashPasswordBcrypt("secret1", bcrypt.MinCost)
	require.NoError(t, err)

	deps.Users.EXPECT().GetByEmail(gomock.Any(), "ghost@example.com").Return(models.User{}, serr.ErrNotFound)
	deps.Users.EXPECT().GetByEmail(gomock.Any(), "alice@example.com").
		Return(models.User{ID: uuid.New(), PasswordHash: hash}, nil)

	do := func(email, password string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/login",
			jsonBody(t, api.LoginRequest{Email: email, Password: password}))
		rec := httptest.NewRecorder()
		h.Login(rec, req)
		return rec
	}

	unknown := do("ghost@example.com", "secret1")
	wrong := do("alice@example.com", "bad-password")

	require.Equal(t, http.StatusBadRequest, unknown.Code)
	require.Equal(t, unknown.Code, wrong.Code)
	require.Equal(t, unknown.Body.String(), wrong.Body.String())
	require.Equal(t, api.MsgWrongCreds, decode[api.AuthResponse](t, wrong).Error)
}

func TestHandler_Login_Validation(t *testing.T) {
	t.Parallel()

	h, _ := NewTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		jsonBody(t, api.LoginRequest{Email: "alice@example.com"}))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode[api.AuthResponse](t, rec)
	require.Len(t, resp.Errors, 1)
	require.Equal(t, "password", resp.Errors[0].Param)
	require.Equal(t, "Password cannot be blank", resp.Errors[0].Msg)
}

func TestHandler_GetUser(t *testing.T) {
	t.Parallel()

	h, deps := NewTestHandler(t)
	userID := uuid.New()
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	deps.Users.EXPECT().GetByID(gomock.Any(), userID).Return(models.User{
		ID:           userID,
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$04$secret-hash",
		CreatedAt:    created,
	}, nil)

	req := authed(httptest.NewRequest(http.MethodPost, "/auth/getuser", nil), userID)
	rec := httptest.NewRecorder()

	h.GetUser(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotContains(t, rec.Body.String(), "secret-hash")
	require.NotContains(t, rec.Body.String(), "password")

	resp := decode[api.UserResponse](t, rec)
	require.Equal(t, userID.String(), resp.ID)
	require.Equal(t, "Alice", resp.Name)
	require.Equal(t, "alice@example.com", resp.Email)
	require.True(t, created.Equal(resp.Date))
}

func TestHandler_GetUser_Deleted(t *testing.T) {
	t.Parallel()

	h, deps := NewTestHandler(t)
	userID := uuid.New()
	deps.Users.EXPECT().GetByID(gomock.Any(), userID).Return(models.User{}, serr.ErrNotFound)

	req := authed(httptest.NewRequest(http.MethodPost, "/auth/getuser", nil), userID)
	rec := httptest.NewRecorder()

	h.GetUser(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, api.MsgNotFound, decode[api.ErrorResponse](t, rec).Error)
}

func TestHandler_GetUser_NoUserInContext(t *testing.T) {
	t.Parallel()

	h, _ := NewTestHandler(t)

	rec := httptest.NewRecorder()
	h.GetUser(rec, httptest.NewRequest(http.MethodPost, "/auth/getuser", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
