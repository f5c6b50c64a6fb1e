// HTTP-хендлеры регистрации, логина и текущего пользователя
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/IvanChernomyrdin/go-notekeeper/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-notekeeper/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-notekeeper/internal/shared/errors"
)

// RegisterRequest описывает тело запроса регистрации пользователя.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest описывает тело запроса входа пользователя.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse: ответ register/login. При ошибке заполнен Error или Errors.
type AuthResponse struct {
	Success   bool              `json:"success"`
	AuthToken string            `json:"authtoken,omitempty"`
	Error     string            `json:"error,omitempty"`
	Errors    []serr.FieldError `json:"errors,omitempty"`
}

// UserResponse: публичное представление пользователя, без хэша пароля.
type UserResponse struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Date  time.Time `json:"date"`
}

// Register обрабатывает регистрацию пользователя.
//
// Ответы:
//   - 200 OK: регистрация успешна, в ответе токен;
//   - 400 Bad Request: неверный JSON, невалидные поля или email уже занят;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Register user
// @Description  Creates an account and returns a session token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Register request"
// @Success      200 {object} AuthResponse
// @Failure      400 {object} AuthResponse "Invalid input or email already exists"
// @Failure      500 {object} AuthResponse "Internal server error"
// @Router       /auth/createuser [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req, false); err != nil {
		WriteJSON(w, http.StatusBadRequest, AuthResponse{Error: MsgBadJSON})
		return
	}

	token, err := h.Svc.Auth.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		var verr *serr.ValidationError
		switch {
		case errors.As(err, &verr):
			WriteJSON(w, http.StatusBadRequest, AuthResponse{Errors: verr.Fields})
		case errors.Is(err, serr.ErrAlreadyExists):
			WriteJSON(w, http.StatusBadRequest, AuthResponse{Error: MsgEmailExists})
		default:
			h.Log.Logger.Sugar().Errorw("register failed", "error", err)
			WriteJSON(w, http.StatusInternalServerError, AuthResponse{Error: MsgInternal})
		}
		return
	}

	WriteJSON(w, http.StatusOK, AuthResponse{Success: true, AuthToken: token})
}

// Login обрабатывает вход пользователя и выдачу токена.
//
// Ответы:
//   - 200 OK: успешный вход;
//   - 400 Bad Request: неверный JSON, невалидные поля или неверные учётные данные;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Login
// @Description  Authenticates by email and password and returns a session token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login request"
// @Success      200 {object} AuthResponse
// @Failure      400 {object} AuthResponse "Invalid input or wrong credentials"
// @Failure      500 {object} AuthResponse "Internal server error"
// @Router       /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req, false); err != nil {
		WriteJSON(w, http.StatusBadRequest, AuthResponse{Error: MsgBadJSON})
		return
	}

	token, err := h.Svc.Auth.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		var verr *serr.ValidationError
		switch {
		case errors.As(err, &verr):
			WriteJSON(w, http.StatusBadRequest, AuthResponse{Errors: verr.Fields})
		case errors.Is(err, serr.ErrInvalidCredentials):
			WriteJSON(w, http.StatusBadRequest, AuthResponse{Error: MsgWrongCreds})
		default:
			h.Log.Logger.Sugar().Errorw("login failed", "error", err)
			WriteJSON(w, http.StatusInternalServerError, AuthResponse{Error: MsgInternal})
		}
		return
	}

	WriteJSON(w, http.StatusOK, AuthResponse{Success: true, AuthToken: token})
}

// GetUser возвращает профиль текущего пользователя.
//
// @Summary      Current user
// @Description  Returns the profile of the authenticated user. Never includes the password hash.
// @Tags         auth
// @Produce      json
// @Security     AuthToken
// @Success      200 {object} UserResponse
// @Failure      401 {object} ErrorResponse "Unauthenticated"
// @Failure      404 {object} ErrorResponse "User no longer exists"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /auth/getuser [post]
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, middleware.MsgUnauthenticated)
		return
	}

	user, err := h.Svc.Auth.GetUser(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, serr.ErrNotFound):
			WriteError(w, http.StatusNotFound, MsgNotFound)
		default:
			h.Log.Logger.Sugar().Errorw("get user failed", "error", err, "user_id", userID.String())
			WriteError(w, http.StatusInternalServerError, MsgInternal)
		}
		return
	}

	WriteJSON(w, http.StatusOK, UserResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Date:  user.CreatedAt,
	})
}
