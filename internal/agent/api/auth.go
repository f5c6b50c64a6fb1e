// В этом файле описаны методы клиента для эндпоинтов аутентификации:
// регистрация, вход и получение текущего пользователя.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// ErrNoToken сервер ответил успехом, но не вернул токен.
var ErrNoToken = errors.New("server returned no auth token")

// RegisterRequest тело запроса /auth/createuser.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest тело запроса /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse ответ register/login.
type AuthResponse struct {
	Success   bool   `json:"success"`
	AuthToken string `json:"authtoken"`
}

// User публичные данные пользователя.
type User struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Date  time.Time `json:"date"`
}

// Register создаёт аккаунт и возвращает токен сессии.
// Токен также запоминается в клиенте.
func (c *Client) Register(ctx context.Context, name, email, password string) (string, error) {
	return c.authenticate(ctx, "/auth/createuser", RegisterRequest{Name: name, Email: email, Password: password})
}

// Login выполняет вход и возвращает токен сессии.
// Токен также запоминается в клиенте.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	return c.authenticate(ctx, "/auth/login", LoginRequest{Email: email, Password: password})
}

func (c *Client) authenticate(ctx context.Context, path string, req any) (string, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return "", err
	}
	if resp.AuthToken == "" {
		return "", ErrNoToken
	}
	c.token = resp.AuthToken
	return resp.AuthToken, nil
}

// Me возвращает пользователя, которому принадлежит токен.
func (c *Client) Me(ctx context.Context) (User, error) {
	var u User
	err := c.do(ctx, http.MethodPost, "/auth/getuser", nil, &u)
	return u, err
}
