// Package service содержит бизнес-логику приложения (notekeeper).
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-notekeeper/internal/server/models"
)

// Repositories: набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users UsersRepo
	Notes NotesRepo
}

// Services: агрегатор всех сервисов приложения.
type Services struct {
	Auth  *AuthService
	Notes *NotesService
}

// NewServices собирает все сервисы приложения.
func NewServices(repos Repositories, hasher PasswordHasher, tokens TokenIssuer) *Services {
	return &Services{
		Auth:  NewAuthService(repos.Users, hasher, tokens),
		Notes: NewNotesService(repos.Notes),
	}
}

// HealthRepo: минимально нужное для health-check.
type HealthRepo interface {
	Ping(ctx context.Context) error
}

// UsersRepo: хранилище учётных записей (нужно для register/login/getuser).
type UsersRepo interface {
	Create(ctx context.Context, name, email, passwordHash string) (models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.User, error)
}

// NotesRepo: хранилище заметок.
type NotesRepo interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Note, error)
	Create(ctx context.Context, note models.Note) (models.Note, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.Note, error)
	Update(ctx context.Context, id uuid.UUID, upd models.NoteUpdate) (models.Note, error)
	Delete(ctx context.Context, id uuid.UUID) (models.Note, error)
}

// PasswordHasher: одностороннее хэширование пароля с солью.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// TokenIssuer выпускает подписанный токен сессии для пользователя.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}
