package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-notekeeper/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-notekeeper/internal/shared/errors"
)

// AuthService реализует бизнес-логику аутентификации.
//
// Ответственность:
//   - регистрация пользователей
//   - аутентификация (логин)
//   - выпуск токена сессии
//   - получение текущего пользователя
type AuthService struct {
	users  UsersRepo
	hasher PasswordHasher
	tokens TokenIssuer
}

// NewAuthService создаёт AuthService. Ключ подписи живёт внутри tokens.
func NewAuthService(users UsersRepo, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Register регистрирует нового пользователя и сразу выдаёт токен.
//
// Валидация:
//   - name не короче 3 символов
//   - email валидный
//   - пароль не короче 5 символов и не длиннее 72 байт (предел bcrypt)
//
// Ошибки:
//   - *serr.ValidationError (ErrInvalidInput) при некорректных данных
//   - ErrAlreadyExists если email уже зарегистрирован
//   - ErrInternal при сбое хранилища или хэширования
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return "", err
	}

	// проверка не атомарна с созданием, гонку ловит уникальный индекс в БД
	exists, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", serr.ErrAlreadyExists
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", serr.Internal(err)
	}

	user, err := s.users.Create(ctx, in.Name, in.Email, hash)
	if err != nil {
		return "", err
	}
	return s.issue(user.ID)
}

// Login аутентифицирует пользователя и выдаёт токен.
//
// Не раскрывает факт существования email: и для неизвестного email,
// и для неверного пароля возвращается ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validateInput(in); err != nil {
		return "", err
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		// не палим существование email
		if errors.Is(err, serr.ErrNotFound) {
			return "", serr.ErrInvalidCredentials
		}
		return "", err
	}

	ok, err := s.hasher.Verify(in.Password, user.PasswordHash)
	if err != nil {
		return "", serr.Internal(err)
	}
	if !ok {
		return "", serr.ErrInvalidCredentials
	}
	return s.issue(user.ID)
}

// GetUser возвращает пользователя по id из токена.
//
// Если пользователя уже нет (токен пережил учётную запись) - ErrNotFound.
func (s *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (models.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *AuthService) issue(userID uuid.UUID) (string, error) {
	token, err := s.tokens.Issue(userID.String())
	if err != nil {
		return "", serr.Internal(err)
	}
	return token, nil
}
