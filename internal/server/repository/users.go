// Package repository содержит реализации слоя доступа к данным (Repository layer).
//
// Репозитории инкапсулируют работу с БД и не содержат бизнес-логики.
// Все ошибки приводятся к доменным ошибкам из internal/shared/errors.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"

	"github.com/IvanChernomyrdin/go-notekeeper/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-notekeeper/internal/shared/errors"
)

// UsersRepository хранит учётные записи пользователей (PostgreSQL).
type UsersRepository struct {
	db *sql.DB
}

func NewUsersRepository(db *sql.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// Create сохраняет пользователя и возвращает запись с id и датой создания.
//
// Нарушение уникального индекса по email превращается в ErrAlreadyExists:
// это страхует гонку двух одновременных регистраций.
func (r *UsersRepository) Create(ctx context.Context, name, email, passwordHash string) (models.User, error) {
	u := models.User{Name: name, Email: email, PasswordHash: passwordHash}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password_hash)
		 VALUES ($1,$2,$3)
		 RETURNING id, created_at`,
		name, email, passwordHash,
	).Scan(&u.ID, &u.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, serr.ErrAlreadyExists
		}
		return models.User{}, serr.Internal(err)
	}

	return u, nil
}

// ExistsByEmail проверяет, занят ли email.
func (r *UsersRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email=$1)`,
		email,
	).Scan(&exists)
	if err != nil {
		return false, serr.Internal(err)
	}
	return exists, nil
}

func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return r.getOne(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email=$1`,
		email,
	)
}

func (r *UsersRepository) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	return r.getOne(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE id=$1`,
		id,
	)
}

func (r *UsersRepository) getOne(ctx context.Context, query string, arg any) (models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, serr.ErrNotFound
		}
		return models.User{}, serr.Internal(err)
	}
	return u, nil
}

// isUniqueViolation: ошибка postgres 23505.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
