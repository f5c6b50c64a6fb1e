package repository

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-notekeeper/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-notekeeper/internal/shared/errors"
)

const noteColumns = "id, user_id, title, description, tag, created_at"

// NotesRepository реализует доступ к хранилищу заметок (PostgreSQL).
// Отвечает исключительно за сохранение и извлечение данных без бизнес-логики:
// проверка владельца делается в сервисе.
type NotesRepository struct {
	db *sql.DB
	qb sq.StatementBuilderType
}

// NewNotesRepository создаёт новый экземпляр NotesRepository.
func NewNotesRepository(db *sql.DB) *NotesRepository {
	return &NotesRepository{
		db: db,
		qb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ListByUser возвращает все заметки пользователя. Пустой результат: пустой слайс.
func (r *NotesRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+noteColumns+`
		   FROM notes
		  WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, serr.Internal(err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Description, &n.Tag, &n.CreatedAt); err != nil {
			return nil, serr.Internal(err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, serr.Internal(err)
	}
	return notes, nil
}

// Create сохраняет новую заметку и возвращает её вместе с id и датой.
func (r *NotesRepository) Create(ctx context.Context, note models.Note) (models.Note, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO notes (user_id, title, description, tag)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`,
		note.UserID,
		note.Title,
		note.Description,
		note.Tag,
	).Scan(&note.ID, &note.CreatedAt)

	if err != nil {
		return models.Note{}, serr.Internal(err)
	}
	return note, nil
}

// GetByID возвращает заметку по id. ErrNotFound, если её нет.
func (r *NotesRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Note, error) {
	var n models.Note
	err := r.db.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = $1`,
		id,
	).Scan(&n.ID, &n.UserID, &n.Title, &n.Description, &n.Tag, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, serr.ErrNotFound
		}
		return models.Note{}, serr.Internal(err)
	}
	return n, nil
}

// Update применяет частичное обновление и возвращает заметку после изменения.
//
// Меняются только поля, заданные в upd. Если менять нечего,
// возвращается текущее состояние заметки.
func (r *NotesRepository) Update(ctx context.Context, id uuid.UUID, upd models.NoteUpdate) (models.Note, error) {
	if upd.Empty() {
		return r.GetByID(ctx, id)
	}

	b := r.qb.Update("notes")
	if upd.Title != nil {
		b = b.Set("title", *upd.Title)
	}
	if upd.Description != nil {
		b = b.Set("description", *upd.Description)
	}
	if upd.Tag != nil {
		b = b.Set("tag", *upd.Tag)
	}

	query, args, err := b.
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + noteColumns).
		ToSql()
	if err != nil {
		return models.Note{}, serr.Internal(err)
	}

	var n models.Note
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&n.ID, &n.UserID, &n.Title, &n.Description, &n.Tag, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, serr.ErrNotFound
		}
		return models.Note{}, serr.Internal(err)
	}
	return n, nil
}

// Delete удаляет заметку и возвращает её состояние до удаления.
func (r *NotesRepository) Delete(ctx context.Context, id uuid.UUID) (models.Note, error) {
	var n models.Note
	err := r.db.QueryRowContext(ctx,
		`DELETE FROM notes WHERE id = $1 RETURNING `+noteColumns,
		id,
	).Scan(&n.ID, &n.UserID, &n.Title, &n.Description, &n.Tag, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, serr.ErrNotFound
		}
		return models.Note{}, serr.Internal(err)
	}
	return n, nil
}

// Ping проверяет доступность БД (для /health).
func (r *NotesRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return serr.Internal(err)
	}
	return nil
}
