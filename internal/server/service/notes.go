package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-notekeeper/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-notekeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-notekeeper/internal/shared/utils"
)

// NotesService реализует бизнес-логику работы с заметками.
// Сервис:
//   - валидирует входные данные;
//   - проверяет, что изменяемая заметка принадлежит вызывающему;
//   - не знает о HTTP и БД напрямую.
type NotesService struct {
	repo NotesRepo
}

// NewNotesService создаёт новый NotesService.
func NewNotesService(repo NotesRepo) *NotesService {
	return &NotesService{repo: repo}
}

// List возвращает все заметки пользователя.
func (s *NotesService) List(ctx context.Context, userID uuid.UUID) ([]models.Note, error) {
	notes, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return notes, nil
}

// Create создаёт заметку, владелец: userID.
//
// Ошибки:
//   - *serr.ValidationError: title короче 3 или description короче 5 символов;
//   - ErrInternal: ошибка хранилища.
func (s *NotesService) Create(ctx context.Context, userID uuid.UUID, in NoteInput) (models.Note, error) {
	if err := validateInput(in); err != nil {
		return models.Note{}, err
	}

	return s.repo.Create(ctx, models.Note{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Tag:         in.Tag,
	})
}

// Update частично обновляет заметку владельца.
//
// Пустые строки считаются "не передано", как и nil.
//
// Ошибки:
//   - ErrNotFound: заметки нет;
//   - ErrForbidden: заметка чужая;
//   - ErrInternal: ошибка хранилища.
func (s *NotesService) Update(ctx context.Context, userID, noteID uuid.UUID, upd models.NoteUpdate) (models.Note, error) {
	if _, err := s.ownedNote(ctx, userID, noteID); err != nil {
		return models.Note{}, err
	}

	upd = models.NoteUpdate{
		Title:       nonEmpty(upd.Title),
		Description: nonEmpty(upd.Description),
		Tag:         nonEmpty(upd.Tag),
	}
	return s.repo.Update(ctx, noteID, upd)
}

// Delete удаляет заметку владельца и возвращает её прежнее состояние.
func (s *NotesService) Delete(ctx context.Context, userID, noteID uuid.UUID) (models.Note, error) {
	if _, err := s.ownedNote(ctx, userID, noteID); err != nil {
		return models.Note{}, err
	}
	return s.repo.Delete(ctx, noteID)
}

// ownedNote находит заметку и проверяет владельца.
func (s *NotesService) ownedNote(ctx context.Context, userID, noteID uuid.UUID) (models.Note, error) {
	note, err := s.repo.GetByID(ctx, noteID)
	if err != nil {
		return models.Note{}, err
	}
	if note.UserID != userID {
		return models.Note{}, serr.ErrForbidden
	}
	return note, nil
}

func nonEmpty(p *string) *string {
	if utils.Deref(p) == "" {
		return nil
	}
	return p
}
