package models

import (
	"time"

	"github.com/google/uuid"
)

// Note: заметка пользователя. UserID (владелец) не меняется после создания.
type Note struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tag         string    `json:"tag"`
	CreatedAt   time.Time `json:"date"`
}

// NoteUpdate: частичное обновление заметки: nil означает "не менять".
type NoteUpdate struct {
	Title       *string
	Description *string
	Tag         *string
}

// Empty сообщает, что обновлять нечего.
func (u NoteUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Tag == nil
}
