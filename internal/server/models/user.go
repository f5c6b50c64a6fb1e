// Серверные модели пользователя и заметки
package models

import (
	"time"

	"github.com/google/uuid"
)

// User: учётная запись. PasswordHash никогда не попадает в JSON.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"date"`
}
