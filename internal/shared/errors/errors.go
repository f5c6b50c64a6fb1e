// Package errors содержит общие доменные ошибки приложения
// и утилиты для error wrapping.
//
// Эти ошибки используются в service и repository слоях
// и маппятся на HTTP-статусы в api слое.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Входные данные невалидны (короткие поля, неправильный email и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Неверные учётные данные, причину не раскрываем
	ErrInvalidCredentials = errors.New("invalid credentials")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Тело запроса не удалось разобрать как JSON
	ErrBadJSON = errors.New("bad json")
	// Токен отсутствует или не прошёл проверку
	ErrUnauthenticated = errors.New("unauthenticated")
	// Токен валиден, но ресурс принадлежит другому пользователю
	ErrForbidden = errors.New("forbidden")
	// Ресурс уже существует (например email уже занят)
	ErrAlreadyExists = errors.New("already exists")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
)

// FieldError описывает ошибку валидации одного поля запроса.
//
// Формат совместим с клиентами, которые ждут массив errors вида
// {"value": ..., "msg": ..., "param": ..., "location": "body"}.
type FieldError struct {
	Value    any    `json:"value"`
	Msg      string `json:"msg"`
	Param    string `json:"param"`
	Location string `json:"location"`
}

// ValidationError: набор ошибок валидации входных данных.
//
// errors.Is(err, ErrInvalidInput) для неё возвращает true.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	params := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		params = append(params, f.Param)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), strings.Join(params, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// Internal оборачивает непредвиденную ошибку в ErrInternal, сохраняя причину для логов.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInternal, err)
}
