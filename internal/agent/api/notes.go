package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"
)

// ErrEmptyID не указан идентификатор заметки.
var ErrEmptyID = errors.New("note id is required")

// Note заметка в том виде, в котором её отдаёт сервер.
type Note struct {
	ID          string    `json:"id"`
	User        string    `json:"user"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tag         string    `json:"tag"`
	Date        time.Time `json:"date"`
}

// NoteInput тело запроса создания заметки.
type NoteInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tag         string `json:"tag,omitempty"`
}

// NoteUpdate частичное обновление; nil поля не отправляются.
type NoteUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Tag         *string `json:"tag,omitempty"`
}

type deleteNoteResponse struct {
	Success string `json:"Success"`
	Note    Note   `json:"note"`
}

// ListNotes возвращает все заметки текущего пользователя.
func (c *Client) ListNotes(ctx context.Context) ([]Note, error) {
	notes := []Note{}
	if err := c.do(ctx, http.MethodGet, "/notes/fetchallnotes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// AddNote создаёт заметку.
func (c *Client) AddNote(ctx context.Context, in NoteInput) (Note, error) {
	var n Note
	err := c.do(ctx, http.MethodPost, "/notes/addnote", in, &n)
	return n, err
}

// UpdateNote обновляет заметку id и возвращает её новое состояние.
func (c *Client) UpdateNote(ctx context.Context, id string, upd NoteUpdate) (Note, error) {
	if id == "" {
		return Note{}, ErrEmptyID
	}
	var n Note
	err := c.do(ctx, http.MethodPut, "/notes/updatenote/"+url.PathEscape(id), upd, &n)
	return n, err
}

// DeleteNote удаляет заметку id и возвращает удалённую запись.
func (c *Client) DeleteNote(ctx context.Context, id string) (Note, error) {
	if id == "" {
		return Note{}, ErrEmptyID
	}
	var resp deleteNoteResponse
	if err := c.do(ctx, http.MethodDelete, "/notes/deletenote/"+url.PathEscape(id), nil, &resp); err != nil {
		return Note{}, err
	}
	return resp.Note, nil
}

// Health проверяет доступность сервера.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}
