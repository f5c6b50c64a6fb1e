package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-notekeeper/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-notekeeper/internal/server/models"
	"github.com/IvanChernomyrdin/go-notekeeper/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-notekeeper/internal/shared/errors"
)

// CreateNoteRequest тело запроса создания заметки.
type CreateNoteRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tag         string `json:"tag,omitempty"`
}

// UpdateNoteRequest тело запроса изменения заметки.
// Отсутствующие и пустые поля не меняются.
type UpdateNoteRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Tag         *string `json:"tag,omitempty"`
}

// ValidationErrorResponse: ошибки валидации полей заметки.
type ValidationErrorResponse struct {
	Errors []serr.FieldError `json:"errors"`
}

// DeleteNoteResponse: ответ удаления: сообщение и заметка до удаления.
type DeleteNoteResponse struct {
	Success string      `json:"Success"`
	Note    models.Note `json:"note"`
}

// ListNotes возвращает все заметки текущего пользователя.
//
// @Summary      List notes
// @Description  Returns all notes owned by the authenticated user. Empty list is [].
// @Tags         notes
// @Produce      json
// @Security     AuthToken
// @Success      200 {array} models.Note
// @Failure      401 {object} ErrorResponse "Unauthenticated"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /notes/fetchallnotes [get]
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, middleware.MsgUnauthenticated)
		return
	}

	notes, err := h.Svc.Notes.List(r.Context(), userID)
	if err != nil {
		h.Log.Logger.Sugar().Errorw("list notes failed", "error", err, "user_id", userID.String())
		WriteError(w, http.StatusInternalServerError, MsgInternal)
		return
	}

	WriteJSON(w, http.StatusOK, notes)
}

// CreateNote создаёт заметку, владелец: текущий пользователь.
//
// @Summary      Add note
// @Description  Creates a note for the authenticated user.
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     AuthToken
// @Param        request body CreateNoteRequest true "Note"
// @Success      200 {object} models.Note
// @Failure      400 {object} ValidationErrorResponse "Invalid input"
// @Failure      401 {object} ErrorResponse "Unauthenticated"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /notes/addnote [post]
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, middleware.MsgUnauthenticated)
		return
	}

	var req CreateNoteRequest
	if err := decodeJSON(r, &req, false); err != nil {
		WriteError(w, http.StatusBadRequest, MsgBadJSON)
		return
	}

	note, err := h.Svc.Notes.Create(r.Context(), userID, service.NoteInput{
		Title:       req.Title,
		Description: req.Description,
		Tag:         req.Tag,
	})
	if err != nil {
		var verr *serr.ValidationError
		switch {
		case errors.As(err, &verr):
			WriteJSON(w, http.StatusBadRequest, ValidationErrorResponse{Errors: verr.Fields})
		default:
			h.Log.Logger.Sugar().Errorw("create note failed", "error", err, "user_id", userID.String())
			WriteError(w, http.StatusInternalServerError, MsgInternal)
		}
		return
	}

	WriteJSON(w, http.StatusOK, note)
}

// UpdateNote частично изменяет заметку владельца.
//
// @Summary      Update note
// @Description  Applies supplied non-empty fields to a note owned by the caller.
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     AuthToken
// @Param        id path string true "Note ID"
// @Param        request body UpdateNoteRequest false "Fields to change"
// @Success      200 {object} models.Note
// @Failure      400 {object} ErrorResponse "Bad JSON"
// @Failure      401 {object} ErrorResponse "Unauthenticated or not the owner"
// @Failure      404 {object} ErrorResponse "Note not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /notes/updatenote/{id} [put]
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, middleware.MsgUnauthenticated)
		return
	}

	noteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusNotFound, MsgNotFound)
		return
	}

	var req UpdateNoteRequest
	// пустое тело: нечего менять
	if err := decodeJSON(r, &req, true); err != nil {
		WriteError(w, http.StatusBadRequest, MsgBadJSON)
		return
	}

	note, err := h.Svc.Notes.Update(r.Context(), userID, noteID, models.NoteUpdate{
		Title:       req.Title,
		Description: req.Description,
		Tag:         req.Tag,
	})
	if err != nil {
		h.writeNoteError(w, "update note failed", err, userID, noteID)
		return
	}

	WriteJSON(w, http.StatusOK, note)
}

// DeleteNote удаляет заметку владельца.
//
// @Summary      Delete note
// @Description  Deletes a note owned by the caller and returns its prior state.
// @Tags         notes
// @Produce      json
// @Security     AuthToken
// @Param        id path string true "Note ID"
// @Success      200 {object} DeleteNoteResponse
// @Failure      401 {object} ErrorResponse "Unauthenticated or not the owner"
// @Failure      404 {object} ErrorResponse "Note not found"
// @Failure      500 {object} ErrorResponse "Internal server error"
// @Router       /notes/deletenote/{id} [delete]
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, middleware.MsgUnauthenticated)
		return
	}

	noteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusNotFound, MsgNotFound)
		return
	}

	note, err := h.Svc.Notes.Delete(r.Context(), userID, noteID)
	if err != nil {
		h.writeNoteError(w, "delete note failed", err, userID, noteID)
		return
	}

	WriteJSON(w, http.StatusOK, DeleteNoteResponse{Success: MsgNoteDeleted, Note: note})
}

func (h *Handler) writeNoteError(w http.ResponseWriter, msg string, err error, userID, noteID uuid.UUID) {
	switch {
	case errors.Is(err, serr.ErrNotFound):
		WriteError(w, http.StatusNotFound, MsgNotFound)
	case errors.Is(err, serr.ErrForbidden):
		WriteError(w, http.StatusUnauthorized, MsgNotAllowed)
	default:
		h.Log.Logger.Sugar().Errorw(msg,
			"error", err,
			"user_id", userID.String(),
			"note_id", noteID.String(),
		)
		WriteError(w, http.StatusInternalServerError, MsgInternal)
	}
}
