// Package api реализует HTTP-слой сервера notekeeper.
//
// Пакет отвечает за:
//   - обработку входящих запросов и формирование ответов (JSON, статусы);
//   - маппинг доменных ошибок (service/repository) в HTTP-коды и сообщения;
//   - логирование непредвиденных ошибок.
//
// Маршруты регистрируются в internal/server/net/http.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/IvanChernomyrdin/go-notekeeper/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-notekeeper/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-notekeeper/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-notekeeper/internal/shared/logger"
)

// Каждый метод если будет возвращать ответ то будет это делать в JSON
// Вынес Content-Type и JSON для удобства
const (
	JSONContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// Тексты ошибок, которые уходят клиенту
const (
	MsgNotFound       = "Not Found"
	MsgNotAllowed     = "Not Allowed"
	MsgInternal       = "Internal Server Error"
	MsgBadJSON        = "Invalid JSON body"
	MsgEmailExists    = "Email already exists"
	MsgWrongCreds     = "Wrong Credentials"
	MsgNoteDeleted    = "Note has been deleted"
	MsgServiceHealthy = "ok"
)

// ErrorResponse стандартный формат ошибки API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - HealthDB: проверка доступности хранилища для /health;
//   - Log: логгер для записи событий и ошибок;
//   - Verifier: гейт аутентификации для защищённых маршрутов.
type Handler struct {
	Svc      *service.Services
	HealthDB service.HealthRepo
	Log      *logger.HTTPLogger
	Verifier *middleware.JWTVerifier
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
// nil-логгер заменяется на Nop.
func NewHandler(svc *service.Services, health service.HealthRepo, log *logger.HTTPLogger, verifier *middleware.JWTVerifier) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{
		Svc:      svc,
		HealthDB: health,
		Log:      log,
		Verifier: verifier,
	}
}

// WriteJSON пишет v в ответ с указанным статусом.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JSONContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Вспомогательная функция вывода ошибки
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorResponse{Error: msg})
}

// decodeJSON разбирает тело запроса в dst. Пустое тело допустимо только при allowEmpty.
func decodeJSON(r *http.Request, dst any, allowEmpty bool) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return nil
	}
	return fmt.Errorf("%w: %v", serr.ErrBadJSON, err)
}

// NotFound - JSON-ответ для несуществующих маршрутов.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, http.StatusNotFound, MsgNotFound)
}
