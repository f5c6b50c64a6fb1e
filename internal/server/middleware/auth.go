// Package middleware содержит HTTP middleware сервера.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	serr "github.com/IvanChernomyrdin/go-notekeeper/internal/shared/errors"
)

// ctxKey используется как тип ключа для хранения значений в context.Context.
// Отдельный тип предотвращает коллизии ключей между пакетами.
type ctxKey string

// userIDKey: ключ контекста, под которым хранится ID аутентифицированного пользователя.
const userIDKey ctxKey = "user_id"

// DefaultAuthHeader: заголовок с токеном по умолчанию.
const DefaultAuthHeader = "auth-token"

// MsgUnauthenticated: текст ответа на любую проблему с токеном.
const MsgUnauthenticated = "Please authenticate using a valid token"

// TokenParser проверяет токен и возвращает id пользователя из него.
type TokenParser interface {
	Parse(token string) (string, error)
}

// JWTVerifier: гейт аутентификации для защищённых маршрутов.
//
// Используется в HTTP middleware для:
//   - извлечения токена из заголовка (auth-token или Authorization: Bearer)
//   - проверки подписи и claims (делает TokenParser)
//   - привязки userID к контексту запроса
type JWTVerifier struct {
	tokens TokenParser
	header string
}

// NewJWTVerifier создаёт JWTVerifier. Пустой header означает auth-token.
func NewJWTVerifier(tokens TokenParser, header string) *JWTVerifier {
	header = strings.TrimSpace(header)
	if header == "" {
		header = DefaultAuthHeader
	}
	return &JWTVerifier{tokens: tokens, header: header}
}

// Header возвращает имя заголовка, из которого читается токен.
func (v *JWTVerifier) Header() string {
	return v.header
}

// UserIDFromContext извлекает userID аутентифицированного пользователя из контекста.
//
// Возвращает:
//   - userID
//   - false, если пользователь не аутентифицирован
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// ContextWithUserID кладёт userID в контекст.
func ContextWithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// AuthMiddleware возвращает HTTP middleware проверки токена сессии.
//
// Middleware:
//   - читает токен из настроенного заголовка
//   - валидирует подпись и claims токена
//   - извлекает user.id и сохраняет его в context.Context
//
// Любая ошибка - 401 с одним и тем же телом, обработчик не вызывается.
func (v *JWTVerifier) AuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := v.Authenticate(r)
			if err != nil {
				unauthenticated(w)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), userID)))
		})
	}
}

// Authenticate достаёт и проверяет токен запроса. Все ошибки оборачивают
// serr.ErrUnauthenticated.
func (v *JWTVerifier) Authenticate(r *http.Request) (uuid.UUID, error) {
	tokenStr := v.extract(r)
	if tokenStr == "" {
		return uuid.Nil, fmt.Errorf("missing %s header: %w", v.header, serr.ErrUnauthenticated)
	}

	rawID, err := v.tokens.Parse(tokenStr)
	if err != nil {
		if errors.Is(err, serr.ErrUnauthenticated) {
			return uuid.Nil, err
		}
		return uuid.Nil, fmt.Errorf("%w: %v", serr.ErrUnauthenticated, err)
	}

	userID, err := uuid.Parse(rawID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("user id %q: %w", rawID, serr.ErrUnauthenticated)
	}
	return userID, nil
}

func (v *JWTVerifier) extract(r *http.Request) string {
	raw := r.Header.Get(v.header)
	if strings.EqualFold(v.header, "Authorization") {
		return ExtractBearer(raw)
	}
	return strings.TrimSpace(raw)
}

func unauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": MsgUnauthenticated})
}

// ExtractBearer извлекает JWT из заголовка Authorization.
//
// Ожидаемый формат:
//
//	Authorization: Bearer <token>
//
// Возвращает пустую строку, если формат некорректен.
func ExtractBearer(h string) string {
	h = strings.TrimSpace(h)
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
