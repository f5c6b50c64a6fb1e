package tests

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	crypt "github.com/IvanChernomyrdin/go-notekeeper/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-notekeeper/internal/server/middleware"
	serr "github.com/IvanChernomyrdin/go-notekeeper/internal/shared/errors"
)

// tokenParserFunc подменяет TokenParser в тестах.
type tokenParserFunc func(string) (string, error)

func (f tokenParserFunc) Parse(token string) (string, error) { return f(token) }

const testKey = "supersecretkeysupersecretkey123456"

// protected: обработчик, который отдаёт 200 и userID из контекста
func protected(t *testing.T, called *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		uid, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			t.Fatal("user id not found in context")
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(uid.String()))
	})
}

func requireUnauthenticated(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, middleware.MsgUnauthenticated, body["error"])
}

// Успех
func TestAuthMiddleware_OK(t *testing.T) {
	codec := crypt.NewTokenCodec(crypt.JWTConfig{SigningKey: testKey})
	v := middleware.NewJWTVerifier(codec, "")
	require.Equal(t, middleware.DefaultAuthHeader, v.Header())

	userID := uuid.New()
	token, err := codec.Issue(userID.String())
	require.NoError(t, err)

	called := false
	handler := v.AuthMiddleware()(protected(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("auth-token", token)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, called)
	require.Equal(t, userID.String(), rr.Body.String())
}

// Заголовок Authorization: Bearer <token>
func TestAuthMiddleware_AuthorizationHeader(t *testing.T) {
	codec := crypt.NewTokenCodec(crypt.JWTConfig{SigningKey: testKey})
	v := middleware.NewJWTVerifier(codec, "Authorization")

	token, err := codec.Issue(uuid.NewString())
	require.NoError(t, err)

	called := false
	handler := v.AuthMiddleware()(protected(t, &called))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	// без префикса Bearer не принимаем
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", token)
	rr = httptest.NewRecorder()
	called = false
	handler.ServeHTTP(rr, req)
	requireUnauthenticated(t, rr)
	require.False(t, called)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	codec := crypt.NewTokenCodec(crypt.JWTConfig{SigningKey: testKey})
	other := crypt.NewTokenCodec(crypt.JWTConfig{SigningKey: "another-key-another-key-another-key"})
	expiring := crypt.NewTokenCodec(crypt.JWTConfig{SigningKey: testKey, TTL: time.Nanosecond})

	foreign, err := other.Issue(uuid.NewString())
	require.NoError(t, err)
	notUUID, err := codec.Issue("user-1")
	require.NoError(t, err)
	expired, err := expiring.Issue(uuid.NewString())
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)

	cases := map[string]string{
		"missing":      "",
		"garbage":      "abc.def.ghi",
		"wrong key":    foreign,
		"id not uuid":  notUUID,
		"expired":      expired,
		"only spaces":  "   ",
		"bearer value": "Bearer " + notUUID,
	}

	v := middleware.NewJWTVerifier(codec, "auth-token")
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			handler := v.AuthMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler should not be called")
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if token != "" {
				req.Header.Set("auth-token", token)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			requireUnauthenticated(t, rr)
		})
	}
}

func TestUserIDFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := middleware.UserIDFromContext(req.Context())
	require.False(t, ok)

	id := uuid.New()
	got, ok := middleware.UserIDFromContext(middleware.ContextWithUserID(req.Context(), id))
	require.True(t, ok)
	require.Equal(t, id, got)
}

// Проверка форматов принимаемого токена
func TestExtractBearer(t *testing.T) {
	tests := []struct {
		hdr  string
		want string
	}{
		{"Bearer token", "token"},
		{"bearer token", "token"},
		{"Bearer    token", "token"},
		{"Token token", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := middleware.ExtractBearer(tt.hdr); got != tt.want {
			t.Errorf("ExtractBearer(%q) = %q, want %q", tt.hdr, got, tt.want)
		}
	}
}

// Любой отказ гейта сводится к serr.ErrUnauthenticated
func TestJWTVerifier_Authenticate_Errors(t *testing.T) {
	codec := crypt.NewTokenCodec(crypt.JWTConfig{SigningKey: testKey})
	notUUID, err := codec.Issue("not-a-uuid")
	require.NoError(t, err)

	cases := []struct {
		name   string
		parser middleware.TokenParser
		token  string
	}{
		{name: "missing header", parser: codec, token: ""},
		{name: "malformed token", parser: codec, token: "a.b.c"},
		{name: "user id is not uuid", parser: codec, token: notUUID},
		{
			name: "foreign parser error",
			parser: tokenParserFunc(func(string) (string, error) {
				return "", errors.New("boom")
			}),
			token: "tok",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := middleware.NewJWTVerifier(tc.parser, "")
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.token != "" {
				req.Header.Set(middleware.DefaultAuthHeader, tc.token)
			}

			id, err := v.Authenticate(req)
			require.ErrorIs(t, err, serr.ErrUnauthenticated)
			require.Equal(t, uuid.Nil, id)
		})
	}
}

func TestJWTVerifier_Authenticate_OK(t *testing.T) {
	codec := crypt.NewTokenCodec(crypt.JWTConfig{SigningKey: testKey})
	v := middleware.NewJWTVerifier(codec, "")

	userID := uuid.New()
	token, err := codec.Issue(userID.String())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.DefaultAuthHeader, token)

	id, err := v.Authenticate(req)
	require.NoError(t, err)
	require.Equal(t, userID, id)
}
