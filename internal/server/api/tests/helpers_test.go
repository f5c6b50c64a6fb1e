package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/IvanChernomyrdin/go-notekeeper/internal/server/api"
	crypt "github.com/IvanChernomyrdin/go-notekeeper/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-notekeeper/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-notekeeper/internal/server/service"
	svcmocks "github.com/IvanChernomyrdin/go-notekeeper/internal/server/service/mocks"
	"github.com/IvanChernomyrdin/go-notekeeper/internal/shared/logger"
)

const testSigningKey = "supersecretkeysupersecretkey123456" // >= 32

// testDeps: моки и кодек, с которыми собран тестовый Handler.
type testDeps struct {
	Users  *svcmocks.MockUsersRepo
	Notes  *svcmocks.MockNotesRepo
	Health *svcmocks.MockHealthRepo
	Codec  *crypt.TokenCodec
}

// NewTestHandler создаёт Handler с моками репозиториев через dependency injection
func NewTestHandler(t *testing.T) (*api.Handler, testDeps) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	deps := testDeps{
		Users:  svcmocks.NewMockUsersRepo(ctrl),
		Notes:  svcmocks.NewMockNotesRepo(ctrl),
		Health: svcmocks.NewMockHealthRepo(ctrl),
		Codec:  crypt.NewTokenCodec(crypt.JWTConfig{SigningKey: testSigningKey}),
	}

	svc := service.NewServices(
		service.Repositories{Users: deps.Users, Notes: deps.Notes},
		crypt.BcryptHasher{Cost: bcrypt.MinCost},
		deps.Codec,
	)
	verifier := middleware.NewJWTVerifier(deps.Codec, "")

	return api.NewHandler(svc, deps.Health, logger.NewNop(), verifier), deps
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return bytes.NewReader(b)
}

// authed кладёт userID в контекст запроса, как это делает AuthMiddleware.
func authed(req *http.Request, userID uuid.UUID) *http.Request {
	return req.WithContext(middleware.ContextWithUserID(req.Context(), userID))
}

// withID добавляет chi URL-параметр id.
func withID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return v
}
