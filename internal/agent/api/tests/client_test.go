package tests

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-notekeeper/internal/agent/api"
	serr "github.com/IvanChernomyrdin/go-notekeeper/internal/shared/errors"
)

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestClient_Register_StoresToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/createuser", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Empty(t, r.Header.Get(api.DefaultAuthHeader))

		var req api.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, api.RegisterRequest{Name: "alice", Email: "a@x.io", Password: "secret1"}, req)

		writeJSON(t, w, http.StatusOK, map[string]any{"success": true, "authtoken": "tok-1"})
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL + "/")
	tok, err := c.Register(context.Background(), "alice", "a@x.io", "secret1")
	require.NoError(t, err)
	require.Equal(t, "tok-1", tok)
	require.Equal(t, "tok-1", c.Token())
}

func TestClient_Login_WrongCredentials(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, map[string]any{"success": false, "error": "Wrong Credentials"})
	}))
	defer srv.Close()

	c := api.NewClient(srv.URL)
	_, err := c.Login(context.Background(), "a@x.io", "nope")
	require.Error(t, err)

	var apiErr *api.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, "Wrong Credentials", apiErr.Message)
	require.ErrorIs(t, err, serr.ErrInvalidInput)
	require.Empty(t, c.Token())
}

func TestClient_Register_ValidationErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, map[string]any{"errors": []serr.FieldError{
			{Value: "ab", Msg: "Enter a valid name", Param: "name", Location: "body"},
		}})
	}))
	defer srv.Close()

	_, err := api.NewClient(srv.URL).Register(context.Background(), "ab", "a@x.io", "secret1")

	var apiErr *api.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Len(t, apiErr.Fields, 1)
	require.Contains(t, err.Error(), "name: Enter a valid name")
}

func TestClient_Login_NoTokenInResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"success": true})
	}))
	defer srv.Close()

	_, err := api.NewClient(srv.URL).Login(context.Background(), "a@x.io", "secret1")
	require.ErrorIs(t, err, api.ErrNoToken)
}

func TestClient_Me_SendsAuthHeader(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/getuser", r.URL.Path)
		if r.Header.Get(api.DefaultAuthHeader) != "tok-1" {
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{"error": "Please authenticate using a valid token"})
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"id": "u-1", "name": "alice", "email": "a@x.io"})
	}))
	defer srv.Close()

	u, err := api.NewClient(srv.URL).WithToken("tok-1").Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "alice", u.Name)
	require.Equal(t, "a@x.io", u.Email)

	_, err = api.NewClient(srv.URL).WithToken("bad").Me(context.Background())
	require.ErrorIs(t, err, serr.ErrUnauthenticated)
	require.Contains(t, err.Error(), "Please authenticate")
}

func TestClient_CustomAuthHeader(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "tok-2", r.Header.Get("X-Session"))
		require.Empty(t, r.Header.Get(api.DefaultAuthHeader))
		writeJSON(t, w, http.StatusOK, []api.Note{})
	}))
	defer srv.Close()

	notes, err := api.NewClient(srv.URL).WithAuthHeader("X-Session").WithToken("tok-2").ListNotes(context.Background())
	require.NoError(t, err)
	require.NotNil(t, notes)
	require.Empty(t, notes)
}

func TestClient_NonJSONErrorBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := api.NewClient(srv.URL).Health(context.Background())

	var apiErr *api.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
	require.ErrorIs(t, err, serr.ErrInternal)
}

func TestClient_TransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := api.NewClient(url).Health(context.Background())
	require.Error(t, err)

	var apiErr *api.APIError
	require.False(t, errors.As(err, &apiErr))
}

func TestClient_HTTPSAllowsSelfSigned(t *testing.T) {
	t.Parallel()

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	require.NoError(t, api.NewClient(srv.URL).Health(context.Background()))
}
