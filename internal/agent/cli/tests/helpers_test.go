package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-notekeeper/internal/agent/api"
	"github.com/IvanChernomyrdin/go-notekeeper/internal/agent/cli"
)

// fakeServer минимальная реализация API notekeeper в памяти.
type fakeServer struct {
	mu     sync.Mutex
	users  map[string]string // email -> password
	tokens map[string]string // token -> email
	notes  map[string]api.Note
	seq    int
}

func newFakeServer(t *testing.T) (*fakeServer, *httptest.Server) {
	t.Helper()

	f := &fakeServer{
		users:  map[string]string{},
		tokens: map[string]string{},
		notes:  map[string]api.Note{},
	}

	r := chi.NewRouter()
	r.Post("/auth/createuser", f.register)
	r.Post("/auth/login", f.login)
	r.Post("/auth/getuser", f.auth(f.me))
	r.Get("/notes/fetchallnotes", f.auth(f.list))
	r.Post("/notes/addnote", f.auth(f.add))
	r.Put("/notes/updatenote/{id}", f.auth(f.update))
	r.Delete("/notes/deletenote/{id}", f.auth(f.remove))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return f, srv
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (f *fakeServer) issue(email string) string {
	f.seq++
	tok := "tok-" + strings.Repeat("x", f.seq)
	f.tokens[tok] = email
	return tok
}

func (f *fakeServer) register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[req.Email]; ok {
		reply(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Email already exists"})
		return
	}
	f.users[req.Email] = req.Password
	reply(w, http.StatusOK, map[string]any{"success": true, "authtoken": f.issue(req.Email)})
}

func (f *fakeServer) login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	defer f.mu.Unlock()
	if pw, ok := f.users[req.Email]; !ok || pw != req.Password {
		reply(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Wrong Credentials"})
		return
	}
	reply(w, http.StatusOK, map[string]any{"success": true, "authtoken": f.issue(req.Email)})
}

func (f *fakeServer) auth(next func(w http.ResponseWriter, r *http.Request, email string)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		email, ok := f.tokens[r.Header.Get(api.DefaultAuthHeader)]
		f.mu.Unlock()
		if !ok {
			reply(w, http.StatusUnauthorized, map[string]string{"error": "Please authenticate using a valid token"})
			return
		}
		next(w, r, email)
	}
}

func (f *fakeServer) me(w http.ResponseWriter, r *http.Request, email string) {
	reply(w, http.StatusOK, api.User{ID: "u-" + email, Name: "alice", Email: email, Date: time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)})
}

func (f *fakeServer) list(w http.ResponseWriter, r *http.Request, email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []api.Note{}
	for _, n := range f.notes {
		if n.User == email {
			out = append(out, n)
		}
	}
	reply(w, http.StatusOK, out)
}

func (f *fakeServer) add(w http.ResponseWriter, r *http.Request, email string) {
	var in api.NoteInput
	_ = json.NewDecoder(r.Body).Decode(&in)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	n := api.Note{ID: "n-" + strings.Repeat("1", f.seq), User: email, Title: in.Title, Description: in.Description, Tag: in.Tag}
	f.notes[n.ID] = n
	reply(w, http.StatusOK, n)
}

func (f *fakeServer) owned(w http.ResponseWriter, r *http.Request, email string) (api.Note, bool) {
	n, ok := f.notes[chi.URLParam(r, "id")]
	if !ok {
		reply(w, http.StatusNotFound, map[string]string{"error": "Not Found"})
		return api.Note{}, false
	}
	if n.User != email {
		reply(w, http.StatusUnauthorized, map[string]string{"error": "Not Allowed"})
		return api.Note{}, false
	}
	return n, true
}

func (f *fakeServer) update(w http.ResponseWriter, r *http.Request, email string) {
	var upd api.NoteUpdate
	_ = json.NewDecoder(r.Body).Decode(&upd)

	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.owned(w, r, email)
	if !ok {
		return
	}
	if upd.Title != nil {
		n.Title = *upd.Title
	}
	if upd.Description != nil {
		n.Description = *upd.Description
	}
	if upd.Tag != nil {
		n.Tag = *upd.Tag
	}
	f.notes[n.ID] = n
	reply(w, http.StatusOK, n)
}

func (f *fakeServer) remove(w http.ResponseWriter, r *http.Request, email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.owned(w, r, email)
	if !ok {
		return
	}
	delete(f.notes, n.ID)
	reply(w, http.StatusOK, map[string]any{"Success": "Note has been deleted", "note": n})
}

func (f *fakeServer) noteIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, 0, len(f.notes))
	for id := range f.notes {
		ids = append(ids, id)
	}
	return ids
}

// cliEnv запускает root-команду против заданного сервера с отдельным файлом кредов.
type cliEnv struct {
	t         *testing.T
	serverURL string
	credsPath string
}

func newCLIEnv(t *testing.T, serverURL string) *cliEnv {
	t.Helper()
	t.Setenv("NOTEKEEPER_SERVER", "")
	t.Setenv("NOTEKEEPER_CREDENTIALS", "")
	t.Setenv("NOTEKEEPER_AUTH_HEADER", "")
	return &cliEnv{t: t, serverURL: serverURL, credsPath: filepath.Join(t.TempDir(), "credentials.json")}
}

// run выполняет команду и возвращает stdout и ошибку.
func (e *cliEnv) run(stdin string, args ...string) (string, error) {
	e.t.Helper()

	root := cli.NewRootCmd("1.0.0", "2026-01-16")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--server", e.serverURL, "--credentials", e.credsPath}, args...))

	err := root.Execute()
	return out.String(), err
}

func (e *cliEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run("", args...)
	require.NoError(e.t, err)
	return out
}
