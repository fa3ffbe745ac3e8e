package handler

import (
	"context"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"

	"github.com/fedorgrin-lab/cloud/internal/middleware"
	"github.com/fedorgrin-lab/cloud/internal/model"
	"github.com/fedorgrin-lab/cloud/internal/render"
	"github.com/fedorgrin-lab/cloud/internal/service"
	"github.com/fedorgrin-lab/cloud/internal/store"
	"github.com/fedorgrin-lab/cloud/web"
)

// testEnv bundles the fixtures most handler tests need.
type testEnv struct {
	sm       *scs.SessionManager
	renderer *render.Renderer
	accounts *service.AccountService
	sites    *service.SiteService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	sm := scs.New()
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("templates sub fs: %v", err)
	}
	renderer, err := render.New(templatesFS, sm)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	kv := store.NewMemKV()
	return &testEnv{
		sm:       sm,
		renderer: renderer,
		accounts: service.NewAccountService(kv),
		sites:    service.NewSiteService(kv),
	}
}

// do serves a request through the session middleware so handlers can use
// session operations, and returns the recorded response.
func (e *testEnv) do(h http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.sm.LoadAndSave(h).ServeHTTP(rec, req)
	return rec
}

// formRequest builds a POST request with URL-encoded form values.
func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set(HeaderContentType, "application/x-www-form-urlencoded")
	return req
}

// withUser places a user in the request context the way the LoadUser
// middleware does.
func withUser(req *http.Request, user *model.User) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.ContextKeyUser, user)
	return req.WithContext(ctx)
}

// registerUser registers a test account directly against the service.
func registerUser(t *testing.T, e *testEnv, email string) *model.User {
	t.Helper()
	user, err := e.accounts.Register(context.Background(), email, "secret123", "")
	if err != nil {
		t.Fatalf("Register(%q): %v", email, err)
	}
	return user
}
