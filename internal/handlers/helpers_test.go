package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"pennywise/internal/middleware"
	"pennywise/internal/session"
	"pennywise/internal/validator"
	"pennywise/web"
)

const testUserID = "0192f0c4-1111-7000-8000-000000000001"

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

// newTestRouter returns an engine with the real templates, a cookie session
// store and a /_flashes route that prints and consumes queued flashes.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	tmpl, err := web.Templates()
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(session.Middleware(cookie.NewStore([]byte("test-secret"))))
	r.GET("/_flashes", func(c *gin.Context) {
		success, errs := session.Flashes(c)
		c.String(http.StatusOK, strings.Join(success, ";")+"|"+strings.Join(errs, ";"))
	})
	return r
}

// injectUser stands in for the login gate.
func injectUser(id, username string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, id)
		c.Set(middleware.UserKey, session.User{ID: id, Username: username})
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range cookies {
		if c != nil {
			req.AddCookie(c)
		}
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

// sessionCookie returns the last session cookie written by rec.
func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	var last *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			last = c
		}
	}
	return last
}

// flashes reads the flash queues left behind by rec as "success|error".
func flashes(t *testing.T, r *gin.Engine, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return doRequest(r, http.MethodGet, "/_flashes", nil, sessionCookie(rec)).Body.String()
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Errorf("expected redirect to %s, got %s", location, got)
	}
}

func assertFlashes(t *testing.T, r *gin.Engine, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	if got := flashes(t, r, rec); got != want {
		t.Errorf("expected flashes %q, got %q", want, got)
	}
}
