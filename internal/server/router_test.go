package server

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pennywise/internal/models"
	"pennywise/internal/session"
	"pennywise/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// browser is a cookie-keeping client that does not follow redirects.
type browser struct {
	t      *testing.T
	client *http.Client
	base   string
}

func setupServer(t *testing.T) (*browser, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	store := cookie.NewStore([]byte("test-secret"))
	store.Options(session.Options(time.Hour, false))

	router, err := NewRouter(Deps{DB: db, SessionStore: store})
	if err != nil {
		t.Fatalf("failed to build router: %v", err)
	}

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	return &browser{
		t:    t,
		base: srv.URL,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}, db
}

func (b *browser) get(path string) (*http.Response, string) {
	b.t.Helper()
	resp, err := b.client.Get(b.base + path)
	if err != nil {
		b.t.Fatalf("GET %s failed: %v", path, err)
	}
	return read(b.t, resp)
}

func (b *browser) post(path string, form url.Values) (*http.Response, string) {
	b.t.Helper()
	resp, err := b.client.PostForm(b.base+path, form)
	if err != nil {
		b.t.Fatalf("POST %s failed: %v", path, err)
	}
	return read(b.t, resp)
}

func read(t *testing.T, resp *http.Response) (*http.Response, string) {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return resp, string(body)
}

func expectRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != location {
		t.Fatalf("expected redirect to %s, got %s", location, got)
	}
}

func expectContains(t *testing.T, body string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(body, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
}

func (b *browser) registerAndLogin(username string) {
	b.t.Helper()
	creds := url.Values{"username": {username}, "password": {"password123"}}

	resp, _ := b.post("/register", creds)
	expectRedirect(b.t, resp, "/login")

	resp, _ = b.post("/login", creds)
	expectRedirect(b.t, resp, "/dashboard")
}

func categoryID(t *testing.T, db *gorm.DB, username, name string) string {
	t.Helper()
	var category models.Category
	err := db.Joins("JOIN users ON users.id = categories.user_id").
		Where("users.username = ? AND categories.name = ?", username, name).
		First(&category).Error
	if err != nil {
		t.Fatalf("failed to find category %s of %s: %v", name, username, err)
	}
	return category.ID
}

func TestAccessGate(t *testing.T) {
	b, _ := setupServer(t)

	for _, path := range []string{"/dashboard", "/categories", "/logout"} {
		resp, _ := b.get(path)
		expectRedirect(t, resp, "/login")
	}

	resp, _ := b.post("/transactions", url.Values{})
	expectRedirect(t, resp, "/login")

	_, body := b.get("/login")
	expectContains(t, body, "Please log in to view that resource")
}

func TestPublicSurface(t *testing.T) {
	b, _ := setupServer(t)

	t.Run("health", func(t *testing.T) {
		resp, body := b.get("/health")
		if resp.StatusCode != http.StatusOK || body != "ok" {
			t.Errorf("expected ok, got %d %q", resp.StatusCode, body)
		}
	})

	t.Run("landing_has_security_headers", func(t *testing.T) {
		resp, body := b.get("/")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		expectContains(t, body, "Pennywise")
		if resp.Header.Get("X-Frame-Options") != "DENY" {
			t.Error("expected X-Frame-Options header")
		}
		if resp.Header.Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID header")
		}
	})

	t.Run("static_css", func(t *testing.T) {
		resp, body := b.get("/static/style.css")
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		expectContains(t, body, ".flash-success")
	})

	t.Run("not_found", func(t *testing.T) {
		resp, body := b.get("/nope")
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", resp.StatusCode)
		}
		expectContains(t, body, "Page not found")
	})

	t.Run("method_not_allowed_renders_not_found", func(t *testing.T) {
		resp, _ := b.post("/health", url.Values{})
		if resp.StatusCode != http.StatusNotFound {
			t.Errorf("expected 404, got %d", resp.StatusCode)
		}
	})
}

func TestRegistrationAndLogin(t *testing.T) {
	b, db := setupServer(t)
	creds := url.Values{"username": {"alice"}, "password": {"password123"}}

	resp, _ := b.post("/register", creds)
	expectRedirect(t, resp, "/login")
	_, body := b.get("/login")
	expectContains(t, body, "You are now registered and can log in")

	resp, _ = b.post("/register", creds)
	expectRedirect(t, resp, "/register")
	_, body = b.get("/register")
	expectContains(t, body, "Username is already taken")

	var users int64
	db.Model(&models.User{}).Count(&users)
	if users != 1 {
		t.Errorf("expected 1 user, got %d", users)
	}

	resp, _ = b.post("/login", url.Values{"username": {"alice"}, "password": {"wrong"}})
	expectRedirect(t, resp, "/login")
	_, wrongPassword := b.get("/login")

	resp, _ = b.post("/login", url.Values{"username": {"mallory"}, "password": {"password123"}})
	expectRedirect(t, resp, "/login")
	_, unknownUser := b.get("/login")

	expectContains(t, wrongPassword, "Invalid credentials")
	expectContains(t, unknownUser, "Invalid credentials")

	resp, _ = b.post("/login", creds)
	expectRedirect(t, resp, "/dashboard")

	resp, body = b.get("/dashboard")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	expectContains(t, body, "alice", "Food", "Rent", "Travel", "Groceries", "Salary", "Freelance")

	resp, _ = b.get("/logout")
	expectRedirect(t, resp, "/login")

	resp, _ = b.get("/dashboard")
	expectRedirect(t, resp, "/login")
}

func TestFinanceFlow(t *testing.T) {
	b, db := setupServer(t)
	b.registerAndLogin("bob")

	salary := categoryID(t, db, "bob", "Salary")
	food := categoryID(t, db, "bob", "Food")
	today := time.Now().Format("2006-01-02")

	t.Run("add_transactions", func(t *testing.T) {
		resp, _ := b.post("/transactions", url.Values{
			"type": {"income"}, "category": {salary}, "amount": {"1000"}, "date": {today},
		})
		expectRedirect(t, resp, "/dashboard")

		resp, _ = b.post("/transactions", url.Values{
			"type": {"expense"}, "category": {food}, "amount": {"300"}, "date": {today}, "note": {"groceries run"},
		})
		expectRedirect(t, resp, "/dashboard")

		_, body := b.get("/dashboard")
		expectContains(t, body, "Transaction added successfully.", "1000.00", "300.00", "700.00", "groceries run")
	})

	t.Run("rejected_amounts", func(t *testing.T) {
		resp, _ := b.post("/transactions", url.Values{
			"type": {"expense"}, "category": {food}, "amount": {"abc"}, "date": {today},
		})
		expectRedirect(t, resp, "/dashboard")
		_, body := b.get("/dashboard")
		expectContains(t, body, "Amount must be a number.")

		resp, _ = b.post("/transactions", url.Values{
			"type": {"expense"}, "category": {food}, "amount": {"0"}, "date": {today},
		})
		expectRedirect(t, resp, "/dashboard")
		_, body = b.get("/dashboard")
		expectContains(t, body, "Amount must be at least 0.01.")
	})

	t.Run("category_lifecycle", func(t *testing.T) {
		resp, _ := b.post("/categories", url.Values{"name": {"Gym"}, "type": {"expense"}})
		expectRedirect(t, resp, "/categories")
		_, body := b.get("/categories")
		expectContains(t, body, "Category created successfully.", "Gym")

		gym := categoryID(t, db, "bob", "Gym")

		resp, _ = b.post("/categories/update/"+gym, url.Values{"name": {"Climbing"}})
		expectRedirect(t, resp, "/categories")
		_, body = b.get("/categories")
		expectContains(t, body, "Category updated successfully.", "Climbing")

		resp, _ = b.post("/categories/delete/"+food, url.Values{})
		expectRedirect(t, resp, "/categories")
		_, body = b.get("/categories")
		expectContains(t, body, "Default categories cannot be deleted.")

		resp, _ = b.post("/categories/delete/"+gym, url.Values{})
		expectRedirect(t, resp, "/categories")
		_, body = b.get("/categories")
		expectContains(t, body, "Category deleted successfully.")
	})

	t.Run("prev_month_is_empty", func(t *testing.T) {
		_, body := b.get("/dashboard?filter=prev_month")
		expectContains(t, body, `href="/dashboard?filter=prev_month" class="active"`, "0.00")
	})
}

func TestCrossUserIsolation(t *testing.T) {
	owner, db := setupServer(t)
	owner.registerAndLogin("carol")
	food := categoryID(t, db, "carol", "Food")

	resp, _ := owner.post("/transactions", url.Values{
		"type": {"expense"}, "category": {food}, "amount": {"42"}, "date": {time.Now().Format("2006-01-02")},
	})
	expectRedirect(t, resp, "/dashboard")

	var tx models.Transaction
	if err := db.First(&tx).Error; err != nil {
		t.Fatalf("failed to load transaction: %v", err)
	}

	// A second browser against the same server and database.
	jar, _ := cookiejar.New(nil)
	intruder := &browser{t: t, base: owner.base, client: &http.Client{
		Jar:           jar,
		CheckRedirect: owner.client.CheckRedirect,
	}}
	intruder.registerAndLogin("dave")

	resp, _ = intruder.post("/transactions/delete/"+tx.ID, url.Values{})
	expectRedirect(t, resp, "/dashboard")
	_, body := intruder.get("/dashboard")
	expectContains(t, body, "Transaction not found or you are not authorized.")

	resp, _ = intruder.post("/transactions", url.Values{
		"type": {"expense"}, "category": {food}, "amount": {"1"}, "date": {time.Now().Format("2006-01-02")},
	})
	expectRedirect(t, resp, "/dashboard")
	_, body = intruder.get("/dashboard")
	expectContains(t, body, "Category not found or you are not authorized.")

	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	if count != 1 {
		t.Errorf("expected owner's single transaction to remain, got %d", count)
	}
}
