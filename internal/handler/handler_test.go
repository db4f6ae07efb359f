package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/rushikeshburle/autoq/internal/api"
	appI18n "github.com/rushikeshburle/autoq/internal/i18n"
	"github.com/rushikeshburle/autoq/internal/screen"
	"github.com/rushikeshburle/autoq/internal/session"
)

func newTestHandler(t *testing.T, remote http.Handler) (*Handler, http.Handler, *session.Store) {
	t.Helper()
	if err := appI18n.Init("en"); err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	srv := httptest.NewServer(remote)
	t.Cleanup(srv.Close)

	sess, err := session.Open(":memory:")
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	t.Cleanup(func() { sess.Close() })

	client := api.New(api.DefaultConfig(srv.URL), sess)
	h, err := New(sess, client)
	if err != nil {
		t.Fatalf("create handler: %v", err)
	}

	r := chi.NewRouter()
	r.Use(appI18n.Middleware("en"))
	h.Routes(r)
	return h, r, sess
}

func TestRequireAuthRedirectsToLogin(t *testing.T) {
	_, router, _ := newTestHandler(t, http.NewServeMux())

	for _, path := range []string{"/", "/documents", "/questions", "/builder", "/papers"} {
		req := httptest.NewRequest("GET", path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Errorf("GET %s: status = %d, want 303", path, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Errorf("GET %s: redirect to %q, want /login", path, loc)
		}
	}
}

func TestLoginStoresSession(t *testing.T) {
	remote := http.NewServeMux()
	remote.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("login body is not multipart: %v", err)
		}
		if got := r.FormValue("username"); got != "priya" {
			t.Errorf("username = %q, want priya", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token": "tok-123", "token_type": "bearer"}`))
	})
	remote.HandleFunc("GET /api/v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 1, "username": "priya", "full_name": "Priya Sharma"}`))
	})

	_, router, sess := newTestHandler(t, remote)

	form := url.Values{"username": {"priya"}, "password": {"secret"}}
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if sess.Token() != "tok-123" {
		t.Fatalf("token = %q, want tok-123", sess.Token())
	}
	if user := sess.User(); user == nil || user.Username != "priya" {
		t.Fatalf("user = %+v, want priya", user)
	}
}

func TestConcurrentDocumentPageLoads(t *testing.T) {
	remote := http.NewServeMux()
	remote.HandleFunc("GET /api/v1/documents/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 1, "filename": "a.pdf", "original_filename": "algebra.pdf", "is_processed": true}]`))
	})

	_, router, sess := newTestHandler(t, remote)
	if err := sess.Login("tok", nil); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest("GET", "/documents", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", rec.Code)
			}
		}()
	}
	wg.Wait()
}

func TestExpiredSessionRedirectsToLogin(t *testing.T) {
	remote := http.NewServeMux()
	remote.HandleFunc("GET /api/v1/documents/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.Error(w, `{"detail": "Could not validate credentials"}`, http.StatusUnauthorized)
	})

	_, router, sess := newTestHandler(t, remote)
	if err := sess.Login("stale-token", nil); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	req := httptest.NewRequest("GET", "/documents", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("redirect to %q, want /login", loc)
	}
	if sess.IsAuthenticated() {
		t.Fatal("session still authenticated after 401")
	}
}

// flashValue extracts the decoded flash cookie set on a response.
func flashValue(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	resp := http.Response{Header: rec.Header()}
	for _, c := range resp.Cookies() {
		if c.Name == flashCookieName && c.Value != "" {
			msg, err := url.QueryUnescape(c.Value)
			if err != nil {
				t.Fatalf("unescape flash cookie: %v", err)
			}
			return msg
		}
	}
	return ""
}

func TestRegisterFlashesSuccess(t *testing.T) {
	remote := http.NewServeMux()
	remote.HandleFunc("POST /api/v1/auth/register", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 2, "username": "ravi", "email": "ravi@example.com"}`))
	})

	_, router, _ := newTestHandler(t, remote)

	form := url.Values{
		"email":    {"ravi@example.com"},
		"username": {"ravi"},
		"password": {"secret"},
	}
	req := httptest.NewRequest("POST", "/register", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("redirect to %q, want /login", loc)
	}
	if got := flashValue(t, rec); got != "Account created. You can log in now." {
		t.Fatalf("flash = %q, want the registration notice", got)
	}
}

func TestFailMapsBusyAndTransportErrors(t *testing.T) {
	h, _, _ := newTestHandler(t, http.NewServeMux())

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"busy controller", screen.ErrBusy, "The previous request is still in progress."},
		{"transport failure", errors.New("dial tcp: connection refused"), "Request failed."},
		{"server detail", &api.Error{StatusCode: 400, Message: "Only PDF files are allowed"}, "Only PDF files are allowed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/documents/upload", nil)
			rec := httptest.NewRecorder()
			h.fail(rec, req, tt.err, "/documents")

			if rec.Code != http.StatusSeeOther {
				t.Fatalf("status = %d, want 303", rec.Code)
			}
			if loc := rec.Header().Get("Location"); loc != "/documents" {
				t.Fatalf("redirect to %q, want /documents", loc)
			}
			if got := flashValue(t, rec); got != tt.want {
				t.Fatalf("flash = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExportStreamsAttachment(t *testing.T) {
	remote := http.NewServeMux()
	remote.HandleFunc("POST /api/v1/papers/7/export", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4"))
	})

	_, router, sess := newTestHandler(t, remote)
	if err := sess.Login("tok", nil); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	req := httptest.NewRequest("GET", "/papers/7/export?format=pdf", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="question_paper.pdf"` {
		t.Fatalf("Content-Disposition = %q", got)
	}
	if rec.Body.String() != "%PDF-1.4" {
		t.Fatalf("body = %q, want raw export bytes", rec.Body.String())
	}
}

func TestBadExportFormatRejected(t *testing.T) {
	_, router, sess := newTestHandler(t, http.NewServeMux())
	if err := sess.Login("tok", nil); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	req := httptest.NewRequest("GET", "/papers/7/export?format=xlsx", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
