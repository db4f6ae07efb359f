// Package handler serves the local web UI: thin HTTP handlers over the
// screen controllers, rendered with html/template.
package handler

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/rushikeshburle/autoq/internal/api"
	appI18n "github.com/rushikeshburle/autoq/internal/i18n"
	"github.com/rushikeshburle/autoq/internal/model"
	"github.com/rushikeshburle/autoq/internal/screen"
	"github.com/rushikeshburle/autoq/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

const flashCookieName = "flash"

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	session *session.Store
	client  *api.Client

	documents *screen.Documents
	questions *screen.Questions
	builder   *screen.PaperBuilder
	papers    *screen.Papers
	dashboard *screen.Dashboard

	templates *template.Template
}

// New creates a new Handler wired to the given session and gateway.
func New(sess *session.Store, client *api.Client) (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Handler{
		session:   sess,
		client:    client,
		documents: screen.NewDocuments(client),
		questions: screen.NewQuestions(client),
		builder:   screen.NewPaperBuilder(client),
		papers:    screen.NewPapers(client),
		dashboard: screen.NewDashboard(client),
		templates: tmpl,
	}, nil
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/login", h.handleLoginPage)
	r.Post("/login", h.handleLogin)
	r.Get("/register", h.handleRegisterPage)
	r.Post("/register", h.handleRegister)
	r.Post("/logout", h.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Get("/", h.handleDashboard)
		r.Get("/documents", h.handleDocuments)
		r.Post("/documents/upload", h.handleUpload)
		r.Post("/documents/{id}/process", h.handleProcess)
		r.Post("/documents/{id}/delete", h.handleDeleteDocument)
		r.Get("/questions", h.handleQuestions)
		r.Post("/questions/generate", h.handleGenerate)
		r.Post("/questions/{id}/delete", h.handleDeleteQuestion)
		r.Get("/builder", h.handleBuilder)
		r.Post("/builder/toggle/{id}", h.handleToggle)
		r.Post("/builder/create", h.handleCreatePaper)
		r.Get("/papers", h.handlePapers)
		r.Post("/papers/{id}/delete", h.handleDeletePaper)
		r.Post("/papers/{id}/publish", h.handlePublishPaper)
		r.Get("/papers/{id}/export", h.handleExportPaper)
	})
}

// requireAuth redirects to the login page when no session is present.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.session.IsAuthenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// pageData is what every template receives.
type pageData struct {
	Title string
	User  *model.User
	Flash string
	Error string
	Data  any
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, page string, data pageData) {
	data.User = h.session.User()
	if data.Flash == "" {
		data.Flash = h.popFlash(w, r)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, page, data); err != nil {
		slog.Error("render error", "page", page, "error", err)
	}
}

// fail turns an operation error into the right response: an expired
// session goes back to the login page, a busy controller gets an
// in-flight notice, server rejections show the normalized detail, and
// transport failures fall back to a localized generic message.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, redirect string) {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		h.setFlash(w, appI18n.T(r.Context(), "SessionExpired"))
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	case errors.Is(err, screen.ErrBusy):
		h.setFlash(w, appI18n.T(r.Context(), "RequestInFlight"))
	default:
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			h.setFlash(w, apiErr.Message)
		} else {
			h.setFlash(w, appI18n.T(r.Context(), "RequestFailed"))
		}
	}
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

func (h *Handler) setFlash(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) popFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	msg, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return msg
}
