package handler

import (
	"log/slog"
	"net/http"

	"github.com/rushikeshburle/autoq/internal/api"
	appI18n "github.com/rushikeshburle/autoq/internal/i18n"
	"github.com/rushikeshburle/autoq/internal/model"
)

func (h *Handler) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if h.session.IsAuthenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, r, "login.html", pageData{Title: appI18n.T(r.Context(), "Login")})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	token, err := h.client.Login(r.Context(), username, password)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		h.render(w, r, "login.html", pageData{
			Title: appI18n.T(r.Context(), "Login"),
			Error: api.Message(err),
		})
		return
	}
	if err := h.session.Login(token.AccessToken, nil); err != nil {
		slog.Error("persist session", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	// Best effort; the profile is display-only and refreshed on demand.
	if user, err := h.client.CurrentUser(r.Context()); err == nil {
		if err := h.session.SetUser(&user); err != nil {
			slog.Error("persist user profile", "error", err)
		}
	} else {
		slog.Warn("fetch profile after login", "error", err)
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "register.html", pageData{Title: appI18n.T(r.Context(), "Register")})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	req := model.RegisterRequest{
		Email:    r.FormValue("email"),
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
		FullName: r.FormValue("full_name"),
	}
	if _, err := h.client.Register(r.Context(), req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		h.render(w, r, "register.html", pageData{
			Title: appI18n.T(r.Context(), "Register"),
			Error: api.Message(err),
		})
		return
	}
	h.setFlash(w, appI18n.T(r.Context(), "RegistrationComplete"))
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.session.Logout(); err != nil {
		slog.Error("clear session", "error", err)
	}
	h.setFlash(w, appI18n.T(r.Context(), "LoggedOut"))
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
