package httphandler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/muxury/storefront/internal/core/domain"
	"github.com/muxury/storefront/internal/core/port"
)

// AuthHandler fronts the session store. Collaborator failures surface as
// the backend's message, session state is never left half-set.
type AuthHandler struct {
	sessions port.SessionManager
}

func RegisterAuth(mux *http.ServeMux, sessions port.SessionManager) {
	h := AuthHandler{sessions}
	mux.HandleFunc("POST /v1/auth/login", h.PostLogin)
	mux.HandleFunc("POST /v1/auth/register", h.PostRegister)
	mux.HandleFunc("POST /v1/auth/logout", h.PostLogout)
	mux.HandleFunc("GET /v1/auth/me", h.GetMe)
}

func (h AuthHandler) PostLogin(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.PostLogin"
	log := slog.With("op", op)

	var form LoginForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	user, err := h.sessions.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Login failed. Please try again.")
		log.Warn("login rejected", "email", form.Email, "err", err)
		return
	}

	writeJSON(w, http.StatusOK, toUser(user))
}

func (h AuthHandler) PostRegister(w http.ResponseWriter, r *http.Request) {
	const op = "AuthHandler.PostRegister"
	log := slog.With("op", op)

	var form RegisterForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return
	}

	message, err := h.sessions.Register(r.Context(), domain.RegisterForm{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  form.Password,
		Phone:     form.Phone,
	})
	if err != nil {
		writeMessage(w, http.StatusUnprocessableEntity,
			"Registration failed. Please try again.")
		log.Warn("registration rejected", "email", form.Email, "err", err)
		return
	}

	writeMessage(w, http.StatusOK, message)
}

func (h AuthHandler) PostLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (h AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := h.sessions.User()
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, toUser(user))
}
