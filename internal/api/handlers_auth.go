package api

import (
	"net/http"

	"hotelier/internal/metrics"
	"hotelier/internal/models"
	"hotelier/internal/session"
)

type sessionResponse struct {
	Token   string          `json:"token"`
	Profile *models.Profile `json:"profile"`
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
		Phone    string `json:"phone"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.Email == "" || len(body.Password) < 8 {
		writeError(w, http.StatusBadRequest, "email and a password of at least 8 characters are required")
		return
	}

	sess, err := s.sessions.SignUp(r.Context(), session.SignUpParams{
		Email:    body.Email,
		Password: body.Password,
		FullName: body.FullName,
		Phone:    body.Phone,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{Token: sess.Token, Profile: sess.Profile})
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.allow(r) {
		writeError(w, http.StatusTooManyRequests, "too many sign-in attempts")
		return
	}

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	sess, err := s.sessions.SignIn(r.Context(), body.Email, body.Password)
	if err != nil {
		metrics.IncSignInFailure()
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Token: sess.Token, Profile: sess.Profile})
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}
	if err := s.sessions.SignOut(r.Context(), token); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSession restores a persisted token: the silent re-login on app start.
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "authorization required")
		return
	}
	sess, err := s.sessions.Restore(r.Context(), token)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Token: sess.Token, Profile: sess.Profile})
}

// handleNavigate resolves a logical route for the caller. It works both
// signed out and signed in.
func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}

	var (
		role          models.Role
		authenticated bool
	)
	if token := bearerToken(r); token != "" {
		if sess, err := s.sessions.Restore(r.Context(), token); err == nil {
			role = sess.Profile.Role
			authenticated = true
		}
	}

	writeJSON(w, http.StatusOK, ResolveRoute(role, authenticated, path))
}
