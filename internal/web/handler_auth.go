package web

import (
	"errors"
	"net/http"

	"github.com/vbonduro/foodventory/internal/auth"
	"github.com/vbonduro/foodventory/internal/form"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if err := s.renderPage(w,
		map[string]any{"CurrentUser": s.currentUser(r)},
		"pages/home.html",
	); err != nil {
		s.logger.Error("render page error", "error", err)
	}
}

func (s *Server) handleSignupPage(w http.ResponseWriter, r *http.Request) {
	s.renderSignup(w, http.StatusOK, form.Signup{}, nil)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	f, errs := form.ParseSignup(r.PostForm)
	if errs.Any() {
		s.renderSignup(w, http.StatusBadRequest, f, errs)
		return
	}

	user, err := s.accounts.Signup(r.Context(), f.Username, f.Name, f.Password)
	if errors.Is(err, auth.ErrUsernameTaken) {
		errs = form.Errors{}
		errs.Add("username", "Username already taken")
		s.renderSignup(w, http.StatusBadRequest, f, errs)
		return
	}
	if err != nil {
		http.Error(w, "failed to sign up", http.StatusInternalServerError)
		s.logger.Error("signup error", "error", err)
		return
	}

	s.startSession(w, r, user.ID, "/users/"+user.Username)
}

func (s *Server) renderSignup(w http.ResponseWriter, status int, f form.Signup, errs form.Errors) {
	if err := s.renderPageStatus(w, status,
		map[string]any{"Form": f, "Errors": errs},
		"pages/signup.html",
	); err != nil {
		s.logger.Error("render page error", "error", err)
	}
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	s.renderLogin(w, http.StatusOK, form.Login{}, nil)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	f, errs := form.ParseLogin(r.PostForm)
	if errs.Any() {
		s.renderLogin(w, http.StatusBadRequest, f, errs)
		return
	}

	user, err := s.accounts.Login(r.Context(), f.Username, f.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		errs = form.Errors{}
		errs.Add("", "Invalid username or password")
		s.renderLogin(w, http.StatusBadRequest, f, errs)
		return
	}
	if err != nil {
		http.Error(w, "failed to log in", http.StatusInternalServerError)
		s.logger.Error("login error", "error", err)
		return
	}

	s.startSession(w, r, user.ID, "/users/"+user.Username)
}

func (s *Server) renderLogin(w http.ResponseWriter, status int, f form.Login, errs form.Errors) {
	if err := s.renderPageStatus(w, status,
		map[string]any{"Form": f, "Errors": errs},
		"pages/login.html",
	); err != nil {
		s.logger.Error("render page error", "error", err)
	}
}

func (s *Server) startSession(w http.ResponseWriter, r *http.Request, userID, redirect string) {
	token, err := s.sessions.Issue(userID)
	if err != nil {
		http.Error(w, "failed to start session", http.StatusInternalServerError)
		s.logger.Error("session issue error", "user_id", userID, "error", err)
		return
	}
	http.SetCookie(w, s.sessions.Cookie(token))
	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, s.sessions.ExpiredCookie())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
