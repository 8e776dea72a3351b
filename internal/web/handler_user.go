package web

import (
	"errors"
	"io"
	"net/http"

	"github.com/vbonduro/foodventory/internal/service"
)

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	user, pantries, err := s.users.Profile(r.Context(), parseUsername(r))
	if err != nil {
		http.Error(w, "failed to load profile", http.StatusInternalServerError)
		s.logger.Error("profile error", "error", err)
		return
	}
	if user == nil {
		http.NotFound(w, r)
		return
	}

	current := s.currentUser(r)
	isOwner := current != nil && current.ID == user.ID

	if err := s.renderPage(w,
		map[string]any{
			"CurrentUser": current,
			"User":        user,
			"Pantries":    pantries,
			"IsOwner":     isOwner,
		},
		"pages/profile.html",
	); err != nil {
		s.logger.Error("render page error", "error", err)
	}
}

func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	rc, mimeType, err := s.users.Image(r.Context(), r.PathValue("imageID"))
	if errors.Is(err, service.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "failed to load image", http.StatusInternalServerError)
		s.logger.Error("get image error", "error", err)
		return
	}
	defer func() {
		if err := rc.Close(); err != nil {
			s.logger.Error("failed to close image", "error", err)
		}
	}()

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	if _, err := io.Copy(w, rc); err != nil {
		s.logger.Error("failed to write image", "error", err)
	}
}

func (s *Server) handleUploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.gate.RequireUserID(w, r)
	if !ok {
		return
	}

	imageData, mimeType, ok := s.readImageUpload(w, r)
	if !ok {
		return
	}

	if _, err := s.users.SetPhoto(r.Context(), userID, imageData, mimeType); err != nil {
		http.Error(w, "failed to save photo", http.StatusInternalServerError)
		s.logger.Error("avatar upload error", "user_id", userID, "error", err)
		return
	}

	user, err := s.users.ByID(r.Context(), userID)
	if err != nil || user == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/users/"+user.Username, http.StatusSeeOther)
}
