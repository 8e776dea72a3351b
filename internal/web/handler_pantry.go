package web

import (
	"errors"
	"net/http"

	"github.com/vbonduro/foodventory/internal/form"
	"github.com/vbonduro/foodventory/internal/service"
)

func (s *Server) handleListPantries(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.gate.RequireUserID(w, r); !ok {
		return
	}

	owner, pantries, err := s.pantries.OwnerPantries(r.Context(), parseUsername(r))
	if err != nil {
		http.Error(w, "failed to list pantries", http.StatusInternalServerError)
		s.logger.Error("list pantries error", "error", err)
		return
	}
	if owner == nil {
		http.NotFound(w, r)
		return
	}

	if err := s.renderPage(w,
		map[string]any{"CurrentUser": s.currentUser(r), "Owner": owner, "Pantries": pantries},
		"pages/pantries.html",
	); err != nil {
		s.logger.Error("render page error", "error", err)
	}
}

func (s *Server) handlePantryDetail(w http.ResponseWriter, r *http.Request) {
	pantry, items, err := s.pantries.GetPantry(r.Context(), r.PathValue("pantryID"))
	if err != nil {
		http.Error(w, "failed to get pantry", http.StatusInternalServerError)
		s.logger.Error("get pantry error", "error", err)
		return
	}
	if pantry == nil {
		http.NotFound(w, r)
		return
	}

	isOwner := s.gate.UserID(r) == pantry.OwnerID

	if err := s.renderPage(w,
		map[string]any{
			"CurrentUser": s.currentUser(r),
			"Pantry":      pantry,
			"Items":       items,
			"IsOwner":     isOwner,
			"Username":    parseUsername(r),
		},
		"pages/pantry_detail.html",
	); err != nil {
		s.logger.Error("render page error", "error", err)
	}
}

func (s *Server) handleNewPantry(w http.ResponseWriter, r *http.Request) {
	s.renderPantryEditor(w, r, http.StatusOK, form.PantryEditor{}, nil)
}

func (s *Server) handleEditPantry(w http.ResponseWriter, r *http.Request) {
	pantry, _, err := s.pantries.GetPantry(r.Context(), r.PathValue("pantryID"))
	if err != nil {
		http.Error(w, "failed to get pantry", http.StatusInternalServerError)
		s.logger.Error("get pantry error", "error", err)
		return
	}
	if pantry == nil {
		http.NotFound(w, r)
		return
	}

	s.renderPantryEditor(w, r, http.StatusOK, form.PantryEditor{ID: pantry.ID, Title: pantry.Title}, nil)
}

// handlePantryEditorAction is the pantry upsert endpoint, with the same
// contract as the item editor action.
func (s *Server) handlePantryEditorAction(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.gate.RequireUserID(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	f, errs := form.ParsePantryEditor(r.PostForm)
	if errs.Any() {
		s.renderPantryEditor(w, r, http.StatusBadRequest, f, errs)
		return
	}

	redirect, err := s.pantries.SubmitPantry(r.Context(), userID, f)
	if errors.Is(err, service.ErrNotFound) {
		notFound := form.Errors{}
		notFound.Add("", "Not found")
		s.renderPantryEditor(w, r, http.StatusNotFound, f, notFound)
		return
	}
	if err != nil {
		http.Error(w, "failed to save pantry", http.StatusInternalServerError)
		s.logger.Error("submit pantry error", "error", err)
		return
	}

	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

func (s *Server) renderPantryEditor(w http.ResponseWriter, r *http.Request, status int, f form.PantryEditor, errs form.Errors) {
	if err := s.renderPageStatus(w, status,
		map[string]any{
			"CurrentUser": s.currentUser(r),
			"Form":        f,
			"Errors":      errs,
		},
		"pages/pantry_editor.html",
	); err != nil {
		s.logger.Error("render page error", "error", err)
	}
}
