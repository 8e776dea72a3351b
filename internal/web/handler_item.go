package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/vbonduro/foodventory/internal/domain"
	"github.com/vbonduro/foodventory/internal/form"
	"github.com/vbonduro/foodventory/internal/service"
)

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.gate.RequireUserID(w, r); !ok {
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	owner, items, err := s.items.OwnerItems(r.Context(), parseUsername(r), query)
	if err != nil {
		http.Error(w, "failed to list items", http.StatusInternalServerError)
		s.logger.Error("list items error", "error", err)
		return
	}
	if owner == nil {
		http.NotFound(w, r)
		return
	}

	if err := s.renderPage(w,
		map[string]any{"CurrentUser": s.currentUser(r), "Owner": owner, "Items": items, "Query": query},
		"pages/items.html",
	); err != nil {
		s.logger.Error("render page error", "error", err)
	}
}

func (s *Server) handleItemDetail(w http.ResponseWriter, r *http.Request) {
	item, err := s.items.GetItem(r.Context(), r.PathValue("itemID"))
	if err != nil {
		http.Error(w, "failed to get item", http.StatusInternalServerError)
		s.logger.Error("get item error", "error", err)
		return
	}
	if item == nil {
		http.NotFound(w, r)
		return
	}

	// Viewing is public; ownership only unlocks the edit and delete controls.
	isOwner := s.gate.UserID(r) == item.OwnerID

	if err := s.renderPage(w,
		map[string]any{
			"CurrentUser": s.currentUser(r),
			"Item":        item,
			"IsOwner":     isOwner,
			"Username":    parseUsername(r),
		},
		"pages/item_detail.html",
	); err != nil {
		s.logger.Error("render page error", "error", err)
	}
}

func (s *Server) handleNewItem(w http.ResponseWriter, r *http.Request) {
	s.renderItemEditor(w, r, http.StatusOK, form.ItemEditor{
		Quantity:     strconv.Itoa(domain.DefaultQuantity),
		QuantityUnit: domain.DefaultQuantityUnit,
	}, nil)
}

func (s *Server) handleEditItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.items.GetItem(r.Context(), r.PathValue("itemID"))
	if err != nil {
		http.Error(w, "failed to get item", http.StatusInternalServerError)
		s.logger.Error("get item error", "error", err)
		return
	}
	if item == nil {
		http.NotFound(w, r)
		return
	}

	s.renderItemEditor(w, r, http.StatusOK, form.ItemEditor{
		ID:           item.ID,
		Title:        item.Title,
		Content:      item.Content,
		Quantity:     strconv.FormatFloat(item.Quantity, 'f', -1, 64),
		QuantityUnit: item.QuantityUnit,
	}, nil)
}

// handleItemEditorAction is the item upsert endpoint. Validation failures
// re-render the editor with status 400 and the submitted values; an id
// outside the caller's ownership scope yields a generic 404.
func (s *Server) handleItemEditorAction(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.gate.RequireUserID(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	f, errs := form.ParseItemEditor(r.PostForm)
	if errs.Any() {
		s.renderItemEditor(w, r, http.StatusBadRequest, f, errs)
		return
	}

	redirect, err := s.items.SubmitItem(r.Context(), userID, f)
	if errors.Is(err, service.ErrNotFound) {
		notFound := form.Errors{}
		notFound.Add("", "Not found")
		s.renderItemEditor(w, r, http.StatusNotFound, f, notFound)
		return
	}
	if err != nil {
		http.Error(w, "failed to save item", http.StatusInternalServerError)
		s.logger.Error("submit item error", "error", err)
		return
	}

	http.Redirect(w, r, redirect, http.StatusSeeOther)
}

func (s *Server) renderItemEditor(w http.ResponseWriter, r *http.Request, status int, f form.ItemEditor, errs form.Errors) {
	if err := s.renderPageStatus(w, status,
		map[string]any{
			"CurrentUser": s.currentUser(r),
			"Form":        f,
			"Errors":      errs,
			"Units":       domain.QuantityUnits,
		},
		"pages/item_editor.html",
	); err != nil {
		s.logger.Error("render page error", "error", err)
	}
}

func (s *Server) handleDeleteItemAction(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.gate.RequireUserID(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "failed to parse form", http.StatusBadRequest)
		return
	}

	err := s.items.DeleteItem(r.Context(), userID, r.PostForm.Get("id"))
	if errors.Is(err, service.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "failed to delete item", http.StatusInternalServerError)
		s.logger.Error("delete item error", "error", err)
		return
	}

	user, err := s.users.ByID(r.Context(), userID)
	if err != nil || user == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/users/"+user.Username+"/items", http.StatusSeeOther)
}
