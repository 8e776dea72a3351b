package web

import (
	"errors"
	"net/http"

	"github.com/vbonduro/foodventory/internal/domain"
	"github.com/vbonduro/foodventory/internal/service"
)

// handlePantryScan accepts a photo of the caller's pantry and renders item
// suggestions prefilled into editor forms.
func (s *Server) handlePantryScan(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.gate.RequireUserID(w, r)
	if !ok {
		return
	}

	imageData, mimeType, ok := s.readImageUpload(w, r)
	if !ok {
		return
	}

	pantryID := r.FormValue("pantryId")
	if pantryID == "" {
		http.Error(w, "pantry id required", http.StatusBadRequest)
		return
	}

	suggestions, err := s.pantries.ScanPhoto(r.Context(), userID, pantryID, imageData, mimeType)
	if errors.Is(err, service.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if errors.Is(err, service.ErrScanUnavailable) {
		http.Error(w, "pantry scan not configured", http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		http.Error(w, "failed to scan photo", http.StatusInternalServerError)
		s.logger.Error("pantry scan error", "pantry_id", pantryID, "error", err)
		return
	}

	if err := s.renderPage(w,
		map[string]any{
			"CurrentUser": s.currentUser(r),
			"Suggestions": suggestions,
			"Units":       domain.QuantityUnits,
			"PantryID":    pantryID,
		},
		"pages/scan_results.html",
	); err != nil {
		s.logger.Error("render page error", "error", err)
	}
}
