package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/festiloc/festiloc-server/internal/models"
)

// listRealizations returns published portfolio entries, optionally filtered
// by event type.
func (r *Router) listRealizations(w http.ResponseWriter, req *http.Request) {
	query := r.DB.WithContext(req.Context()).Where("published = ?", true)
	if eventType := req.URL.Query().Get("eventType"); eventType != "" {
		query = query.Where("event_type = ?", eventType)
	}

	var realizations []models.Realization
	if err := query.Order("event_date DESC NULLS LAST, created_at DESC").Find(&realizations).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch realizations")
		return
	}
	respondJSON(w, http.StatusOK, realizations)
}

// getRealization returns one portfolio entry by id or slug.
func (r *Router) getRealization(w http.ResponseWriter, req *http.Request) {
	key := mux.Vars(req)["id"]

	var realization models.Realization
	if err := r.DB.WithContext(req.Context()).
		Where("id::text = ? OR slug = ?", key, key).
		First(&realization).Error; err != nil {
		respondError(w, http.StatusNotFound, "Realization not found")
		return
	}
	respondJSON(w, http.StatusOK, realization)
}

// createRealization creates a portfolio entry (admin).
func (r *Router) createRealization(w http.ResponseWriter, req *http.Request) {
	var realization models.Realization
	if err := json.NewDecoder(req.Body).Decode(&realization); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if realization.Title == "" || realization.Slug == "" {
		respondError(w, http.StatusBadRequest, "title and slug are required")
		return
	}

	if err := r.DB.Create(&realization).Error; err != nil {
		respondError(w, http.StatusBadRequest, humanizeDBError(err))
		return
	}
	respondJSON(w, http.StatusCreated, realization)
}

// updateRealization updates a portfolio entry (admin).
func (r *Router) updateRealization(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var realization models.Realization
	if err := r.DB.First(&realization, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Realization not found")
		return
	}

	if err := json.NewDecoder(req.Body).Decode(&realization); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	realization.ID = id

	if err := r.DB.Save(&realization).Error; err != nil {
		respondError(w, http.StatusBadRequest, humanizeDBError(err))
		return
	}
	respondJSON(w, http.StatusOK, realization)
}

// deleteRealization removes a portfolio entry (admin).
func (r *Router) deleteRealization(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var realization models.Realization
	if err := r.DB.First(&realization, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Realization not found")
		return
	}

	if err := r.DB.Delete(&realization).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete realization")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Realization deleted"})
}
