package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/festiloc/festiloc-server/internal/models"
	"github.com/festiloc/festiloc-server/internal/seo"
)

// listKeywords returns the saved SEO keywords (admin).
func (r *Router) listKeywords(w http.ResponseWriter, req *http.Request) {
	var keywords []models.SavedKeyword
	if err := r.DB.WithContext(req.Context()).Order("created_at DESC").Find(&keywords).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch keywords")
		return
	}
	respondJSON(w, http.StatusOK, keywords)
}

// createKeyword saves a keyword to the workbench (admin).
func (r *Router) createKeyword(w http.ResponseWriter, req *http.Request) {
	var keyword models.SavedKeyword
	if err := json.NewDecoder(req.Body).Decode(&keyword); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if keyword.Keyword == "" {
		respondError(w, http.StatusBadRequest, "keyword is required")
		return
	}
	if keyword.Source == "" {
		keyword.Source = "manual"
	}

	if err := r.DB.Create(&keyword).Error; err != nil {
		respondError(w, http.StatusBadRequest, humanizeDBError(err))
		return
	}
	respondJSON(w, http.StatusCreated, keyword)
}

// deleteKeyword removes a saved keyword (admin).
func (r *Router) deleteKeyword(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]
	if err := r.DB.Delete(&models.SavedKeyword{}, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete keyword")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Keyword deleted"})
}

// generateKeywords runs the AI keyword generator and saves the suggestions
// (admin).
func (r *Router) generateKeywords(w http.ResponseWriter, req *http.Request) {
	if r.Keywords == nil {
		respondError(w, http.StatusServiceUnavailable, "Keyword generation is not configured")
		return
	}

	var genReq seo.GenerateRequest
	if err := json.NewDecoder(req.Body).Decode(&genReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if genReq.Topic == "" {
		respondError(w, http.StatusBadRequest, "topic is required")
		return
	}

	suggestions, err := r.Keywords.Generate(req.Context(), genReq)
	if err != nil {
		// Malformed model output is recoverable: the admin just retries.
		respondError(w, http.StatusBadGateway, "Keyword generation failed: "+err.Error())
		return
	}

	saved := make([]models.SavedKeyword, 0, len(suggestions))
	for _, s := range suggestions {
		keyword := models.SavedKeyword{
			Keyword:    s.Keyword,
			Locale:     genReq.Locale,
			Source:     "generated",
			Relevance:  s.Relevance,
			Difficulty: s.Difficulty,
			Volume:     s.Volume,
			Type:       s.Type,
		}
		if err := r.DB.Create(&keyword).Error; err != nil {
			continue
		}
		saved = append(saved, keyword)
	}

	respondJSON(w, http.StatusOK, saved)
}

// CheckRankRequest asks for one keyword's position for a target URL.
type CheckRankRequest struct {
	Keyword string `json:"keyword"`
	URL     string `json:"url"`
	Notes   string `json:"notes,omitempty"`
}

// checkRank runs a single rank check and persists the result (admin).
func (r *Router) checkRank(w http.ResponseWriter, req *http.Request) {
	if r.Checker == nil {
		respondError(w, http.StatusServiceUnavailable, "Rank checking is not configured")
		return
	}

	var checkReq CheckRankRequest
	if err := json.NewDecoder(req.Body).Decode(&checkReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if checkReq.Keyword == "" || checkReq.URL == "" {
		respondError(w, http.StatusBadRequest, "keyword and url are required")
		return
	}

	result, err := r.Checker.CheckRank(req.Context(), checkReq.Keyword, checkReq.URL)
	if err != nil {
		var rankErr *seo.RankError
		if errors.As(err, &rankErr) {
			respondError(w, http.StatusBadGateway, rankErr.Kind.HumanMessage())
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ranking, err := r.Ranks.SaveResult(result, checkReq.Notes)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to save ranking")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"result":  result,
		"ranking": ranking,
	})
}

// CheckBatchRequest asks for positions of several keywords against one URL.
type CheckBatchRequest struct {
	Keywords []string `json:"keywords"`
	URL      string   `json:"url"`
}

// checkRankBatch checks keywords sequentially and persists each result; the
// response carries per-item progress entries in completion order (admin).
func (r *Router) checkRankBatch(w http.ResponseWriter, req *http.Request) {
	if r.Checker == nil {
		respondError(w, http.StatusServiceUnavailable, "Rank checking is not configured")
		return
	}

	var batchReq CheckBatchRequest
	if err := json.NewDecoder(req.Body).Decode(&batchReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if len(batchReq.Keywords) == 0 || batchReq.URL == "" {
		respondError(w, http.StatusBadRequest, "keywords and url are required")
		return
	}

	var progress []seo.BatchProgress
	_, err := r.Checker.CheckBatch(req.Context(), batchReq.Keywords, batchReq.URL, func(p seo.BatchProgress) {
		if p.Result != nil {
			if _, err := r.Ranks.SaveResult(p.Result, ""); err != nil {
				p.Error = "saved check failed to persist: " + err.Error()
			}
		}
		progress = append(progress, p)
	})
	if err != nil {
		respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, progress)
}

// listRankings returns stored rankings, most recent first (admin).
func (r *Router) listRankings(w http.ResponseWriter, req *http.Request) {
	rankings, err := r.Ranks.ListRankings()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch rankings")
		return
	}
	respondJSON(w, http.StatusOK, rankings)
}
