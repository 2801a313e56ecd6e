package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/festiloc/festiloc-server/internal/models"
	"github.com/festiloc/festiloc-server/internal/services/quote"
)

// listPackages returns published packages with their items and options.
func (r *Router) listPackages(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var cached interface{}
	if hit, _ := r.Cache.Get(ctx, "packages:list", &cached); hit {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	var packages []models.Package
	if err := r.DB.WithContext(ctx).
		Preload("Items").Preload("Options.Choices").
		Where("published = ?", true).
		Order("created_at DESC").
		Find(&packages).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch packages")
		return
	}

	_ = r.Cache.Set(ctx, "packages:list", packages)
	respondJSON(w, http.StatusOK, packages)
}

// getPackage returns one package by id or slug.
func (r *Router) getPackage(w http.ResponseWriter, req *http.Request) {
	pkg, err := r.loadPackage(req)
	if err != nil {
		respondError(w, http.StatusNotFound, "Package not found")
		return
	}
	respondJSON(w, http.StatusOK, pkg)
}

// getPackageQuote renders the package as a PDF quote.
func (r *Router) getPackageQuote(w http.ResponseWriter, req *http.Request) {
	pkg, err := r.loadPackage(req)
	if err != nil {
		respondError(w, http.StatusNotFound, "Package not found")
		return
	}

	ids := make([]string, 0, len(pkg.Items))
	for _, item := range pkg.Items {
		ids = append(ids, item.ProductID)
	}
	lookup := make(map[string]models.Product, len(ids))
	if len(ids) > 0 {
		var products []models.Product
		if err := r.DB.WithContext(req.Context()).Where("id IN ?", ids).Find(&products).Error; err != nil {
			respondError(w, http.StatusInternalServerError, "Failed to load package products")
			return
		}
		for _, p := range products {
			lookup[p.ID] = p
		}
	}

	pdf, err := quote.GeneratePDF(pkg, lookup, r.Cfg.PublicBaseURL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to render quote")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", "devis-"+pkg.Slug+".pdf"))
	w.Write(pdf)
}

// createPackage creates a package and computes its totals (admin).
func (r *Router) createPackage(w http.ResponseWriter, req *http.Request) {
	var pkg models.Package
	if err := json.NewDecoder(req.Body).Decode(&pkg); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if msg := validatePackage(&pkg); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	if err := r.Catalog.SavePackage(req.Context(), &pkg); err != nil {
		respondError(w, http.StatusBadRequest, humanizeDBError(err))
		return
	}

	r.invalidateCatalogCache(req)
	respondJSON(w, http.StatusCreated, pkg)
}

// updatePackage replaces a package's content and recomputes totals (admin).
func (r *Router) updatePackage(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var existing models.Package
	if err := r.DB.Preload("Items").Preload("Options.Choices").
		First(&existing, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Package not found")
		return
	}

	var incoming models.Package
	if err := json.NewDecoder(req.Body).Decode(&incoming); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	incoming.ID = id
	if msg := validatePackage(&incoming); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	// Replace the item and option lists wholesale: the totals derive from
	// the new list, not a merge with the old one.
	if err := r.DB.Where("package_id = ?", id).Delete(&models.PackageItem{}).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update package items")
		return
	}
	if err := r.DB.Where("package_id = ?", id).Delete(&models.PackageOption{}).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to update package options")
		return
	}
	for i := range incoming.Items {
		incoming.Items[i].ID = 0
		incoming.Items[i].PackageID = id
	}
	for i := range incoming.Options {
		incoming.Options[i].ID = 0
		incoming.Options[i].PackageID = id
		for j := range incoming.Options[i].Choices {
			incoming.Options[i].Choices[j].ID = 0
		}
	}

	if err := r.Catalog.SavePackage(req.Context(), &incoming); err != nil {
		respondError(w, http.StatusBadRequest, humanizeDBError(err))
		return
	}

	r.invalidateCatalogCache(req)
	respondJSON(w, http.StatusOK, incoming)
}

// deletePackage soft-deletes a package (admin).
func (r *Router) deletePackage(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	if err := r.DB.Delete(&models.Package{}, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete package")
		return
	}

	r.invalidateCatalogCache(req)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Package deleted"})
}

func (r *Router) loadPackage(req *http.Request) (*models.Package, error) {
	key := mux.Vars(req)["id"]
	var pkg models.Package
	err := r.DB.WithContext(req.Context()).
		Preload("Items").Preload("Options.Choices").
		Where("id::text = ? OR slug = ?", key, key).
		First(&pkg).Error
	return &pkg, err
}

// validatePackage enforces the boundary checks so invalid values never reach
// the pricing logic.
func validatePackage(pkg *models.Package) string {
	if pkg.Name == "" || pkg.Slug == "" {
		return "name and slug are required"
	}
	if pkg.DiscountPct < 0 || pkg.DiscountPct > 100 {
		return "discountPct must be between 0 and 100"
	}
	for _, item := range pkg.Items {
		if item.Quantity < 1 {
			return "item quantities must be positive"
		}
		if item.Customizable && item.MinQty != nil && item.MaxQty != nil && *item.MinQty > *item.MaxQty {
			return "item minQty cannot exceed maxQty"
		}
	}
	return ""
}
