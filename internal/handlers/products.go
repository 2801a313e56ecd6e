package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/festiloc/festiloc-server/internal/models"
)

const defaultSimilarLimit = 4

// getStorefront returns everything the catalog page needs on first load.
// The payload is cached as one unit since products and categories change
// together.
func (r *Router) getStorefront(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()

	var cached interface{}
	if hit, _ := r.Cache.Get(ctx, "storefront", &cached); hit {
		respondJSON(w, http.StatusOK, cached)
		return
	}

	data, err := r.Catalog.LoadStorefront(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load storefront")
		return
	}

	_ = r.Cache.Set(ctx, "storefront", data)
	respondJSON(w, http.StatusOK, data)
}

// listProducts returns the available catalog, optionally filtered by
// category query params.
func (r *Router) listProducts(w http.ResponseWriter, req *http.Request) {
	query := r.DB.WithContext(req.Context()).Where("available = ?", true)
	if cat := req.URL.Query().Get("category"); cat != "" {
		query = query.Where("category = ?", cat)
	}
	if sub := req.URL.Query().Get("subCategory"); sub != "" {
		query = query.Where("sub_category = ?", sub)
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// getProduct returns a single product by id or slug.
func (r *Router) getProduct(w http.ResponseWriter, req *http.Request) {
	key := mux.Vars(req)["id"]

	var product models.Product
	if err := r.DB.WithContext(req.Context()).
		Where("id::text = ? OR slug = ?", key, key).
		First(&product).Error; err != nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

// getSimilarProducts runs the recommendation pipeline for one product.
func (r *Router) getSimilarProducts(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	limit := defaultSimilarLimit
	if raw := req.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 24 {
			respondError(w, http.StatusBadRequest, "limit must be between 1 and 24")
			return
		}
		limit = parsed
	}

	scored, err := r.Catalog.SimilarProducts(req.Context(), id, limit)
	if err != nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	respondJSON(w, http.StatusOK, scored)
}

// createProduct creates a catalog product (admin).
func (r *Router) createProduct(w http.ResponseWriter, req *http.Request) {
	var product models.Product
	if err := json.NewDecoder(req.Body).Decode(&product); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if product.Name == "" || product.Slug == "" {
		respondError(w, http.StatusBadRequest, "name and slug are required")
		return
	}
	if product.PriceHT < 0 || product.PriceTTC < 0 || product.Stock < 0 {
		respondError(w, http.StatusBadRequest, "prices and stock must be non-negative")
		return
	}

	if err := r.DB.Create(&product).Error; err != nil {
		respondError(w, http.StatusBadRequest, humanizeDBError(err))
		return
	}

	r.invalidateCatalogCache(req)
	respondJSON(w, http.StatusCreated, product)
}

// updateProduct updates a catalog product (admin).
func (r *Router) updateProduct(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var product models.Product
	if err := r.DB.First(&product, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	if err := json.NewDecoder(req.Body).Decode(&product); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	product.ID = id
	if product.PriceHT < 0 || product.PriceTTC < 0 || product.Stock < 0 {
		respondError(w, http.StatusBadRequest, "prices and stock must be non-negative")
		return
	}

	if err := r.DB.Save(&product).Error; err != nil {
		respondError(w, http.StatusBadRequest, humanizeDBError(err))
		return
	}

	r.invalidateCatalogCache(req)
	respondJSON(w, http.StatusOK, product)
}

// deleteProduct soft-deletes a product (admin). Packages referencing it keep
// their line items; those lines price as zero until edited.
func (r *Router) deleteProduct(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	if err := r.DB.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	r.invalidateCatalogCache(req)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}

func (r *Router) invalidateCatalogCache(req *http.Request) {
	_ = r.Cache.InvalidatePattern(req.Context(), "storefront")
	_ = r.Cache.InvalidatePattern(req.Context(), "packages:*")
}
