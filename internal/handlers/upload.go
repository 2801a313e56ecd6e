package handlers

import (
	"net/http"
	"strings"
)

// 10 MB: well above any storefront photo after client-side resizing.
const maxUploadSize = 10 << 20

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// uploadImage stores a multipart image and returns its public URL (admin).
// The optional "folder" field groups objects (products, realizations...).
func (r *Router) uploadImage(w http.ResponseWriter, req *http.Request) {
	req.Body = http.MaxBytesReader(w, req.Body, maxUploadSize)
	if err := req.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "Upload too large or malformed")
		return
	}

	file, header, err := req.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedImageTypes[strings.ToLower(contentType)] {
		respondError(w, http.StatusBadRequest, "Only JPEG, PNG and WebP images are accepted")
		return
	}

	folder := req.FormValue("folder")
	if folder == "" {
		folder = "uploads"
	}

	key, err := r.Storage.Save(folder, header.Filename, file)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{
		"key": key,
		"url": r.Storage.PublicURL(key),
	})
}
