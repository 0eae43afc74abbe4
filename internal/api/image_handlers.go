package api

import (
	"errors"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"serwer-zdjec/internal/storage"
)

// @Summary      Serve an image
// @Description  Streams a stored JPEG by its relative path, e.g. /images/ansel/photo/3f2a..._thumb.jpg.
// @Tags         images
// @Produce      image/jpeg
// @Param        path  path      string  true  "Relative image path"
// @Success      200  {file}    file
// @Failure      404  {string}  string "Image not found"
// @Router       /images/{path} [get]
func (s *Server) ServeImageHandler(w http.ResponseWriter, r *http.Request) {
	relPath := chi.URLParam(r, "*")
	if relPath == "" {
		http.Error(w, "Image path is required", http.StatusBadRequest)
		return
	}

	absPath, err := s.blobs.Resolve(relPath)
	if err != nil {
		if errors.Is(err, storage.ErrPathOutsideRoot) {
			// Próba wyjścia poza katalog przechowywania
			http.Error(w, "Image not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Image not found", http.StatusNotFound)
		return
	}

	info, err := os.Stat(absPath)
	if err != nil || info.IsDir() {
		http.Error(w, "Image not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "private, max-age=86400")
	http.ServeFile(w, r, absPath)
}
