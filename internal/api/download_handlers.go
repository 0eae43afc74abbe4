package api

import (
	"encoding/json"
	"log"
	"net/http"
)

type RecordDownloadRequest struct {
	PostcardID   *int64  `json:"postcardId"`
	TemplateType *string `json:"templateType" example:"postcard"`
}

// @Summary      Record a download
// @Description  Registers that a composed postcard was downloaded for printing; feeds the usage statistics.
// @Tags         downloads
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        downloadRequest  body      RecordDownloadRequest  true  "Download details"
// @Success      201  {string}  string "Recorded"
// @Failure      400  {string}  string "Invalid request body"
// @Router       /downloads [post]
func (s *Server) RecordDownloadHandler(w http.ResponseWriter, r *http.Request) {
	var req RecordDownloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	userAgent := r.UserAgent()
	download, err := s.store.RecordDownload(r.Context(), req.PostcardID, req.TemplateType, &userAgent)
	if err != nil {
		log.Printf("ERROR: Failed to record download: %v", err)
		http.Error(w, "Failed to record download", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(download)
}

// @Summary      List downloads
// @Tags         downloads
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  models.Download
// @Router       /downloads [get]
func (s *Server) ListDownloadsHandler(w http.ResponseWriter, r *http.Request) {
	downloads, err := s.store.ListDownloads(r.Context())
	if err != nil {
		http.Error(w, "Failed to list downloads", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(downloads)
}
