package api

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"serwer-zdjec/internal/database"
	"serwer-zdjec/internal/quota"
	"serwer-zdjec/internal/storage"
	"serwer-zdjec/internal/upload"
)

// maxUploadBody bounds the multipart body; the real per-file limit is
// the tier's, enforced by the quota check.
const maxUploadBody = 64 << 20

type ImageUploadResponse struct {
	ID        *int64 `json:"id,omitempty" example:"42"`
	URL       string `json:"url" example:"/api/v1/images/ansel/photo/3f2a....jpg"`
	URLThumb  string `json:"urlThumb,omitempty"`
	URLMedium string `json:"urlMedium,omitempty"`
	Filename  string `json:"filename" example:"yosemite.jpg"`
	FileSize  int64  `json:"fileSize" example:"2048576"`
	Created   bool   `json:"created" example:"true"`
}

// parseTakenAt accepts RFC3339 timestamps and bare dates, which is what
// EXIF-derived clients actually send.
func parseTakenAt(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func formValuePtr(r *http.Request, key string) *string {
	v := strings.TrimSpace(r.FormValue(key))
	if v == "" {
		return nil
	}
	return &v
}

// @Summary      Upload an image
// @Description  Uploads a JPEG image. For type "photo" a catalog entry is created and thumbnail/medium versions are derived. Quota limits of the user's tier apply.
// @Tags         images
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file            formData  file    true   "JPEG file"
// @Param        type            formData  string  false  "Image category: avatar, photo, postcard or other (default photo)"
// @Param        albumId         formData  int     false  "Album to place the photo in"
// @Param        title           formData  string  false  "Photo title"
// @Param        description     formData  string  false  "Photo description"
// @Param        takenAt         formData  string  false  "Capture time, RFC3339 or YYYY-MM-DD"
// @Param        idempotencyKey  formData  string  false  "Client retry key, suppresses duplicate submissions for 30s"
// @Success      201  {object}  ImageUploadResponse
// @Failure      400  {string}  string "Invalid upload"
// @Failure      401  {string}  string "Unauthorized"
// @Failure      413  {string}  string "Quota exceeded"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /images/upload [post]
func (s *Server) UploadImageHandler(w http.ResponseWriter, r *http.Request) {
	user, err := s.loadUser(r.Context())
	if err != nil || user == nil {
		http.Error(w, "Failed to retrieve user data", http.StatusInternalServerError)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Error parsing multipart form", http.StatusBadRequest)
		return
	}

	file, handler, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "Error retrieving the file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "Error reading the file", http.StatusInternalServerError)
		return
	}

	var albumID *int64
	if raw := r.FormValue("albumId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			http.Error(w, "Invalid albumId", http.StatusBadRequest)
			return
		}
		albumID = &id
	}

	takenAt, err := parseTakenAt(r.FormValue("takenAt"))
	if err != nil {
		http.Error(w, "Invalid takenAt, use RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	idempotencyKey := r.FormValue("idempotencyKey")
	if idempotencyKey == "" {
		idempotencyKey = r.Header.Get("Idempotency-Key")
	}

	req := upload.Request{
		Data:           data,
		ContentType:    handler.Header.Get("Content-Type"),
		Filename:       handler.Filename,
		Category:       storage.ParseCategory(r.FormValue("type")),
		AlbumID:        albumID,
		IdempotencyKey: idempotencyKey,
		Metadata: upload.Metadata{
			Title:       formValuePtr(r, "title"),
			Description: formValuePtr(r, "description"),
			Location:    formValuePtr(r, "location"),
			Camera:      formValuePtr(r, "camera"),
			Lens:        formValuePtr(r, "lens"),
			Settings:    formValuePtr(r, "settings"),
			TakenAt:     takenAt,
		},
	}

	result, err := s.coordinator.Upload(r.Context(), user, req)
	if err != nil {
		s.writeUploadError(w, user.Username, err)
		return
	}

	resp := ImageUploadResponse{
		URL:      publicURL(result.RelativePath),
		Filename: handler.Filename,
		FileSize: result.SizeBytes,
		Created:  result.Created,
	}
	if result.Photo != nil {
		resp.ID = &result.Photo.ID
		resp.URLThumb = publicURL(result.ThumbPath)
		resp.URLMedium = publicURL(result.MediumPath)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// writeUploadError maps domain errors to HTTP statuses; quota errors
// carry the user-facing message verbatim.
func (s *Server) writeUploadError(w http.ResponseWriter, username string, err error) {
	var qerr *quota.QuotaError
	switch {
	case errors.As(err, &qerr):
		http.Error(w, qerr.Error(), http.StatusRequestEntityTooLarge)
	case errors.Is(err, storage.ErrEmptyFile):
		http.Error(w, "Uploaded file is empty", http.StatusBadRequest)
	case errors.Is(err, storage.ErrNotJPEG):
		http.Error(w, "Only JPEG images are accepted", http.StatusBadRequest)
	case errors.Is(err, storage.ErrTypeMismatch):
		http.Error(w, "File type does not match its content", http.StatusBadRequest)
	case errors.Is(err, database.ErrAlbumNotFound):
		http.Error(w, "Album not found", http.StatusBadRequest)
	default:
		log.Printf("ERROR: Upload failed for user %s: %v", username, err)
		http.Error(w, "Failed to process upload", http.StatusInternalServerError)
	}
}
