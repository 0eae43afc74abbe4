package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"serwer-zdjec/internal/database"
	"serwer-zdjec/internal/imaging"
	"serwer-zdjec/internal/models"
	"serwer-zdjec/internal/quota"
	"serwer-zdjec/internal/upload"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type PhotoResponse struct {
	ID             int64      `json:"id" example:"42"`
	AlbumID        *int64     `json:"albumId,omitempty"`
	ImageURL       string     `json:"imageUrl"`
	ImageURLThumb  *string    `json:"imageUrlThumb,omitempty"`
	ImageURLMedium *string    `json:"imageUrlMedium,omitempty"`
	Title          *string    `json:"title,omitempty"`
	Description    *string    `json:"description,omitempty"`
	Location       *string    `json:"location,omitempty"`
	Camera         *string    `json:"camera,omitempty"`
	Lens           *string    `json:"lens,omitempty"`
	Settings       *string    `json:"settings,omitempty"`
	TakenAt        *time.Time `json:"takenAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func toPhotoResponse(p *models.Photo) PhotoResponse {
	return PhotoResponse{
		ID:             p.ID,
		AlbumID:        p.AlbumID,
		ImageURL:       publicURL(p.ImageURL),
		ImageURLThumb:  publicURLPtr(p.ImageURLThumb),
		ImageURLMedium: publicURLPtr(p.ImageURLMedium),
		Title:          p.Title,
		Description:    p.Description,
		Location:       p.Location,
		Camera:         p.Camera,
		Lens:           p.Lens,
		Settings:       p.Settings,
		TakenAt:        p.TakenAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

type PhotoListResponse struct {
	Photos     []PhotoResponse `json:"photos"`
	Total      int             `json:"total" example:"57"`
	Page       int             `json:"page" example:"1"`
	PageSize   int             `json:"pageSize" example:"20"`
	TotalPages int             `json:"totalPages" example:"3"`
}

// @Summary      List own photos
// @Description  Returns the authenticated user's photos, newest first, paginated.
// @Tags         photos
// @Produce      json
// @Security     BearerAuth
// @Param        page      query     int  false  "Page number, starting at 1"
// @Param        pageSize  query     int  false  "Items per page, max 100"
// @Success      200  {object}  PhotoListResponse
// @Failure      401  {string}  string "Unauthorized"
// @Failure      500  {string}  string "Internal Server Error"
// @Router       /photos [get]
func (s *Server) ListPhotosHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	total, err := s.store.CountUserPhotos(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "Failed to list photos", http.StatusInternalServerError)
		return
	}

	photos, err := s.store.ListUserPhotos(r.Context(), claims.UserID, pageSize, (page-1)*pageSize)
	if err != nil {
		http.Error(w, "Failed to list photos", http.StatusInternalServerError)
		return
	}

	resp := PhotoListResponse{
		Photos:   make([]PhotoResponse, 0, len(photos)),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
	resp.TotalPages = (total + pageSize - 1) / pageSize
	for i := range photos {
		resp.Photos = append(resp.Photos, toPhotoResponse(&photos[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// @Summary      Get a photo
// @Tags         photos
// @Produce      json
// @Security     BearerAuth
// @Param        photoId  path      int  true  "Photo ID"
// @Success      200  {object}  PhotoResponse
// @Failure      404  {string}  string "Photo not found"
// @Router       /photos/{photoId} [get]
func (s *Server) GetPhotoHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	photoID, err := strconv.ParseInt(chi.URLParam(r, "photoId"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid photo ID", http.StatusBadRequest)
		return
	}

	photo, err := s.store.GetPhotoByID(r.Context(), photoID)
	if err != nil {
		http.Error(w, "Failed to retrieve photo", http.StatusInternalServerError)
		return
	}
	if photo == nil || photo.OwnerID != claims.UserID {
		http.Error(w, "Photo not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toPhotoResponse(photo))
}

type SavePhotoRequest struct {
	ImageURL    string  `json:"imageUrl"`
	AlbumID     *int64  `json:"albumId"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Camera      *string `json:"camera"`
	Lens        *string `json:"lens"`
	Settings    *string `json:"settings"`
	TakenAt     *string `json:"takenAt"`
}

// @Summary      Save photo metadata
// @Description  Creates or replaces the catalog entry for an already uploaded image, identified by its URL. Does not touch storage accounting.
// @Tags         photos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        saveRequest  body      SavePhotoRequest  true  "Photo metadata"
// @Success      200  {object}  PhotoResponse "Existing entry updated"
// @Success      201  {object}  PhotoResponse "New entry created"
// @Failure      400  {string}  string "Invalid request"
// @Failure      413  {string}  string "Photo limit reached"
// @Router       /photos [post]
func (s *Server) SavePhotoHandler(w http.ResponseWriter, r *http.Request) {
	user, err := s.loadUser(r.Context())
	if err != nil || user == nil {
		http.Error(w, "Failed to retrieve user data", http.StatusInternalServerError)
		return
	}

	var req SavePhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ImageURL == "" {
		http.Error(w, "imageUrl is required", http.StatusBadRequest)
		return
	}

	var takenAt *time.Time
	if req.TakenAt != nil {
		takenAt, err = parseTakenAt(*req.TakenAt)
		if err != nil {
			http.Error(w, "Invalid takenAt, use RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	relPath := storagePath(req.ImageURL)
	thumb, medium := deriveVersionURLs(relPath)

	photo, created, err := s.coordinator.UpsertMetadata(r.Context(), user, database.UpsertPhotoParams{
		OwnerID:        user.ID,
		AlbumID:        req.AlbumID,
		ImageURL:       relPath,
		ImageURLThumb:  thumb,
		ImageURLMedium: medium,
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		Camera:         req.Camera,
		Lens:           req.Lens,
		Settings:       req.Settings,
		TakenAt:        takenAt,
	})
	if err != nil {
		var qerr *quota.QuotaError
		switch {
		case errors.As(err, &qerr):
			http.Error(w, qerr.Error(), http.StatusRequestEntityTooLarge)
		case errors.Is(err, database.ErrAlbumNotFound):
			http.Error(w, "Album not found", http.StatusBadRequest)
		default:
			log.Printf("ERROR: Failed to save photo metadata for user %s: %v", user.Username, err)
			http.Error(w, "Failed to save photo", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if created {
		w.WriteHeader(http.StatusCreated)
	}
	json.NewEncoder(w).Encode(toPhotoResponse(photo))
}

type UpdatePhotoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	Camera      *string `json:"camera"`
	Lens        *string `json:"lens"`
	Settings    *string `json:"settings"`
	TakenAt     *string `json:"takenAt"`
	AlbumID     *int64  `json:"albumId"`
	ClearAlbum  bool    `json:"clearAlbum"`
}

// @Summary      Update photo metadata
// @Description  Partial update; absent fields keep their value. Set clearAlbum to remove the album association.
// @Tags         photos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        photoId        path      int                 true  "Photo ID"
// @Param        updateRequest  body      UpdatePhotoRequest  true  "Fields to change"
// @Success      200  {object}  PhotoResponse
// @Failure      404  {string}  string "Photo not found"
// @Router       /photos/{photoId} [patch]
func (s *Server) UpdatePhotoHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	photoID, err := strconv.ParseInt(chi.URLParam(r, "photoId"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid photo ID", http.StatusBadRequest)
		return
	}

	var req UpdatePhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	photo, err := s.store.GetPhotoByID(r.Context(), photoID)
	if err != nil {
		http.Error(w, "Failed to retrieve photo", http.StatusInternalServerError)
		return
	}
	if photo == nil || photo.OwnerID != claims.UserID {
		http.Error(w, "Photo not found", http.StatusNotFound)
		return
	}

	var takenAt *time.Time
	if req.TakenAt != nil {
		takenAt, err = parseTakenAt(*req.TakenAt)
		if err != nil {
			http.Error(w, "Invalid takenAt, use RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
			return
		}
	}

	if req.AlbumID != nil {
		album, err := s.store.GetAlbumByIDAndOwner(r.Context(), *req.AlbumID, claims.UserID)
		if err != nil {
			http.Error(w, "Failed to look up album", http.StatusInternalServerError)
			return
		}
		if album == nil {
			http.Error(w, "Album not found", http.StatusBadRequest)
			return
		}
	}

	updated, err := s.store.UpdatePhotoMetadata(r.Context(), photoID, database.UpdatePhotoParams{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Camera:      req.Camera,
		Lens:        req.Lens,
		Settings:    req.Settings,
		TakenAt:     takenAt,
		AlbumID:     req.AlbumID,
		ClearAlbum:  req.ClearAlbum,
	})
	if err != nil {
		if errors.Is(err, database.ErrPhotoNotFound) {
			http.Error(w, "Photo not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update photo", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toPhotoResponse(updated))
}

// @Summary      Delete a photo
// @Description  Removes the photo, its derived versions and the catalog entry, and releases the storage it occupied.
// @Tags         photos
// @Security     BearerAuth
// @Param        photoId  path  int  true  "Photo ID"
// @Success      204  {string}  string "Deleted"
// @Failure      403  {string}  string "Forbidden"
// @Failure      404  {string}  string "Photo not found"
// @Router       /photos/{photoId} [delete]
func (s *Server) DeletePhotoHandler(w http.ResponseWriter, r *http.Request) {
	user, err := s.loadUser(r.Context())
	if err != nil || user == nil {
		http.Error(w, "Failed to retrieve user data", http.StatusInternalServerError)
		return
	}

	photoID, err := strconv.ParseInt(chi.URLParam(r, "photoId"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid photo ID", http.StatusBadRequest)
		return
	}

	if err := s.coordinator.DeletePhoto(r.Context(), user, photoID); err != nil {
		switch {
		case errors.Is(err, upload.ErrPhotoNotFound):
			http.Error(w, "Photo not found", http.StatusNotFound)
		case errors.Is(err, upload.ErrForbidden):
			http.Error(w, "You can only delete your own photos", http.StatusForbidden)
		default:
			log.Printf("ERROR: Failed to delete photo %d: %v", photoID, err)
			http.Error(w, "Failed to delete photo", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// deriveVersionURLs returns the expected thumb and medium paths for an
// original; used when the client registers metadata for an image whose
// versions were generated at upload time.
func deriveVersionURLs(relPath string) (*string, *string) {
	if relPath == "" {
		return nil, nil
	}
	t, m := imaging.VersionPaths(relPath)
	return &t, &m
}
