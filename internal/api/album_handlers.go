package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"serwer-zdjec/internal/database"
	"serwer-zdjec/internal/models"
)

type AlbumResponse struct {
	ID          int64     `json:"id" example:"7"`
	Name        string    `json:"name" example:"Dolomites 2025"`
	Description *string   `json:"description,omitempty"`
	CoverPhoto  *string   `json:"coverPhoto,omitempty"`
	PhotoCount  int       `json:"photoCount" example:"12"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toAlbumResponse(a *models.Album) AlbumResponse {
	return AlbumResponse{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		CoverPhoto:  publicURLPtr(a.CoverPhoto),
		PhotoCount:  a.PhotoCount,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

type CreateAlbumRequest struct {
	Name        string  `json:"name" example:"Dolomites 2025"`
	Description *string `json:"description"`
	CoverPhoto  *string `json:"coverPhoto"`
}

// @Summary      Create an album
// @Tags         albums
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        createRequest  body      CreateAlbumRequest  true  "Album details"
// @Success      201  {object}  AlbumResponse
// @Failure      400  {string}  string "Album name cannot be empty"
// @Router       /albums [post]
func (s *Server) CreateAlbumHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	var req CreateAlbumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "Album name cannot be empty", http.StatusBadRequest)
		return
	}

	var cover *string
	if req.CoverPhoto != nil {
		c := storagePath(*req.CoverPhoto)
		cover = &c
	}

	album, err := s.store.CreateAlbum(r.Context(), claims.UserID, strings.TrimSpace(req.Name), req.Description, cover)
	if err != nil {
		log.Printf("ERROR: Failed to create album for user %d: %v", claims.UserID, err)
		http.Error(w, "Failed to create album", http.StatusInternalServerError)
		return
	}

	s.logAlbumEvent(r, claims.UserID, database.EventAlbumCreated, album.ID, album.Name)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toAlbumResponse(album))
}

// @Summary      List own albums
// @Tags         albums
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   AlbumResponse
// @Failure      401  {string}  string "Unauthorized"
// @Router       /albums [get]
func (s *Server) ListAlbumsHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	albums, err := s.store.ListUserAlbums(r.Context(), claims.UserID)
	if err != nil {
		http.Error(w, "Failed to list albums", http.StatusInternalServerError)
		return
	}

	resp := make([]AlbumResponse, 0, len(albums))
	for i := range albums {
		resp = append(resp, toAlbumResponse(&albums[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// @Summary      Get an album
// @Tags         albums
// @Produce      json
// @Security     BearerAuth
// @Param        albumId  path      int  true  "Album ID"
// @Success      200  {object}  AlbumResponse
// @Failure      404  {string}  string "Album not found"
// @Router       /albums/{albumId} [get]
func (s *Server) GetAlbumHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	albumID, err := strconv.ParseInt(chi.URLParam(r, "albumId"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid album ID", http.StatusBadRequest)
		return
	}

	album, err := s.store.GetAlbumByIDAndOwner(r.Context(), albumID, claims.UserID)
	if err != nil {
		http.Error(w, "Failed to retrieve album", http.StatusInternalServerError)
		return
	}
	if album == nil {
		http.Error(w, "Album not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toAlbumResponse(album))
}

type UpdateAlbumRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	CoverPhoto  *string `json:"coverPhoto"`
}

// @Summary      Update an album
// @Tags         albums
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        albumId        path      int                 true  "Album ID"
// @Param        updateRequest  body      UpdateAlbumRequest  true  "Fields to change"
// @Success      200  {object}  AlbumResponse
// @Failure      404  {string}  string "Album not found"
// @Router       /albums/{albumId} [patch]
func (s *Server) UpdateAlbumHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	albumID, err := strconv.ParseInt(chi.URLParam(r, "albumId"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid album ID", http.StatusBadRequest)
		return
	}

	var req UpdateAlbumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var cover *string
	if req.CoverPhoto != nil {
		c := storagePath(*req.CoverPhoto)
		cover = &c
	}

	album, err := s.store.UpdateAlbum(r.Context(), albumID, claims.UserID, database.UpdateAlbumParams{
		Name:        req.Name,
		Description: req.Description,
		CoverPhoto:  cover,
	})
	if err != nil {
		if errors.Is(err, database.ErrAlbumNotFound) {
			http.Error(w, "Album not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update album", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toAlbumResponse(album))
}

// @Summary      Delete an album
// @Description  Removes the album. Photos inside it survive and lose their album association.
// @Tags         albums
// @Security     BearerAuth
// @Param        albumId  path  int  true  "Album ID"
// @Success      204  {string}  string "Deleted"
// @Failure      404  {string}  string "Album not found"
// @Router       /albums/{albumId} [delete]
func (s *Server) DeleteAlbumHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	albumID, err := strconv.ParseInt(chi.URLParam(r, "albumId"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid album ID", http.StatusBadRequest)
		return
	}

	orphaned, err := s.store.DeleteAlbum(r.Context(), albumID, claims.UserID)
	if err != nil {
		if errors.Is(err, database.ErrAlbumNotFound) {
			http.Error(w, "Album not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete album", http.StatusInternalServerError)
		return
	}

	log.Printf("Usunięto album %d użytkownika %d, %d zdjęć pozostało bez albumu", albumID, claims.UserID, orphaned)
	s.logAlbumEvent(r, claims.UserID, database.EventAlbumDeleted, albumID, "")

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) logAlbumEvent(r *http.Request, userID int64, eventType string, albumID int64, name string) {
	payload := map[string]interface{}{"album_id": albumID}
	if name != "" {
		payload["name"] = name
	}
	if err := s.store.LogEvent(r.Context(), userID, eventType, payload); err != nil {
		log.Printf("WARN: failed to journal %s event: %v", eventType, err)
	}
}
