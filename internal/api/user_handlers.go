package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"serwer-zdjec/internal/database"
	"serwer-zdjec/internal/models"
	"serwer-zdjec/internal/storage"
	"serwer-zdjec/internal/tier"
	"serwer-zdjec/internal/upload"
)

type ProfileResponse struct {
	ID                   int64     `json:"id" example:"1"`
	Username             string    `json:"username" example:"ansel"`
	Email                *string   `json:"email,omitempty"`
	DisplayName          *string   `json:"displayName,omitempty"`
	Bio                  *string   `json:"bio,omitempty"`
	AvatarURL            *string   `json:"avatarUrl,omitempty"`
	Website              *string   `json:"website,omitempty"`
	Location             *string   `json:"location,omitempty"`
	FavoriteCamera       *string   `json:"favoriteCamera,omitempty"`
	FavoriteLens         *string   `json:"favoriteLens,omitempty"`
	FavoritePhotographer *string   `json:"favoritePhotographer,omitempty"`
	Tier                 string    `json:"tier" example:"FREE"`
	CreatedAt            time.Time `json:"createdAt"`
}

func toProfileResponse(u *models.User) ProfileResponse {
	return ProfileResponse{
		ID:                   u.ID,
		Username:             u.Username,
		Email:                u.Email,
		DisplayName:          u.DisplayName,
		Bio:                  u.Bio,
		AvatarURL:            publicURLPtr(u.AvatarURL),
		Website:              u.Website,
		Location:             u.Location,
		FavoriteCamera:       u.FavoriteCamera,
		FavoriteLens:         u.FavoriteLens,
		FavoritePhotographer: u.FavoritePhotographer,
		Tier:                 tier.Normalize(u.Tier),
		CreatedAt:            u.CreatedAt,
	}
}

// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ProfileResponse
// @Failure      401  {string}  string "Unauthorized"
// @Router       /me [get]
func (s *Server) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	user, err := s.loadUser(r.Context())
	if err != nil {
		http.Error(w, "Failed to retrieve user data", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toProfileResponse(user))
}

type UpdateProfileRequest struct {
	DisplayName          *string `json:"displayName"`
	Bio                  *string `json:"bio"`
	Website              *string `json:"website"`
	Location             *string `json:"location"`
	FavoriteCamera       *string `json:"favoriteCamera"`
	FavoriteLens         *string `json:"favoriteLens"`
	FavoritePhotographer *string `json:"favoritePhotographer"`
}

// @Summary      Update own profile
// @Description  Partial update; absent fields keep their value.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        updateRequest  body      UpdateProfileRequest  true  "Fields to change"
// @Success      200  {object}  ProfileResponse
// @Failure      400  {string}  string "Invalid request body"
// @Router       /me [patch]
func (s *Server) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := s.store.UpdateUserProfile(r.Context(), claims.UserID, database.UpdateUserProfileParams{
		DisplayName:          req.DisplayName,
		Bio:                  req.Bio,
		Website:              req.Website,
		Location:             req.Location,
		FavoriteCamera:       req.FavoriteCamera,
		FavoriteLens:         req.FavoriteLens,
		FavoritePhotographer: req.FavoritePhotographer,
	})
	if err != nil {
		http.Error(w, "Failed to update profile", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toProfileResponse(user))
}

type AvatarResponse struct {
	AvatarURL string `json:"avatarUrl" example:"/api/v1/images/ansel/avatar/9c1b....jpg"`
}

// @Summary      Upload an avatar
// @Description  Uploads a JPEG avatar. The image is cropped to a 200x200 square; the previous avatar is removed.
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "JPEG file"
// @Success      200  {object}  AvatarResponse
// @Failure      400  {string}  string "Invalid upload"
// @Failure      413  {string}  string "Quota exceeded"
// @Router       /me/avatar [post]
func (s *Server) UploadAvatarHandler(w http.ResponseWriter, r *http.Request) {
	user, err := s.loadUser(r.Context())
	if err != nil || user == nil {
		http.Error(w, "Failed to retrieve user data", http.StatusInternalServerError)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)
	if err := r.ParseMultipartForm(8 << 20); err != nil {
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

	oldAvatar := user.AvatarURL

	result, err := s.coordinator.Upload(r.Context(), user, upload.Request{
		Data:        data,
		ContentType: handler.Header.Get("Content-Type"),
		Filename:    handler.Filename,
		Category:    storage.CategoryAvatar,
	})
	if err != nil {
		s.writeUploadError(w, user.Username, err)
		return
	}

	// Kadrowanie po zapisie; oryginał zostaje przy błędzie kompresji
	if err := s.pipeline.CompressAvatar(result.RelativePath); err != nil {
		log.Printf("WARN: Avatar compression failed for user %s: %v", user.Username, err)
	} else if compressed, err := s.blobs.SizeOf(result.RelativePath); err == nil && compressed < result.SizeBytes {
		// Konto obciążono rozmiarem wgranego pliku; po kadrowaniu na
		// dysku leży mniejszy, więc różnicę trzeba oddać
		if err := s.ledger.Decrement(r.Context(), user, result.SizeBytes-compressed); err != nil {
			log.Printf("RECONCILE: avatar compressed to %d bytes but decrement of the difference failed: %v", compressed, err)
		}
	}

	if err := s.store.SetAvatarURL(r.Context(), user.ID, result.RelativePath); err != nil {
		log.Printf("ERROR: Failed to persist avatar URL for user %d: %v", user.ID, err)
		http.Error(w, "Failed to update avatar", http.StatusInternalServerError)
		return
	}

	// Stary avatar przestaje zajmować miejsce na koncie
	if oldAvatar != nil && *oldAvatar != "" {
		if size, err := s.blobs.SizeOf(*oldAvatar); err == nil && size > 0 {
			if err := s.blobs.Delete(*oldAvatar); err != nil {
				log.Printf("WARN: Failed to delete previous avatar %s: %v", *oldAvatar, err)
			} else if err := s.ledger.Decrement(r.Context(), user, size); err != nil {
				log.Printf("RECONCILE: previous avatar deleted but decrement of %d bytes failed: %v", size, err)
			}
		}
	}

	if err := s.store.LogEvent(r.Context(), user.ID, database.EventAvatarChanged, map[string]interface{}{
		"avatar_url": result.RelativePath,
	}); err != nil {
		log.Printf("WARN: failed to journal avatar event: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AvatarResponse{AvatarURL: publicURL(result.RelativePath)})
}

// @Summary      Get storage quota
// @Description  Returns the current storage usage, photo count and the limits of the user's tier.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  quota.Info
// @Failure      401  {string}  string "Unauthorized"
// @Router       /me/quota [get]
func (s *Server) GetQuotaHandler(w http.ResponseWriter, r *http.Request) {
	user, err := s.loadUser(r.Context())
	if err != nil || user == nil {
		http.Error(w, "Failed to retrieve user data", http.StatusInternalServerError)
		return
	}

	info, err := s.ledger.QuotaInfo(r.Context(), user)
	if err != nil {
		http.Error(w, "Failed to compute quota", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(info)
}

// @Summary      Get a user's storage quota
// @Description  Quota details are private; only the account owner may read them.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200  {object}  quota.Info
// @Failure      403  {string}  string "You can only view your own quota"
// @Router       /users/{username}/quota [get]
func (s *Server) GetUserQuotaHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	username := chi.URLParam(r, "username")
	if username != claims.Username {
		http.Error(w, "You can only view your own quota", http.StatusForbidden)
		return
	}

	s.GetQuotaHandler(w, r)
}

// @Summary      Get a public profile
// @Description  Returns the public part of a user's profile. Email and storage counters are not exposed.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200  {object}  ProfileResponse
// @Failure      404  {string}  string "User not found"
// @Router       /users/{username} [get]
func (s *Server) GetPublicProfileHandler(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := s.store.GetUserByUsername(r.Context(), username)
	if err != nil {
		http.Error(w, "Failed to retrieve user data", http.StatusInternalServerError)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	resp := toProfileResponse(user)
	// Adres e-mail widzi tylko właściciel konta
	if claims := GetUserFromContext(r.Context()); claims == nil || claims.UserID != user.ID {
		resp.Email = nil
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
