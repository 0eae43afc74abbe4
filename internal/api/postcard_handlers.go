package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"serwer-zdjec/internal/ai"
	"serwer-zdjec/internal/database"
	"serwer-zdjec/internal/models"
	"serwer-zdjec/internal/storage"
	"serwer-zdjec/internal/upload"
)

var knownTemplates = map[string]bool{
	"postcard": true,
	"bookmark": true,
	"polaroid": true,
	"greeting": true,
}

type PostcardResponse struct {
	ID           int64     `json:"id" example:"3"`
	ImageURL     string    `json:"imageUrl"`
	TextContent  *string   `json:"textContent,omitempty"`
	TemplateType *string   `json:"templateType,omitempty" example:"postcard"`
	QRURL        *string   `json:"qrUrl,omitempty"`
	Username     *string   `json:"username,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toPostcardResponse(p *models.Postcard) PostcardResponse {
	return PostcardResponse{
		ID:           p.ID,
		ImageURL:     publicURL(p.ImagePath),
		TextContent:  p.TextContent,
		TemplateType: p.TemplateType,
		QRURL:        p.QRURL,
		Username:     p.Username,
		CreatedAt:    p.CreatedAt,
	}
}

// @Summary      Create a postcard
// @Description  Uploads a composed postcard image together with its text and template type.
// @Tags         postcards
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file          formData  file    false  "JPEG file; omit when imageUrl points at an already stored image"
// @Param        imageUrl      formData  string  false  "URL of an already stored image"
// @Param        textContent   formData  string  false  "Postcard text"
// @Param        templateType  formData  string  false  "postcard, bookmark, polaroid or greeting"
// @Param        qrUrl         formData  string  false  "Link encoded in the QR code"
// @Success      201  {object}  PostcardResponse
// @Failure      400  {string}  string "Invalid upload"
// @Failure      413  {string}  string "Quota exceeded"
// @Router       /postcards [post]
func (s *Server) CreatePostcardHandler(w http.ResponseWriter, r *http.Request) {
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

	templateType := formValuePtr(r, "templateType")
	if templateType != nil && !knownTemplates[strings.ToLower(*templateType)] {
		http.Error(w, "Unknown template type", http.StatusBadRequest)
		return
	}

	// Pocztówka powstaje ze świeżego pliku albo z już zapisanego obrazu
	var imagePath, filename string
	var fileSize int64

	file, handler, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			http.Error(w, "Error reading the file", http.StatusInternalServerError)
			return
		}
		result, err := s.coordinator.Upload(r.Context(), user, upload.Request{
			Data:           data,
			ContentType:    handler.Header.Get("Content-Type"),
			Filename:       handler.Filename,
			Category:       storage.CategoryPostcard,
			IdempotencyKey: r.FormValue("idempotencyKey"),
		})
		if err != nil {
			s.writeUploadError(w, user.Username, err)
			return
		}
		imagePath = result.RelativePath
		filename = handler.Filename
		fileSize = result.SizeBytes
	case errors.Is(err, http.ErrMissingFile) && r.FormValue("imageUrl") != "":
		imagePath = storagePath(r.FormValue("imageUrl"))
		size, err := s.blobs.SizeOf(imagePath)
		if err != nil {
			http.Error(w, "Referenced image does not exist", http.StatusBadRequest)
			return
		}
		filename = path.Base(imagePath)
		fileSize = size
	default:
		http.Error(w, "Error retrieving the file", http.StatusBadRequest)
		return
	}

	postcard, err := s.store.CreatePostcard(r.Context(), database.CreatePostcardParams{
		ImagePath:        imagePath,
		TextContent:      formValuePtr(r, "textContent"),
		OriginalFilename: &filename,
		FileSize:         &fileSize,
		TemplateType:     templateType,
		QRURL:            formValuePtr(r, "qrUrl"),
		Username:         &user.Username,
	})
	if err != nil {
		log.Printf("ERROR: Failed to record postcard for user %s: %v", user.Username, err)
		http.Error(w, "Failed to create postcard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toPostcardResponse(postcard))
}

// @Summary      List postcards
// @Tags         postcards
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  PostcardResponse
// @Router       /postcards [get]
func (s *Server) ListPostcardsHandler(w http.ResponseWriter, r *http.Request) {
	postcards, err := s.store.ListPostcards(r.Context())
	if err != nil {
		http.Error(w, "Failed to list postcards", http.StatusInternalServerError)
		return
	}

	resp := make([]PostcardResponse, 0, len(postcards))
	for i := range postcards {
		resp = append(resp, toPostcardResponse(&postcards[i]))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// @Summary      Get a postcard
// @Tags         postcards
// @Produce      json
// @Security     BearerAuth
// @Param        postcardId  path      int  true  "Postcard ID"
// @Success      200  {object}  PostcardResponse
// @Failure      404  {string}  string "Postcard not found"
// @Router       /postcards/{postcardId} [get]
func (s *Server) GetPostcardHandler(w http.ResponseWriter, r *http.Request) {
	postcardID, err := strconv.ParseInt(chi.URLParam(r, "postcardId"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid postcard ID", http.StatusBadRequest)
		return
	}

	postcard, err := s.store.GetPostcard(r.Context(), postcardID)
	if err != nil {
		http.Error(w, "Failed to retrieve postcard", http.StatusInternalServerError)
		return
	}
	if postcard == nil {
		http.Error(w, "Postcard not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toPostcardResponse(postcard))
}

type UpdatePostcardRequest struct {
	TextContent  *string `json:"textContent"`
	TemplateType *string `json:"templateType"`
	QRURL        *string `json:"qrUrl"`
}

// @Summary      Update a postcard
// @Tags         postcards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        postcardId     path      int                    true  "Postcard ID"
// @Param        updateRequest  body      UpdatePostcardRequest  true  "Fields to change"
// @Success      200  {object}  PostcardResponse
// @Failure      404  {string}  string "Postcard not found"
// @Router       /postcards/{postcardId} [patch]
func (s *Server) UpdatePostcardHandler(w http.ResponseWriter, r *http.Request) {
	postcardID, err := strconv.ParseInt(chi.URLParam(r, "postcardId"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid postcard ID", http.StatusBadRequest)
		return
	}

	var req UpdatePostcardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.TemplateType != nil && !knownTemplates[strings.ToLower(*req.TemplateType)] {
		http.Error(w, "Unknown template type", http.StatusBadRequest)
		return
	}

	postcard, err := s.store.UpdatePostcard(r.Context(), postcardID, database.UpdatePostcardParams{
		TextContent:  req.TextContent,
		TemplateType: req.TemplateType,
		QRURL:        req.QRURL,
	})
	if err != nil {
		if errors.Is(err, database.ErrPostcardNotFound) {
			http.Error(w, "Postcard not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to update postcard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toPostcardResponse(postcard))
}

// @Summary      Delete a postcard
// @Tags         postcards
// @Security     BearerAuth
// @Param        postcardId  path  int  true  "Postcard ID"
// @Success      204  {string}  string "Deleted"
// @Failure      404  {string}  string "Postcard not found"
// @Router       /postcards/{postcardId} [delete]
func (s *Server) DeletePostcardHandler(w http.ResponseWriter, r *http.Request) {
	postcardID, err := strconv.ParseInt(chi.URLParam(r, "postcardId"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid postcard ID", http.StatusBadRequest)
		return
	}

	postcard, err := s.store.GetPostcard(r.Context(), postcardID)
	if err != nil {
		http.Error(w, "Failed to retrieve postcard", http.StatusInternalServerError)
		return
	}
	if postcard == nil {
		http.Error(w, "Postcard not found", http.StatusNotFound)
		return
	}

	size, sizeErr := s.blobs.SizeOf(postcard.ImagePath)
	if err := s.blobs.Delete(postcard.ImagePath); err != nil {
		log.Printf("WARN: Failed to delete postcard file %s: %v", postcard.ImagePath, err)
	} else if sizeErr == nil && size > 0 {
		// Miejsce oddajemy kontu, które zapłaciło za plik przy wgraniu,
		// a nie temu, kto kasuje pocztówkę
		if owner := s.postcardOwner(r.Context(), postcard); owner != nil {
			if err := s.ledger.Decrement(r.Context(), owner, size); err != nil {
				log.Printf("RECONCILE: postcard %d file deleted but decrement for user %s failed: %v", postcardID, owner.Username, err)
			}
		} else {
			log.Printf("RECONCILE: postcard %d file deleted but the owning account is unknown, %d bytes stay charged", postcardID, size)
		}
	}

	if err := s.store.DeletePostcard(r.Context(), postcardID); err != nil {
		if errors.Is(err, database.ErrPostcardNotFound) {
			http.Error(w, "Postcard not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to delete postcard", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// postcardOwner odnajduje konto obciążone za plik pocztówki.
func (s *Server) postcardOwner(ctx context.Context, postcard *models.Postcard) *models.User {
	if postcard.Username == nil || *postcard.Username == "" {
		return nil
	}
	owner, err := s.store.GetUserByUsername(ctx, *postcard.Username)
	if err != nil {
		log.Printf("WARN: Failed to look up postcard owner %s: %v", *postcard.Username, err)
		return nil
	}
	return owner
}

type PolishTextRequest struct {
	Text         string `json:"text" example:"greetings from the see side, weather is grate"`
	TemplateType string `json:"templateType" example:"postcard"`
}

type PolishTextResponse struct {
	PolishedText string `json:"polishedText"`
}

// @Summary      Polish postcard text
// @Description  Rewrites the given text for print using the configured AI model. Returns 503 when the feature is not configured.
// @Tags         postcards
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        polishRequest  body      PolishTextRequest  true  "Text and template"
// @Success      200  {object}  PolishTextResponse
// @Failure      400  {string}  string "Text cannot be empty"
// @Failure      503  {string}  string "AI text polishing is not configured"
// @Router       /postcards/polish-text [post]
func (s *Server) PolishTextHandler(w http.ResponseWriter, r *http.Request) {
	var req PolishTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "Text cannot be empty", http.StatusBadRequest)
		return
	}

	polished, err := s.polisher.Polish(r.Context(), req.Text, req.TemplateType)
	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) {
			http.Error(w, "AI text polishing is not configured", http.StatusServiceUnavailable)
			return
		}
		log.Printf("ERROR: Text polishing failed: %v", err)
		http.Error(w, "Failed to polish text", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PolishTextResponse{PolishedText: polished})
}
