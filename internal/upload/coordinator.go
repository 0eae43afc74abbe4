// Package upload orchestrates the end-to-end media ingestion sequence:
// validate content, check quota, persist the blob, derive renditions,
// record catalog metadata, commit the quota increment. Every completed
// step registers a compensation; on failure the compensations run in
// reverse order, so a failed upload never leaves a blob counted against
// nothing or a catalog row pointing at a missing file.
package upload

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"serwer-zdjec/internal/database"
	"serwer-zdjec/internal/imaging"
	"serwer-zdjec/internal/models"
	"serwer-zdjec/internal/quota"
	"serwer-zdjec/internal/storage"
	"serwer-zdjec/internal/tier"
)

var (
	ErrPhotoNotFound = errors.New("photo not found")
	ErrForbidden     = errors.New("you can only manage your own photos")
)

// deriveTimeout bounds the re-encoding step so a hung filesystem cannot
// stall the request pool. compensateTimeout budgets the rollback chain,
// which runs on a fresh context so a disconnected client cannot orphan
// blobs.
const (
	deriveTimeout     = 20 * time.Second
	compensateTimeout = 10 * time.Second
)

var uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "media_uploads_total",
	Help: "Upload attempts by outcome.",
}, []string{"outcome"})

// Catalog is the slice of the database store the coordinator needs.
type Catalog interface {
	UpsertPhoto(ctx context.Context, arg database.UpsertPhotoParams, maxPhotos int) (*models.Photo, bool, error)
	GetPhotoByID(ctx context.Context, id int64) (*models.Photo, error)
	DeletePhoto(ctx context.Context, id int64) error
	GetAlbumByIDAndOwner(ctx context.Context, albumID, ownerID int64) (*models.Album, error)
	PhotoExistsByImageURL(ctx context.Context, imageURL string) (bool, error)
	LogEvent(ctx context.Context, userID int64, eventType string, payload interface{}) error
}

type Ledger interface {
	ValidateUpload(ctx context.Context, user *models.User, candidateSize int64) error
	Increment(ctx context.Context, user *models.User, bytes int64) error
	Decrement(ctx context.Context, user *models.User, bytes int64) error
}

type Blobs interface {
	Store(data []byte, declaredType, originalFilename, owner string, category storage.Category) (*storage.StoredBlob, error)
	Delete(relPath string) error
	SizeOf(relPath string) (int64, error)
	Root() string
}

type Pipeline interface {
	GenerateVersions(originalRel string) (*imaging.Versions, error)
	DeleteVersions(originalRel string) error
}

// Notifier pushes gallery events to the owner's connected clients.
type Notifier interface {
	PublishEvent(userID int64, eventData []byte)
}

type Metadata struct {
	Title       *string
	Description *string
	Location    *string
	Camera      *string
	Lens        *string
	Settings    *string
	TakenAt     *time.Time
}

type Request struct {
	Data           []byte
	ContentType    string
	Filename       string
	Category       storage.Category
	AlbumID        *int64
	IdempotencyKey string
	Metadata       Metadata
}

// Result is the finalized outcome of an ingestion.
type Result struct {
	Photo        *models.Photo
	RelativePath string
	ThumbPath    string
	MediumPath   string
	SizeBytes    int64
	Created      bool
}

type Coordinator struct {
	catalog  Catalog
	ledger   Ledger
	blobs    Blobs
	pipeline Pipeline
	cache    ResponseCache
	notifier Notifier
	locks    *userLocks
}

func NewCoordinator(catalog Catalog, ledger Ledger, blobs Blobs, pipeline Pipeline, cache ResponseCache, notifier Notifier) *Coordinator {
	if cache == nil {
		cache = NewTTLCache(30 * time.Second)
	}
	return &Coordinator{
		catalog:  catalog,
		ledger:   ledger,
		blobs:    blobs,
		pipeline: pipeline,
		cache:    cache,
		notifier: notifier,
		locks:    newUserLocks(),
	}
}

// Upload drives the full sequence for a binary upload. user is mutated:
// its StorageUsedBytes reflects the committed ledger value on success.
func (c *Coordinator) Upload(ctx context.Context, user *models.User, req Request) (*Result, error) {
	// Krok 0: tłumienie dosłownych retransmisji
	fingerprint := ""
	if req.IdempotencyKey != "" {
		fingerprint = fmt.Sprintf("%s:%s:%d:%s", user.Username, req.IdempotencyKey, len(req.Data), req.Filename)
		if cached, ok := c.cache.Get(fingerprint); ok {
			log.Printf("Duplicate upload suppressed for user %s (key %s)", user.Username, req.IdempotencyKey)
			return cached, nil
		}
	}

	// Krok 1: walidacja treści, zanim cokolwiek dotknie dysku
	if err := storage.ValidateJPEG(req.Data, req.ContentType, req.Filename); err != nil {
		uploadsTotal.WithLabelValues("rejected_validation").Inc()
		return nil, err
	}

	// Kroki 2-6 pod blokadą użytkownika: pre-check kwoty i jej zatwierdzenie
	// muszą być wyłączne względem równoległych uploadów tego samego konta
	unlock := c.locks.lock(user.ID)
	defer unlock()

	if err := c.ledger.ValidateUpload(ctx, user, int64(len(req.Data))); err != nil {
		uploadsTotal.WithLabelValues("rejected_quota").Inc()
		return nil, err
	}

	var compensations []func() error

	blob, err := c.blobs.Store(req.Data, req.ContentType, req.Filename, user.Username, req.Category)
	if err != nil {
		uploadsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("failed to store file: %w", err)
	}
	compensations = append(compensations, func() error {
		return c.blobs.Delete(blob.RelativePath)
	})

	result := &Result{
		RelativePath: blob.RelativePath,
		SizeBytes:    blob.SizeBytes,
		Created:      true,
	}

	if req.Category == storage.CategoryPhoto {
		versions, err := c.deriveVersions(ctx, blob.RelativePath)
		if err != nil {
			c.compensate(compensations, err)
			uploadsTotal.WithLabelValues("failed").Inc()
			return nil, fmt.Errorf("failed to generate image versions: %w", err)
		}
		result.ThumbPath = versions.ThumbPath
		result.MediumPath = versions.MediumPath
		compensations = append(compensations, func() error {
			if err := c.blobs.Delete(versions.ThumbPath); err != nil {
				return err
			}
			return c.blobs.Delete(versions.MediumPath)
		})

		if req.AlbumID != nil {
			album, err := c.catalog.GetAlbumByIDAndOwner(ctx, *req.AlbumID, user.ID)
			if err != nil {
				c.compensate(compensations, err)
				uploadsTotal.WithLabelValues("failed").Inc()
				return nil, fmt.Errorf("failed to look up album: %w", err)
			}
			if album == nil {
				c.compensate(compensations, database.ErrAlbumNotFound)
				uploadsTotal.WithLabelValues("rejected_validation").Inc()
				return nil, database.ErrAlbumNotFound
			}
		}

		limits := tier.LimitsFor(user.Tier)
		photo, created, err := c.catalog.UpsertPhoto(ctx, database.UpsertPhotoParams{
			OwnerID:        user.ID,
			AlbumID:        req.AlbumID,
			ImageURL:       blob.RelativePath,
			ImageURLThumb:  &versions.ThumbPath,
			ImageURLMedium: &versions.MediumPath,
			Title:          req.Metadata.Title,
			Description:    req.Metadata.Description,
			Location:       req.Metadata.Location,
			Camera:         req.Metadata.Camera,
			Lens:           req.Metadata.Lens,
			Settings:       req.Metadata.Settings,
			TakenAt:        req.Metadata.TakenAt,
		}, limits.PhotoCountLimit)
		if err != nil {
			c.compensate(compensations, err)
			if errors.Is(err, database.ErrPhotoLimitReached) {
				uploadsTotal.WithLabelValues("rejected_quota").Inc()
				return nil, &quota.QuotaError{
					Reason:   quota.ReasonPhotoCountExceeded,
					TierName: user.Tier,
					Limit:    int64(limits.PhotoCountLimit),
					Current:  int64(limits.PhotoCountLimit),
				}
			}
			uploadsTotal.WithLabelValues("failed").Inc()
			return nil, fmt.Errorf("failed to record photo metadata: %w", err)
		}
		result.Photo = photo
		result.Created = created
	}

	// Krok 6: obciążenie konta dopiero za faktycznie nowy zapis
	if result.Created {
		if err := c.ledger.Increment(ctx, user, blob.SizeBytes); err != nil {
			c.compensate(compensations, err)
			uploadsTotal.WithLabelValues("failed").Inc()
			return nil, fmt.Errorf("failed to commit storage usage: %w", err)
		}
	}

	if fingerprint != "" {
		c.cache.Put(fingerprint, result)
	}

	uploadsTotal.WithLabelValues("accepted").Inc()

	if result.Photo != nil {
		c.publishEvent(user, database.EventPhotoUploaded, map[string]interface{}{
			"photo_id":   result.Photo.ID,
			"image_url":  result.Photo.ImageURL,
			"file_size":  result.SizeBytes,
			"album_id":   result.Photo.AlbumID,
			"used_bytes": user.StorageUsedBytes,
		})
	}

	return result, nil
}

// UpsertMetadata is the JSON path: create or replace a photo record by
// image URL. The blob is already stored and accounted, so the ledger is
// not touched; the photo-count cap applies only to a brand-new row.
func (c *Coordinator) UpsertMetadata(ctx context.Context, user *models.User, arg database.UpsertPhotoParams) (*models.Photo, bool, error) {
	unlock := c.locks.lock(user.ID)
	defer unlock()

	if arg.AlbumID != nil {
		album, err := c.catalog.GetAlbumByIDAndOwner(ctx, *arg.AlbumID, user.ID)
		if err != nil {
			return nil, false, fmt.Errorf("failed to look up album: %w", err)
		}
		if album == nil {
			return nil, false, database.ErrAlbumNotFound
		}
	}

	limits := tier.LimitsFor(user.Tier)
	photo, created, err := c.catalog.UpsertPhoto(ctx, arg, limits.PhotoCountLimit)
	if err != nil {
		if errors.Is(err, database.ErrPhotoLimitReached) {
			return nil, false, &quota.QuotaError{
				Reason:   quota.ReasonPhotoCountExceeded,
				TierName: user.Tier,
				Limit:    int64(limits.PhotoCountLimit),
				Current:  int64(limits.PhotoCountLimit),
			}
		}
		return nil, false, err
	}
	return photo, created, nil
}

// DeletePhoto removes the files first, then the catalog row, then releases
// the ledger charge. The freed size is measured from disk, not from any
// cached field, so the ledger tracks reality.
func (c *Coordinator) DeletePhoto(ctx context.Context, user *models.User, photoID int64) error {
	unlock := c.locks.lock(user.ID)
	defer unlock()

	photo, err := c.catalog.GetPhotoByID(ctx, photoID)
	if err != nil {
		return fmt.Errorf("failed to load photo: %w", err)
	}
	if photo == nil {
		return ErrPhotoNotFound
	}
	if photo.OwnerID != user.ID {
		// Cudzego zdjęcia nie zdradzamy nawet istnieniem
		return ErrForbidden
	}

	size, err := c.blobs.SizeOf(photo.ImageURL)
	if err != nil {
		if !os.IsNotExist(err) && !errors.Is(err, storage.ErrPathOutsideRoot) {
			return fmt.Errorf("failed to measure blob size: %w", err)
		}
		size = 0
	}

	if err := c.pipeline.DeleteVersions(photo.ImageURL); err != nil {
		return fmt.Errorf("failed to delete photo files: %w", err)
	}

	if err := c.catalog.DeletePhoto(ctx, photoID); err != nil {
		if errors.Is(err, database.ErrPhotoNotFound) {
			return ErrPhotoNotFound
		}
		// Pliki już zniknęły, wiersz został: do ręcznego sprzątnięcia
		log.Printf("RECONCILE: photo %d files deleted but row removal failed: %v", photoID, err)
		return fmt.Errorf("failed to delete photo record: %w", err)
	}

	if size > 0 {
		if err := c.ledger.Decrement(ctx, user, size); err != nil {
			log.Printf("RECONCILE: photo %d deleted but storage decrement of %d bytes failed: %v", photoID, size, err)
			return fmt.Errorf("failed to release storage usage: %w", err)
		}
	}

	c.publishEvent(user, database.EventPhotoDeleted, map[string]interface{}{
		"photo_id":    photoID,
		"freed_bytes": size,
		"used_bytes":  user.StorageUsedBytes,
	})

	return nil
}

// deriveVersions runs the re-encode with a hard deadline. On timeout the
// generation keeps running in the background; the compensation chain and
// the orphan sweep clean up whatever it leaves behind.
func (c *Coordinator) deriveVersions(ctx context.Context, originalRel string) (*imaging.Versions, error) {
	type outcome struct {
		versions *imaging.Versions
		err      error
	}
	done := make(chan outcome, 1)
	go func() {
		v, err := c.pipeline.GenerateVersions(originalRel)
		done <- outcome{versions: v, err: err}
	}()

	select {
	case out := <-done:
		return out.versions, out.err
	case <-time.After(deriveTimeout):
		return nil, fmt.Errorf("image version generation timed out after %s", deriveTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// compensate runs the registered undo actions in reverse order on a fresh
// context. A failing compensation is a reconciliation anomaly: it is
// logged, never swallowed silently, and never masks the original error.
func (c *Coordinator) compensate(compensations []func() error, cause error) {
	deadline := time.Now().Add(compensateTimeout)
	for i := len(compensations) - 1; i >= 0; i-- {
		if time.Now().After(deadline) {
			log.Printf("RECONCILE: compensation budget exceeded, %d step(s) skipped (cause: %v)", i+1, cause)
			return
		}
		if err := compensations[i](); err != nil {
			log.Printf("RECONCILE: compensation step failed after %v: %v", cause, err)
		}
	}
}

func (c *Coordinator) publishEvent(user *models.User, eventType string, payload map[string]interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.catalog.LogEvent(ctx, user.ID, eventType, payload); err != nil {
		log.Printf("WARN: failed to journal %s event for user %d: %v", eventType, user.ID, err)
	}
	if c.notifier != nil {
		data, err := eventJSON(eventType, payload)
		if err != nil {
			log.Printf("WARN: failed to encode %s event: %v", eventType, err)
			return
		}
		c.notifier.PublishEvent(user.ID, data)
	}
}

// SweepOrphans walks the photo category of every owner and removes blobs
// older than gracePeriod that have no catalog row. It is the safety net
// for compensations that themselves failed.
func (c *Coordinator) SweepOrphans(ctx context.Context, gracePeriod time.Duration) (int, error) {
	root := c.blobs.Root()
	cutoff := time.Now().Add(-gracePeriod)
	removed := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		// Interesuje nas tylko kategoria photo
		if !inPhotoCategory(rel) {
			return nil
		}

		info, err := d.Info()
		if err != nil || info.ModTime().After(cutoff) {
			return nil
		}

		if original, ok := renditionOriginal(rel); ok {
			// Wariant bez oryginału zostaje po przegranym wyścigu
			// generacji z kompensacją
			if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(original))); err == nil {
				return nil
			}
			if err := c.blobs.Delete(rel); err != nil {
				log.Printf("WARN: orphan sweep failed to delete dangling rendition %s: %v", rel, err)
				return nil
			}
			removed++
			log.Printf("Orphan sweep removed dangling rendition %s", rel)
			return nil
		}

		exists, err := c.catalog.PhotoExistsByImageURL(ctx, rel)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		if err := c.pipeline.DeleteVersions(rel); err != nil {
			log.Printf("WARN: orphan sweep failed to delete %s: %v", rel, err)
			return nil
		}
		removed++
		log.Printf("Orphan sweep removed %s and its renditions", rel)
		return nil
	})
	if err != nil {
		return removed, err
	}
	return removed, nil
}

func eventJSON(eventType string, payload map[string]interface{}) ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"type":      eventType,
		"payload":   payload,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func inPhotoCategory(rel string) bool {
	dir := filepath.ToSlash(filepath.Dir(rel))
	return filepath.Base(dir) == string(storage.CategoryPhoto)
}

// renditionOriginal maps a _thumb/_medium path back to its original.
// The second result is false for originals.
func renditionOriginal(rel string) (string, bool) {
	ext := filepath.Ext(rel)
	name := rel[:len(rel)-len(ext)]
	if len(name) > 6 && name[len(name)-6:] == "_thumb" {
		return name[:len(name)-6] + ext, true
	}
	if len(name) > 7 && name[len(name)-7:] == "_medium" {
		return name[:len(name)-7] + ext, true
	}
	return "", false
}
