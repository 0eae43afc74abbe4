package upload

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"serwer-zdjec/internal/database"
	"serwer-zdjec/internal/imaging"
	"serwer-zdjec/internal/models"
	"serwer-zdjec/internal/quota"
	"serwer-zdjec/internal/storage"
	"serwer-zdjec/internal/tier"
)

func encodeTestJPEG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 64, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

type fakeCatalog struct {
	mu      sync.Mutex
	nextID  int64
	photos  map[int64]*models.Photo
	albums  map[int64]*models.Album
	events  []string
	counted map[int64]int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		nextID:  1,
		photos:  make(map[int64]*models.Photo),
		albums:  make(map[int64]*models.Album),
		counted: make(map[int64]int),
	}
}

func (f *fakeCatalog) UpsertPhoto(_ context.Context, arg database.UpsertPhotoParams, maxPhotos int) (*models.Photo, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.photos {
		if p.OwnerID == arg.OwnerID && p.ImageURL == arg.ImageURL {
			p.Title = arg.Title
			p.Description = arg.Description
			p.AlbumID = arg.AlbumID
			return p, false, nil
		}
	}
	if f.counted[arg.OwnerID] >= maxPhotos {
		return nil, false, database.ErrPhotoLimitReached
	}
	p := &models.Photo{
		ID:             f.nextID,
		OwnerID:        arg.OwnerID,
		AlbumID:        arg.AlbumID,
		ImageURL:       arg.ImageURL,
		ImageURLThumb:  arg.ImageURLThumb,
		ImageURLMedium: arg.ImageURLMedium,
		Title:          arg.Title,
		CreatedAt:      time.Now(),
	}
	f.nextID++
	f.photos[p.ID] = p
	f.counted[arg.OwnerID]++
	return p, true, nil
}

func (f *fakeCatalog) GetPhotoByID(_ context.Context, id int64) (*models.Photo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.photos[id], nil
}

func (f *fakeCatalog) DeletePhoto(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.photos[id]
	if !ok {
		return database.ErrPhotoNotFound
	}
	delete(f.photos, id)
	f.counted[p.OwnerID]--
	return nil
}

func (f *fakeCatalog) GetAlbumByIDAndOwner(_ context.Context, albumID, ownerID int64) (*models.Album, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a := f.albums[albumID]
	if a == nil || a.OwnerID != ownerID {
		return nil, nil
	}
	return a, nil
}

func (f *fakeCatalog) PhotoExistsByImageURL(_ context.Context, imageURL string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.photos {
		if p.ImageURL == imageURL {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCatalog) LogEvent(_ context.Context, _ int64, eventType string, _ interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, eventType)
	return nil
}

// fakeLedger enforces a plain byte budget and records every commit, so
// tests can assert exactly when the account was charged.
type fakeLedger struct {
	mu         sync.Mutex
	limit      int64
	used       int64
	increments int
	decrements int
	failCommit bool
}

func (f *fakeLedger) ValidateUpload(_ context.Context, user *models.User, candidateSize int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.used+candidateSize > f.limit {
		return &quota.QuotaError{
			Reason:    quota.ReasonStorageExceeded,
			TierName:  user.Tier,
			Limit:     f.limit,
			Current:   f.used,
			Requested: candidateSize,
		}
	}
	return nil
}

func (f *fakeLedger) Increment(_ context.Context, user *models.User, bytes int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCommit {
		return fmt.Errorf("commit rejected")
	}
	f.used += bytes
	f.increments++
	user.StorageUsedBytes = f.used
	return nil
}

func (f *fakeLedger) Decrement(_ context.Context, user *models.User, bytes int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.used -= bytes
	if f.used < 0 {
		f.used = 0
	}
	f.decrements++
	user.StorageUsedBytes = f.used
	return nil
}

func newTestCoordinator(t *testing.T, ledger *fakeLedger) (*Coordinator, *fakeCatalog, *storage.BlobStore) {
	t.Helper()
	blobs, err := storage.NewBlobStore(t.TempDir())
	require.NoError(t, err)
	catalog := newFakeCatalog()
	pipeline := imaging.NewPipeline(blobs)
	coord := NewCoordinator(catalog, ledger, blobs, pipeline, NewTTLCache(30*time.Second), nil)
	return coord, catalog, blobs
}

func testUser() *models.User {
	return &models.User{ID: 7, Username: "ansel", Tier: tier.Free}
}

func TestUploadPhotoHappyPath(t *testing.T) {
	// Arrange
	ledger := &fakeLedger{limit: 50 << 20}
	coord, catalog, blobs := newTestCoordinator(t, ledger)
	data := encodeTestJPEG(t, 1600, 1200)

	// Act
	result, err := coord.Upload(context.Background(), testUser(), Request{
		Data:        data,
		ContentType: "image/jpeg",
		Filename:    "yosemite.jpg",
		Category:    storage.CategoryPhoto,
	})

	// Assert
	require.NoError(t, err)
	require.True(t, result.Created)
	require.NotNil(t, result.Photo)
	require.Equal(t, result.RelativePath, result.Photo.ImageURL)
	require.NotEmpty(t, result.ThumbPath)
	require.NotEmpty(t, result.MediumPath)
	require.Equal(t, int64(len(data)), ledger.used)
	require.Equal(t, 1, ledger.increments)
	require.Contains(t, catalog.events, database.EventPhotoUploaded)

	for _, rel := range []string{result.RelativePath, result.ThumbPath, result.MediumPath} {
		abs, err := blobs.Resolve(rel)
		require.NoError(t, err)
		_, err = os.Stat(abs)
		require.NoError(t, err, "expected %s on disk", rel)
	}
}

func TestUploadRejectsNonJPEGBeforeTouchingDisk(t *testing.T) {
	// Arrange
	ledger := &fakeLedger{limit: 50 << 20}
	coord, _, blobs := newTestCoordinator(t, ledger)

	// Act
	_, err := coord.Upload(context.Background(), testUser(), Request{
		Data:        []byte("<html>not a photo</html>"),
		ContentType: "image/jpeg",
		Filename:    "sneaky.jpg",
		Category:    storage.CategoryPhoto,
	})

	// Assert
	require.ErrorIs(t, err, storage.ErrNotJPEG)
	require.Equal(t, int64(0), ledger.used)
	entries, readErr := os.ReadDir(blobs.Root())
	require.NoError(t, readErr)
	require.Empty(t, entries)
}

func TestUploadRejectedByQuotaLeavesNoBlob(t *testing.T) {
	// Arrange
	data := encodeTestJPEG(t, 800, 600)
	ledger := &fakeLedger{limit: int64(len(data)) - 1}
	coord, _, blobs := newTestCoordinator(t, ledger)

	// Act
	_, err := coord.Upload(context.Background(), testUser(), Request{
		Data:        data,
		ContentType: "image/jpeg",
		Filename:    "big.jpg",
		Category:    storage.CategoryPhoto,
	})

	// Assert
	var qerr *quota.QuotaError
	require.ErrorAs(t, err, &qerr)
	require.Equal(t, quota.ReasonStorageExceeded, qerr.Reason)
	entries, readErr := os.ReadDir(blobs.Root())
	require.NoError(t, readErr)
	require.Empty(t, entries)
}

func TestUploadPhotoLimitCompensatesStoredFiles(t *testing.T) {
	// Arrange
	ledger := &fakeLedger{limit: 50 << 20}
	coord, catalog, blobs := newTestCoordinator(t, ledger)
	user := testUser()
	catalog.counted[user.ID] = tier.LimitsFor(user.Tier).PhotoCountLimit

	// Act
	_, err := coord.Upload(context.Background(), user, Request{
		Data:        encodeTestJPEG(t, 800, 600),
		ContentType: "image/jpeg",
		Filename:    "overflow.jpg",
		Category:    storage.CategoryPhoto,
	})

	// Assert
	var qerr *quota.QuotaError
	require.ErrorAs(t, err, &qerr)
	require.Equal(t, quota.ReasonPhotoCountExceeded, qerr.Reason)
	require.Equal(t, int64(0), ledger.used)

	orphans := 0
	walkErr := filepath.WalkDir(blobs.Root(), func(_ string, d os.DirEntry, err error) error {
		require.NoError(t, err)
		if !d.IsDir() {
			orphans++
		}
		return nil
	})
	require.NoError(t, walkErr)
	require.Zero(t, orphans, "compensation should remove the blob and every rendition")
}

func TestUploadFailedCommitCompensatesStoredFiles(t *testing.T) {
	// Arrange
	ledger := &fakeLedger{limit: 50 << 20, failCommit: true}
	coord, _, blobs := newTestCoordinator(t, ledger)

	// Act
	_, err := coord.Upload(context.Background(), testUser(), Request{
		Data:        encodeTestJPEG(t, 800, 600),
		ContentType: "image/jpeg",
		Filename:    "doomed.jpg",
		Category:    storage.CategoryPhoto,
	})

	// Assert
	require.Error(t, err)
	require.Equal(t, int64(0), ledger.used)
	count := 0
	walkErr := filepath.WalkDir(blobs.Root(), func(_ string, d os.DirEntry, err error) error {
		require.NoError(t, err)
		if !d.IsDir() {
			count++
		}
		return nil
	})
	require.NoError(t, walkErr)
	require.Zero(t, count)
}

func TestUploadUnknownAlbumRejected(t *testing.T) {
	// Arrange
	ledger := &fakeLedger{limit: 50 << 20}
	coord, _, _ := newTestCoordinator(t, ledger)
	albumID := int64(999)

	// Act
	_, err := coord.Upload(context.Background(), testUser(), Request{
		Data:        encodeTestJPEG(t, 800, 600),
		ContentType: "image/jpeg",
		Filename:    "lost.jpg",
		Category:    storage.CategoryPhoto,
		AlbumID:     &albumID,
	})

	// Assert
	require.ErrorIs(t, err, database.ErrAlbumNotFound)
	require.Equal(t, int64(0), ledger.used)
}

func TestUploadIdempotencyKeySuppressesRetry(t *testing.T) {
	// Arrange
	ledger := &fakeLedger{limit: 50 << 20}
	coord, _, _ := newTestCoordinator(t, ledger)
	user := testUser()
	data := encodeTestJPEG(t, 800, 600)
	req := Request{
		Data:           data,
		ContentType:    "image/jpeg",
		Filename:       "once.jpg",
		Category:       storage.CategoryPhoto,
		IdempotencyKey: "client-abc-123",
	}

	// Act
	first, err := coord.Upload(context.Background(), user, req)
	require.NoError(t, err)
	second, err := coord.Upload(context.Background(), user, req)

	// Assert
	require.NoError(t, err)
	require.Equal(t, first.RelativePath, second.RelativePath)
	require.Equal(t, 1, ledger.increments)
	require.Equal(t, int64(len(data)), ledger.used)
}

func TestUploadAvatarSkipsVersionsAndCatalog(t *testing.T) {
	// Arrange
	ledger := &fakeLedger{limit: 50 << 20}
	coord, catalog, _ := newTestCoordinator(t, ledger)
	data := encodeTestJPEG(t, 400, 400)

	// Act
	result, err := coord.Upload(context.Background(), testUser(), Request{
		Data:        data,
		ContentType: "image/jpeg",
		Filename:    "face.jpg",
		Category:    storage.CategoryAvatar,
	})

	// Assert
	require.NoError(t, err)
	require.Nil(t, result.Photo)
	require.Empty(t, result.ThumbPath)
	require.Empty(t, catalog.photos)
	require.Equal(t, int64(len(data)), ledger.used)
}

func TestDeletePhotoReleasesStorage(t *testing.T) {
	// Arrange
	ledger := &fakeLedger{limit: 50 << 20}
	coord, catalog, blobs := newTestCoordinator(t, ledger)
	user := testUser()
	result, err := coord.Upload(context.Background(), user, Request{
		Data:        encodeTestJPEG(t, 1600, 1200),
		ContentType: "image/jpeg",
		Filename:    "gone.jpg",
		Category:    storage.CategoryPhoto,
	})
	require.NoError(t, err)

	// Act
	err = coord.DeletePhoto(context.Background(), user, result.Photo.ID)

	// Assert
	require.NoError(t, err)
	require.Equal(t, int64(0), ledger.used)
	require.Equal(t, 1, ledger.decrements)
	require.Empty(t, catalog.photos)
	require.Contains(t, catalog.events, database.EventPhotoDeleted)
	abs, err := blobs.Resolve(result.RelativePath)
	require.NoError(t, err)
	_, err = os.Stat(abs)
	require.True(t, os.IsNotExist(err))
}

func TestDeletePhotoRejectsOtherOwner(t *testing.T) {
	// Arrange
	ledger := &fakeLedger{limit: 50 << 20}
	coord, _, _ := newTestCoordinator(t, ledger)
	owner := testUser()
	result, err := coord.Upload(context.Background(), owner, Request{
		Data:        encodeTestJPEG(t, 800, 600),
		ContentType: "image/jpeg",
		Filename:    "mine.jpg",
		Category:    storage.CategoryPhoto,
	})
	require.NoError(t, err)
	intruder := &models.User{ID: 99, Username: "mallory", Tier: tier.Free}

	// Act
	err = coord.DeletePhoto(context.Background(), intruder, result.Photo.ID)

	// Assert
	require.ErrorIs(t, err, ErrForbidden)
	require.Equal(t, 0, ledger.decrements)
}

func TestDeletePhotoUnknownID(t *testing.T) {
	ledger := &fakeLedger{limit: 50 << 20}
	coord, _, _ := newTestCoordinator(t, ledger)

	err := coord.DeletePhoto(context.Background(), testUser(), 12345)
	require.ErrorIs(t, err, ErrPhotoNotFound)
}

func TestConcurrentUploadsNeverOvercommit(t *testing.T) {
	// Arrange: budget fits exactly three of the five uploads
	data := encodeTestJPEG(t, 800, 600)
	ledger := &fakeLedger{limit: int64(len(data)) * 3}
	coord, _, _ := newTestCoordinator(t, ledger)
	user := testUser()

	// Act
	const attempts = 5
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = coord.Upload(context.Background(), user, Request{
				Data:        data,
				ContentType: "image/jpeg",
				Filename:    fmt.Sprintf("burst_%d.jpg", i),
				Category:    storage.CategoryPhoto,
			})
		}(i)
	}
	wg.Wait()

	// Assert
	accepted := 0
	for _, err := range errs {
		if err == nil {
			accepted++
		} else {
			var qerr *quota.QuotaError
			require.ErrorAs(t, err, &qerr)
		}
	}
	require.Equal(t, 3, accepted)
	require.LessOrEqual(t, ledger.used, ledger.limit)
}

func TestSweepOrphansRemovesUntrackedBlobs(t *testing.T) {
	// Arrange
	ledger := &fakeLedger{limit: 50 << 20}
	coord, _, blobs := newTestCoordinator(t, ledger)
	user := testUser()

	tracked, err := coord.Upload(context.Background(), user, Request{
		Data:        encodeTestJPEG(t, 800, 600),
		ContentType: "image/jpeg",
		Filename:    "kept.jpg",
		Category:    storage.CategoryPhoto,
	})
	require.NoError(t, err)

	orphanDir := filepath.Join(blobs.Root(), user.Username, string(storage.CategoryPhoto))
	orphanPath := filepath.Join(orphanDir, "deadbeef.jpg")
	require.NoError(t, os.WriteFile(orphanPath, encodeTestJPEG(t, 100, 100), 0o644))
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(orphanPath, old, old))

	// Act
	removed, err := coord.SweepOrphans(context.Background(), time.Hour)

	// Assert
	require.NoError(t, err)
	require.Equal(t, 1, removed)
	_, err = os.Stat(orphanPath)
	require.True(t, os.IsNotExist(err))
	abs, err := blobs.Resolve(tracked.RelativePath)
	require.NoError(t, err)
	_, err = os.Stat(abs)
	require.NoError(t, err, "tracked photo must survive the sweep")
}

func TestSweepOrphansHonoursGracePeriod(t *testing.T) {
	// Arrange: fresh file with no catalog row, still inside the grace window
	ledger := &fakeLedger{limit: 50 << 20}
	coord, _, blobs := newTestCoordinator(t, ledger)

	freshDir := filepath.Join(blobs.Root(), "ansel", string(storage.CategoryPhoto))
	require.NoError(t, os.MkdirAll(freshDir, 0o755))
	freshPath := filepath.Join(freshDir, "inflight.jpg")
	require.NoError(t, os.WriteFile(freshPath, encodeTestJPEG(t, 100, 100), 0o644))

	// Act
	removed, err := coord.SweepOrphans(context.Background(), time.Hour)

	// Assert
	require.NoError(t, err)
	require.Zero(t, removed)
	_, err = os.Stat(freshPath)
	require.NoError(t, err)
}

func TestSweepOrphansRemovesDanglingRenditions(t *testing.T) {
	// Arrange: miniatury bez oryginału, jak po przegranym wyścigu
	// generacji z kompensacją
	ledger := &fakeLedger{limit: 50 << 20}
	coord, _, blobs := newTestCoordinator(t, ledger)

	photoDir := filepath.Join(blobs.Root(), "ansel", string(storage.CategoryPhoto))
	require.NoError(t, os.MkdirAll(photoDir, 0o755))
	old := time.Now().Add(-2 * time.Hour)
	for _, name := range []string{"deadbeef_thumb.jpg", "deadbeef_medium.jpg"} {
		p := filepath.Join(photoDir, name)
		require.NoError(t, os.WriteFile(p, encodeTestJPEG(t, 100, 100), 0o644))
		require.NoError(t, os.Chtimes(p, old, old))
	}

	// Warianty z żyjącym oryginałem mają przetrwać
	user := testUser()
	kept, err := coord.Upload(context.Background(), user, Request{
		Data:        encodeTestJPEG(t, 800, 600),
		ContentType: "image/jpeg",
		Filename:    "kept.jpg",
		Category:    storage.CategoryPhoto,
	})
	require.NoError(t, err)
	for _, rel := range []string{kept.RelativePath, kept.ThumbPath, kept.MediumPath} {
		abs, rerr := blobs.Resolve(rel)
		require.NoError(t, rerr)
		require.NoError(t, os.Chtimes(abs, old, old))
	}

	// Act
	removed, err := coord.SweepOrphans(context.Background(), time.Hour)

	// Assert
	require.NoError(t, err)
	require.Equal(t, 2, removed)
	for _, name := range []string{"deadbeef_thumb.jpg", "deadbeef_medium.jpg"} {
		_, serr := os.Stat(filepath.Join(photoDir, name))
		require.True(t, os.IsNotExist(serr))
	}
	for _, rel := range []string{kept.RelativePath, kept.ThumbPath, kept.MediumPath} {
		abs, rerr := blobs.Resolve(rel)
		require.NoError(t, rerr)
		_, serr := os.Stat(abs)
		require.NoError(t, serr, "rendition with a live original must survive: %s", rel)
	}
}
