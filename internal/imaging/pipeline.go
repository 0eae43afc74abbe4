// Package imaging derives thumbnail and preview renditions from stored
// originals. All paths are relative to the blob store root and resolved
// through it, so the traversal guard applies here too.
package imaging

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	img "github.com/disintegration/imaging"

	"serwer-zdjec/internal/storage"
)

const (
	thumbWidth  = 300
	mediumWidth = 1280
	jpegQuality = 85

	avatarSize = 200
)

// Versions zawiera ścieżki względne wygenerowanych wariantów.
type Versions struct {
	ThumbPath  string
	MediumPath string
}

type Pipeline struct {
	store *storage.BlobStore
}

func NewPipeline(store *storage.BlobStore) *Pipeline {
	return &Pipeline{store: store}
}

// VersionPaths returns the thumbnail and medium paths for an original:
// the same directory, with _thumb / _medium inserted before the extension.
func VersionPaths(originalRel string) (thumb, medium string) {
	ext := filepath.Ext(originalRel)
	base := strings.TrimSuffix(originalRel, ext)
	return base + "_thumb" + ext, base + "_medium" + ext
}

// GenerateVersions produces the 300px thumbnail and the 1280px medium
// rendition for a stored original. If either write fails, any partial
// output is removed before the error is returned.
func (p *Pipeline) GenerateVersions(originalRel string) (*Versions, error) {
	absOriginal, err := p.store.Resolve(originalRel)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(absOriginal); err != nil {
		return nil, fmt.Errorf("original image does not exist: %w", err)
	}

	thumbRel, mediumRel := VersionPaths(originalRel)
	absThumb, err := p.store.Resolve(thumbRel)
	if err != nil {
		return nil, err
	}
	absMedium, err := p.store.Resolve(mediumRel)
	if err != nil {
		return nil, err
	}

	src, err := img.Open(absOriginal)
	if err != nil {
		return nil, fmt.Errorf("failed to decode original image: %w", err)
	}

	if err := saveResized(src, absThumb, thumbWidth); err != nil {
		p.cleanupPartial(thumbRel, mediumRel)
		return nil, fmt.Errorf("failed to generate thumbnail: %w", err)
	}
	if err := saveResized(src, absMedium, mediumWidth); err != nil {
		p.cleanupPartial(thumbRel, mediumRel)
		return nil, fmt.Errorf("failed to generate medium preview: %w", err)
	}

	return &Versions{ThumbPath: thumbRel, MediumPath: mediumRel}, nil
}

// DeleteVersions removes the original together with both renditions.
// Any of the three may already be gone.
func (p *Pipeline) DeleteVersions(originalRel string) error {
	thumbRel, mediumRel := VersionPaths(originalRel)
	for _, rel := range []string{originalRel, thumbRel, mediumRel} {
		if err := p.store.Delete(rel); err != nil {
			return fmt.Errorf("failed to delete %s: %w", rel, err)
		}
	}
	return nil
}

// CompressAvatar rewrites a stored avatar as a 200x200 centre-cropped JPEG.
// The original file stays untouched when re-encoding fails.
func (p *Pipeline) CompressAvatar(originalRel string) error {
	abs, err := p.store.Resolve(originalRel)
	if err != nil {
		return err
	}
	src, err := img.Open(abs)
	if err != nil {
		return fmt.Errorf("failed to decode avatar: %w", err)
	}
	cropped := img.Fill(src, avatarSize, avatarSize, img.Center, img.Lanczos)

	// imaging.Save wybiera koder po rozszerzeniu, więc plik tymczasowy
	// musi zachować końcówkę .jpg
	tmp := abs + ".tmp" + filepath.Ext(abs)
	if err := img.Save(cropped, tmp, img.JPEGQuality(jpegQuality)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to encode avatar: %w", err)
	}
	if err := os.Rename(tmp, abs); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace avatar: %w", err)
	}
	return nil
}

func saveResized(src image.Image, absPath string, width int) error {
	resized := img.Resize(src, width, 0, img.Lanczos)
	return img.Save(resized, absPath, img.JPEGQuality(jpegQuality))
}

// cleanupPartial usuwa półprodukty po nieudanej generacji wariantów.
func (p *Pipeline) cleanupPartial(rels ...string) {
	for _, rel := range rels {
		if err := p.store.Delete(rel); err != nil {
			log.Printf("WARN: failed to clean up partial rendition %s: %v", rel, err)
		}
	}
}
