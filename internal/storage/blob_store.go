package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Category wyznacza podkatalog, w którym ląduje plik właściciela.
type Category string

const (
	CategoryAvatar   Category = "avatar"
	CategoryPhoto    Category = "photo"
	CategoryPostcard Category = "postcard"
	CategoryOther    Category = "other"
)

// ParseCategory maps a request-supplied type string to a category.
// Unknown values default to photo, same as the upload endpoint always did.
func ParseCategory(s string) Category {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "avatar":
		return CategoryAvatar
	case "postcard":
		return CategoryPostcard
	case "other":
		return CategoryOther
	default:
		return CategoryPhoto
	}
}

var (
	ErrEmptyFile       = errors.New("image file is empty")
	ErrNotJPEG         = errors.New("file content is not a JPEG image")
	ErrTypeMismatch    = errors.New("only JPG/JPEG images are allowed")
	ErrPathOutsideRoot = errors.New("path escapes the storage root")
)

// jpegMagic to znacznik SOI; pierwsze trzy bajty są rozstrzygające,
// content-type i rozszerzenie tylko pomocnicze.
var jpegMagic = []byte{0xFF, 0xD8, 0xFF}

// StoredBlob is what Store reports back: where the file went (relative to
// the root) and exactly how many bytes hit the disk.
type StoredBlob struct {
	RelativePath string
	SizeBytes    int64
}

type BlobStore struct {
	root string
}

func NewBlobStore(root string) (*BlobStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	return &BlobStore{root: abs}, nil
}

func (bs *BlobStore) Root() string {
	return bs.root
}

/// ValidateJPEG runs the fail-fast content checks in order: empty input,
// magic bytes, then the secondary content-type/extension agreement.
// declaredType and filename may be empty; only values that are present
// and disagree fail the call.
func ValidateJPEG(data []byte, declaredType, filename string) error {
	if len(data) == 0 {
		return ErrEmptyFile
	}
	if len(data) < len(jpegMagic) || !bytes.Equal(data[:len(jpegMagic)], jpegMagic) {
		return ErrNotJPEG
	}
	if declaredType != "" {
		mt := strings.ToLower(declaredType)
		if i := strings.Index(mt, ";"); i >= 0 {
			mt = strings.TrimSpace(mt[:i])
		}
		if mt != "image/jpeg" && mt != "image/jpg" {
			return fmt.Errorf("%w (content type %q)", ErrTypeMismatch, declaredType)
		}
	}
	if ext := strings.ToLower(filepath.Ext(filename)); ext != "" {
		if ext != ".jpg" && ext != ".jpeg" {
			return fmt.Errorf("%w (extension %q)", ErrTypeMismatch, ext)
		}
	}
	return nil
}

// Store validates data and writes it under {root}/{owner}/{category}/ with a
// random 128-bit name. The write goes through a temporary file and a rename,
// so readers never see a truncated blob. Quota enforcement is the caller's
// job; the store only guarantees content and placement.
func (bs *BlobStore) Store(data []byte, declaredType, originalFilename, owner string, category Category) (*StoredBlob, error) {
	if err := ValidateJPEG(data, declaredType, originalFilename); err != nil {
		return nil, err
	}

	ext := ".jpg"
	if strings.EqualFold(filepath.Ext(originalFilename), ".jpeg") {
		ext = ".jpeg"
	}
	name := uuid.NewString() + ext
	relPath := filepath.ToSlash(filepath.Join(owner, string(category), name))

	absPath, err := bs.Resolve(relPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob directory: %w", err)
	}

	tmpPath := absPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write blob: %w", err)
	}
	if err := os.Rename(tmpPath, absPath); err != nil {
		os.Remove(tmpPath)
		return nil, fmt.Errorf("failed to finalize blob: %w", err)
	}

	return &StoredBlob{RelativePath: relPath, SizeBytes: int64(len(data))}, nil
}

// Resolve turns a relative path into an absolute one, rejecting anything
// that would land outside the storage root.
func (bs *BlobStore) Resolve(relPath string) (string, error) {
	if relPath == "" || filepath.IsAbs(relPath) {
		return "", ErrPathOutsideRoot
	}
	abs := filepath.Join(bs.root, filepath.FromSlash(relPath))
	rel, err := filepath.Rel(bs.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrPathOutsideRoot
	}
	return abs, nil
}

// SizeOf reports the on-disk size of a stored blob. The ledger uses this at
// delete time instead of any cached size field.
func (bs *BlobStore) SizeOf(relPath string) (int64, error) {
	abs, err := bs.Resolve(relPath)
	if err != nil {
		return 0, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Delete removes a blob. Deleting a path that does not exist is not an error.
func (bs *BlobStore) Delete(relPath string) error {
	abs, err := bs.Resolve(relPath)
	if err != nil {
		return err
	}
	err = os.Remove(abs)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
