// Package quota tracks each user's accounted storage usage against the
// limits of their tier. ValidateUpload is a pre-flight check, not a
// reservation: the coordinator holds the per-user upload lock from the
// check through Increment so concurrent uploads cannot slip past the limit.
package quota

import (
	"context"
	"fmt"

	"serwer-zdjec/internal/models"
	"serwer-zdjec/internal/tier"
)

// UserStore persists storage usage. AddStorageUsed must be atomic and must
// floor the stored value at zero; it returns the value after the change.
type UserStore interface {
	AddStorageUsed(ctx context.Context, userID int64, delta int64) (int64, error)
}

// PhotoCounter reports how many catalog rows a user currently owns.
type PhotoCounter interface {
	CountUserPhotos(ctx context.Context, userID int64) (int, error)
}

type Reason string

const (
	ReasonFileTooLarge       Reason = "file_too_large"
	ReasonStorageExceeded    Reason = "storage_exceeded"
	ReasonPhotoCountExceeded Reason = "photo_count_exceeded"
)

// QuotaError niesie limit i stan bieżący, żeby handler mógł pokazać
// precyzyjny komunikat bez sięgania do bazy.
type QuotaError struct {
	Reason    Reason
	TierName  string
	Limit     int64 // bytes, or photo count for ReasonPhotoCountExceeded
	Current   int64 // current usage, or current photo count
	Requested int64 // candidate file size in bytes
}

func (e *QuotaError) Error() string {
	limits := tier.LimitsFor(e.TierName)
	switch e.Reason {
	case ReasonFileTooLarge:
		return fmt.Sprintf("File size %s exceeds your %s tier limit of %s per file. Please upgrade your account.",
			tier.FormatBytes(e.Requested), limits.DisplayName, tier.FormatLimit(e.Limit))
	case ReasonStorageExceeded:
		available := e.Limit - e.Current
		if available < 0 {
			available = 0
		}
		return fmt.Sprintf("Insufficient storage. You have %s available out of %s total (%s tier). File requires %s.",
			tier.FormatBytes(available), tier.FormatLimit(e.Limit), limits.DisplayName, tier.FormatBytes(e.Requested))
	case ReasonPhotoCountExceeded:
		return fmt.Sprintf("Photo limit reached. Your %s tier allows %d photos. Please delete some photos or upgrade your account.",
			limits.DisplayName, e.Limit)
	default:
		return "quota exceeded"
	}
}

// Info is the read-only quota snapshot served to the owner.
type Info struct {
	Tier                      string `json:"tier"`
	TierDisplayName           string `json:"tierDisplayName"`
	StorageUsed               int64  `json:"storageUsed"`
	StorageLimit              int64  `json:"storageLimit"`
	StorageUsedFormatted      string `json:"storageUsedFormatted"`
	StorageLimitFormatted     string `json:"storageLimitFormatted"`
	StoragePercentage         int    `json:"storagePercentage"`
	PhotoCount                int    `json:"photoCount"`
	PhotoLimit                int    `json:"photoLimit"`
	SingleFileLimit           int64  `json:"singleFileLimit"`
	SingleFileLimitFormatted  string `json:"singleFileLimitFormatted"`
}

type Ledger struct {
	users  UserStore
	photos PhotoCounter
}

func NewLedger(users UserStore, photos PhotoCounter) *Ledger {
	return &Ledger{users: users, photos: photos}
}

// ValidateUpload checks the three limits in order: single-file size, total
// storage, photo count. The first violated limit wins.
func (l *Ledger) ValidateUpload(ctx context.Context, user *models.User, candidateSize int64) error {
	limits := tier.LimitsFor(user.Tier)

	if candidateSize > limits.SingleFileLimitBytes {
		return &QuotaError{
			Reason:    ReasonFileTooLarge,
			TierName:  user.Tier,
			Limit:     limits.SingleFileLimitBytes,
			Current:   user.StorageUsedBytes,
			Requested: candidateSize,
		}
	}

	if user.StorageUsedBytes+candidateSize > limits.StorageLimitBytes {
		return &QuotaError{
			Reason:    ReasonStorageExceeded,
			TierName:  user.Tier,
			Limit:     limits.StorageLimitBytes,
			Current:   user.StorageUsedBytes,
			Requested: candidateSize,
		}
	}

	count, err := l.photos.CountUserPhotos(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("failed to count photos: %w", err)
	}
	if count >= limits.PhotoCountLimit {
		return &QuotaError{
			Reason:    ReasonPhotoCountExceeded,
			TierName:  user.Tier,
			Limit:     int64(limits.PhotoCountLimit),
			Current:   int64(count),
			Requested: candidateSize,
		}
	}

	return nil
}

// Increment charges the user for a freshly written blob and refreshes the
// in-memory value on the passed user.
func (l *Ledger) Increment(ctx context.Context, user *models.User, bytes int64) error {
	used, err := l.users.AddStorageUsed(ctx, user.ID, bytes)
	if err != nil {
		return fmt.Errorf("failed to increment storage usage: %w", err)
	}
	user.StorageUsedBytes = used
	return nil
}

// Decrement releases bytes after a delete. The store floors at zero, so the
// ledger never goes negative even when the cached size was wrong.
func (l *Ledger) Decrement(ctx context.Context, user *models.User, bytes int64) error {
	used, err := l.users.AddStorageUsed(ctx, user.ID, -bytes)
	if err != nil {
		return fmt.Errorf("failed to decrement storage usage: %w", err)
	}
	user.StorageUsedBytes = used
	return nil
}

func (l *Ledger) QuotaInfo(ctx context.Context, user *models.User) (*Info, error) {
	limits := tier.LimitsFor(user.Tier)
	count, err := l.photos.CountUserPhotos(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count photos: %w", err)
	}

	return &Info{
		Tier:                     tier.Normalize(user.Tier),
		TierDisplayName:          limits.DisplayName,
		StorageUsed:              user.StorageUsedBytes,
		StorageLimit:             limits.StorageLimitBytes,
		StorageUsedFormatted:     tier.FormatBytes(user.StorageUsedBytes),
		StorageLimitFormatted:    tier.FormatLimit(limits.StorageLimitBytes),
		StoragePercentage:        int(user.StorageUsedBytes * 100 / limits.StorageLimitBytes),
		PhotoCount:               count,
		PhotoLimit:               limits.PhotoCountLimit,
		SingleFileLimit:          limits.SingleFileLimitBytes,
		SingleFileLimitFormatted: tier.FormatLimit(limits.SingleFileLimitBytes),
	}, nil
}
