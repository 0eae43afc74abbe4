package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// GalleryEvent jest wpisem dziennika aktywności galerii; klienci mogą go
// dociągać kursorem since_id albo dostawać na żywo przez websocket.
type GalleryEvent struct {
	ID        int64           `json:"id"`
	EventType string          `json:"event_type"`
	EventTime time.Time       `json:"event_time"`
	Payload   json.RawMessage `json:"payload"`
}

const (
	EventPhotoUploaded = "photo_uploaded"
	EventPhotoDeleted  = "photo_deleted"
	EventAlbumCreated  = "album_created"
	EventAlbumDeleted  = "album_deleted"
	EventAvatarChanged = "avatar_changed"
)

func (q *Queries) LogEvent(ctx context.Context, userID int64, eventType string, payload interface{}) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	query := `INSERT INTO gallery_events (user_id, event_type, payload) VALUES ($1, $2, $3)`
	if _, err := q.db.Exec(ctx, query, userID, eventType, payloadBytes); err != nil {
		return err
	}
	return nil
}

func (q *Queries) GetEventsSince(ctx context.Context, userID int64, sinceID int64) ([]GalleryEvent, error) {
	query := `
		SELECT id, event_type, event_time, payload
		FROM gallery_events
		WHERE user_id = $1 AND id > $2
		ORDER BY id ASC
		LIMIT 100
	`
	rows, err := q.db.Query(ctx, query, userID, sinceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []GalleryEvent
	for rows.Next() {
		var event GalleryEvent
		if err := rows.Scan(&event.ID, &event.EventType, &event.EventTime, &event.Payload); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
