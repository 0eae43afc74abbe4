package api

import (
	"strings"

	"serwer-zdjec/internal/ai"
	"serwer-zdjec/internal/config"
	"serwer-zdjec/internal/database"
	"serwer-zdjec/internal/imaging"
	"serwer-zdjec/internal/quota"
	"serwer-zdjec/internal/storage"
	"serwer-zdjec/internal/upload"
	"serwer-zdjec/internal/websocket"
)

// publicImagePrefix is what API responses prepend to relative storage
// paths; clients fetch the bytes through the image serving endpoint.
const publicImagePrefix = "/api/v1/images/"

type Server struct {
	config      *config.Config
	store       *database.Store
	blobs       *storage.BlobStore
	pipeline    *imaging.Pipeline
	ledger      *quota.Ledger
	coordinator *upload.Coordinator
	wsHub       *websocket.Hub
	polisher    *ai.Polisher
}

func NewServer(cfg *config.Config, store *database.Store, blobs *storage.BlobStore, pipeline *imaging.Pipeline, ledger *quota.Ledger, coordinator *upload.Coordinator, wsHub *websocket.Hub, polisher *ai.Polisher) *Server {
	return &Server{
		config:      cfg,
		store:       store,
		blobs:       blobs,
		pipeline:    pipeline,
		ledger:      ledger,
		coordinator: coordinator,
		wsHub:       wsHub,
		polisher:    polisher,
	}
}

func publicURL(relPath string) string {
	if relPath == "" {
		return ""
	}
	return publicImagePrefix + relPath
}

func publicURLPtr(relPath *string) *string {
	if relPath == nil || *relPath == "" {
		return relPath
	}
	u := publicImagePrefix + *relPath
	return &u
}

// storagePath strips the public prefix from a client-supplied URL so
// lookups hit the relative path the catalog stores.
func storagePath(url string) string {
	return strings.TrimPrefix(url, publicImagePrefix)
}
