// @title           Photo Server API
// @version         1.0
// @host            localhost
// @schemes         http https
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"serwer-zdjec/internal/ai"
	"serwer-zdjec/internal/api"
	"serwer-zdjec/internal/config"
	"serwer-zdjec/internal/database"
	"serwer-zdjec/internal/imaging"
	"serwer-zdjec/internal/quota"
	"serwer-zdjec/internal/storage"
	"serwer-zdjec/internal/upload"
	"serwer-zdjec/internal/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "serwer-zdjec/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

// orphanSweepInterval i orphanGracePeriod: miotła chodzi co godzinę i
// nie rusza plików młodszych niż godzina, żeby nie skasować uploadu w toku
const (
	orphanSweepInterval = 1 * time.Hour
	orphanGracePeriod   = 1 * time.Hour
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Nie można wczytać konfiguracji: %v", err)
	}

	if err := database.Migrate(cfg.DB.Source); err != nil {
		log.Fatalf("Nie można wykonać migracji bazy danych: %v", err)
	}
	log.Println("Migracje bazy danych wykonane")

	dbpool, err := pgxpool.New(context.Background(), cfg.DB.Source)
	if err != nil {
		log.Fatalf("Nie można połączyć się z bazą danych: %v", err)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(context.Background()); err != nil {
		log.Fatalf("Nie można pingować bazy danych: %v", err)
	}
	log.Println("Pomyślnie połączono z bazą danych")

	blobs, err := storage.NewBlobStore(cfg.Storage.Path)
	if err != nil {
		log.Fatalf("Nie można zainicjować magazynu plików: %v", err)
	}
	log.Printf("Zdjęcia będą przechowywane w: %s", cfg.Storage.Path)

	wsHub := websocket.NewHub()
	go wsHub.Run()

	store := database.NewStore(dbpool)
	pipeline := imaging.NewPipeline(blobs)
	ledger := quota.NewLedger(store, store)
	coordinator := upload.NewCoordinator(store, ledger, blobs, pipeline, nil, wsHub)

	polisher := ai.NewPolisher(cfg.AI.APIKey, cfg.AI.Model)
	if polisher == nil {
		log.Println("Brak klucza API, ulepszanie tekstu AI wyłączone")
	}

	server := api.NewServer(cfg, store, blobs, pipeline, ledger, coordinator, wsHub, polisher)

	go runOrphanSweep(coordinator)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Idempotency-Key"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(api.MetricsMiddleware)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("https://localhost/swagger/doc.json"),
	))

	r.Get("/ws", server.ServeWsHandler)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Serwer zdjęć działa! Dokumentacja dostępna pod /swagger/index.html"))
	})

	r.Post("/api/v1/auth/register", server.RegisterHandler)
	r.Post("/api/v1/auth/login", server.LoginHandler)
	r.Get("/api/v1/images/*", server.ServeImageHandler)

	r.Get("/health", server.HealthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(server.AuthMiddleware)
		r.Get("/me", server.GetProfileHandler)
		r.Patch("/me", server.UpdateProfileHandler)
		r.Put("/me", server.UpdateProfileHandler)
		r.Post("/me/avatar", server.UploadAvatarHandler)
		r.Get("/me/quota", server.GetQuotaHandler)
		r.Get("/users/{username}", server.GetPublicProfileHandler)
		r.Get("/users/{username}/quota", server.GetUserQuotaHandler)
		r.Post("/images/upload", server.UploadImageHandler)
		r.Get("/photos", server.ListPhotosHandler)
		r.Post("/photos", server.SavePhotoHandler)
		r.Get("/photos/{photoId}", server.GetPhotoHandler)
		r.Patch("/photos/{photoId}", server.UpdatePhotoHandler)
		r.Delete("/photos/{photoId}", server.DeletePhotoHandler)
		r.Get("/albums", server.ListAlbumsHandler)
		r.Post("/albums", server.CreateAlbumHandler)
		r.Get("/albums/{albumId}", server.GetAlbumHandler)
		r.Patch("/albums/{albumId}", server.UpdateAlbumHandler)
		r.Delete("/albums/{albumId}", server.DeleteAlbumHandler)
		r.Get("/postcards", server.ListPostcardsHandler)
		r.Post("/postcards", server.CreatePostcardHandler)
		r.Post("/postcards/polish-text", server.PolishTextHandler)
		r.Post("/polish-text", server.PolishTextHandler)
		r.Get("/postcards/{postcardId}", server.GetPostcardHandler)
		r.Patch("/postcards/{postcardId}", server.UpdatePostcardHandler)
		r.Delete("/postcards/{postcardId}", server.DeletePostcardHandler)
		r.Get("/orders", server.ListOrdersHandler)
		r.Post("/orders", server.CreateOrderHandler)
		r.Get("/orders/{orderId}", server.GetOrderHandler)
		r.Get("/downloads", server.ListDownloadsHandler)
		r.Post("/downloads", server.RecordDownloadHandler)
		r.Get("/events", server.GetEventsHandler)
	})

	log.Println("Uruchamianie serwera na porcie :8080")
	if err := http.ListenAndServe(":8080", r); err != nil {
		log.Fatalf("Nie można uruchomić serwera: %v", err)
	}
}

func runOrphanSweep(coordinator *upload.Coordinator) {
	ticker := time.NewTicker(orphanSweepInterval)
	defer ticker.Stop()
	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		removed, err := coordinator.SweepOrphans(ctx, orphanGracePeriod)
		cancel()
		if err != nil {
			log.Printf("WARN: Przebieg sprzątania osieroconych plików nieudany: %v", err)
			continue
		}
		if removed > 0 {
			log.Printf("Sprzątanie usunęło %d osieroconych plików", removed)
		}
	}
}
