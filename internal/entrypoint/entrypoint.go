package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bookend/bookend/internal/config"
	"github.com/bookend/bookend/internal/database"
	"github.com/bookend/bookend/internal/database/books"
	"github.com/bookend/bookend/internal/database/sessions"
	http_controllers "github.com/bookend/bookend/internal/http"
	"github.com/bookend/bookend/internal/metadata"
	"github.com/bookend/bookend/internal/scheduler"
	"github.com/bookend/bookend/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then drains it
// within the configured timeout, calling onShutdown first so background
// workers stop before the listener does.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the application together and serves it.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Bookend v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	bookRepo := books.NewRepository(db.DB)
	sessionRepo := sessions.NewRepository(db.DB)

	var lookupProvider http_controllers.LookupProvider
	var enqueueEnrich func(bookID uint)
	var tasksClient *tasks.Client

	if cfg.Lookup.Enabled {
		client := metadata.NewOpenLibraryClient()
		lookupProvider = client

		if cfg.Tasks.Enabled {
			enricher := metadata.NewEnricher(client, bookRepo)

			tasksClient, err = tasks.NewClient(cfg.Database.Path, tasks.Config{
				Workers:         cfg.Tasks.Workers,
				ReleaseAfter:    cfg.Tasks.ReleaseAfter,
				CleanupInterval: cfg.Tasks.CleanupInterval,
			})
			if err != nil {
				log.Fatalf("Failed to initialize task queue: %v", err)
			}
			tasksClient.Register(tasks.NewEnrichBookQueue(enricher))
			go tasksClient.Start(context.Background())

			enqueueEnrich = func(bookID uint) {
				if _, err := tasksClient.Add(tasks.EnrichBookTask{BookID: bookID}).Save(); err != nil {
					log.Printf("Failed to enqueue enrichment for book %d: %v", bookID, err)
				}
			}
		}
	} else {
		log.Printf("Book lookup disabled; add-book suggestions and enrichment are off")
	}

	auditor := scheduler.NewIntegrityAuditor(bookRepo, sessionRepo, cfg.Integrity.Schedule)
	if cfg.Integrity.Enabled {
		if err := auditor.Start(); err != nil {
			log.Printf("Failed to start integrity audit: %v", err)
		}
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Books:         bookRepo,
		Ledger:        sessionRepo,
		Lookup:        lookupProvider,
		DB:            db,
		Version:       version,
		EnqueueEnrich: enqueueEnrich,
	})

	Serve(router, cfg, func(ctx context.Context) {
		auditor.Stop()
		if tasksClient != nil {
			tasksClient.Stop(ctx)
			if err := tasksClient.Close(); err != nil {
				log.Printf("Failed to close task queue: %v", err)
			}
		}
	})
}
