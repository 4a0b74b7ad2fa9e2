package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/closet-vote/auth"
	"github.com/danielhkuo/closet-vote/catalog"
	"github.com/danielhkuo/closet-vote/cliparse"
	"github.com/danielhkuo/closet-vote/db"
	"github.com/danielhkuo/closet-vote/middleware"
	"github.com/danielhkuo/closet-vote/router"
	"github.com/danielhkuo/closet-vote/voting"
)

func main() {
	// Load .env for local dev; absence is fine
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Build the catalog backend
	backend, err := newBackend(cfg)
	if err != nil {
		slog.Error("catalog backend setup failed", "error", err, "backend", cfg.Backend)
		os.Exit(1)
	}
	slog.Info("Catalog backend ready", "backend", cfg.Backend)

	// The one shared voting state for the whole process
	state := voting.NewState(backend, voting.Options{
		MaxImageWidth:   cfg.MaxImageWidth,
		ResetClosesGate: cfg.ResetClosesGate,
	})

	// The organizer key is derived from the salt; print it once so the
	// organizer can copy it out of the startup log.
	slog.Info("Organizer key", "key", auth.GenerateOrganizerKey(cfg.OrganizerSalt))

	// Create router
	mux := router.NewRouter(state, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// newBackend builds the configured catalog backend, bootstrapping the
// schema for the db variant.
func newBackend(cfg cliparse.Config) (catalog.Backend, error) {
	switch cfg.Backend {
	case cliparse.BackendDir:
		return catalog.NewDir(cfg.ImageDir)

	case cliparse.BackendDB:
		driver := "sqlite"
		if cfg.DatabaseType == "postgres" {
			driver = "postgres"
		}
		dbConn, err := sql.Open(driver, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := dbConn.Ping(); err != nil {
			return nil, err
		}
		if err := db.CreateSchema(dbConn); err != nil {
			return nil, err
		}
		return catalog.NewDB(dbConn), nil

	case cliparse.BackendS3:
		return catalog.NewS3(catalog.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			UseSSL:    cfg.S3UseSSL,
		})

	default:
		return catalog.NewMemory(), nil
	}
}
