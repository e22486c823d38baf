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

	"github.com/danielhkuo/steeped/auth"
	"github.com/danielhkuo/steeped/cliparse"
	"github.com/danielhkuo/steeped/db"
	"github.com/danielhkuo/steeped/middleware"
	"github.com/danielhkuo/steeped/router"
	"github.com/danielhkuo/steeped/shops"
	"github.com/danielhkuo/steeped/votes"
)

func main() {
	// .env is optional; flags and real environment variables win
	_ = godotenv.Load()

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	dbConn, err := sql.Open(cfg.DriverName(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	if cfg.Seed {
		repo := shops.NewRepository(dbConn, votes.NewLedger(dbConn))
		seeded, err := repo.SeedIfEmpty()
		if err != nil {
			slog.Error("seeding failed", "error", err)
			os.Exit(1)
		}
		if seeded {
			slog.Info("Seeded starter tea shops")
		} else {
			slog.Info("Shops already present, skipping seed")
		}
	}

	slog.Info("Admin key ready", "key", auth.GenerateAdminKey(cfg.AdminKeySalt))

	// Create router
	mux := router.NewRouter(dbConn, cfg)

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
	slog.Info("Listening", "port", cfg.Port, "driver", cfg.DriverName())
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
