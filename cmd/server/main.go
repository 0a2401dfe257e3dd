/*
main.go - HTTP server entry point

PURPOSE:
  Starts the shift scheduling server: picks a storage backend, builds the
  engine, configures the router, and serves with graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags (and the optional YAML config file)
  2. Open the store (JSON files or SQLite)
  3. Build the engine and HTTP handler
  4. Start the server; shut down gracefully on SIGINT/SIGTERM

COMMAND-LINE FLAGS:
  -port      HTTP server port (default: 8080)
  -store     Storage backend: "json" or "sqlite" (default: json)
  -db        SQLite database path (store=sqlite)
  -shifts    Shifts JSON file path (store=json)
  -settings  Settings JSON file path (store=json)
  -config    Optional YAML config file; set fields override the flags

EXAMPLES:
  # Legacy-compatible JSON files in the working directory
  ./server

  # SQLite backend on another port
  ./server -store=sqlite -db=./data/shifts.db -port=3000

  # Everything from a config file
  ./server -config=server.yaml

SEE ALSO:
  - api/server.go: Router configuration
  - store/jsonfile, store/sqlite: Backends
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/warp/shift-engine/api"
	"github.com/warp/shift-engine/schedule"
	"github.com/warp/shift-engine/store/jsonfile"
	"github.com/warp/shift-engine/store/sqlite"
)

// config mirrors the flags; fields set in the YAML file win over flags.
type config struct {
	Port     int    `yaml:"port"`
	Store    string `yaml:"store"`
	DB       string `yaml:"db"`
	Shifts   string `yaml:"shifts"`
	Settings string `yaml:"settings"`
}

func main() {
	cfg := config{
		Port:     8080,
		Store:    "json",
		DB:       "shifts.db",
		Shifts:   "shifts.json",
		Settings: "settings.json",
	}

	flag.IntVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	flag.StringVar(&cfg.Store, "store", cfg.Store, `storage backend: "json" or "sqlite"`)
	flag.StringVar(&cfg.DB, "db", cfg.DB, "SQLite database path")
	flag.StringVar(&cfg.Shifts, "shifts", cfg.Shifts, "shifts JSON file path")
	flag.StringVar(&cfg.Settings, "settings", cfg.Settings, "settings JSON file path")
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	if *configPath != "" {
		if err := loadConfig(*configPath, &cfg); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	engine := schedule.NewEngine(store)
	router := api.NewRouter(api.NewHandler(engine))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Shift scheduler listening on http://localhost:%d (store: %s)", cfg.Port, cfg.Store)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

func loadConfig(path string, cfg *config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func openStore(cfg config) (schedule.Store, func(), error) {
	switch cfg.Store {
	case "sqlite":
		s, err := sqlite.New(cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	case "json":
		return jsonfile.New(cfg.Shifts, cfg.Settings), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}
