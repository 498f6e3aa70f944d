package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/dizaihq/dizai/internal/ai"
	"github.com/dizaihq/dizai/internal/api"
	"github.com/dizaihq/dizai/internal/db"
	"github.com/dizaihq/dizai/internal/middleware"
	"github.com/dizaihq/dizai/internal/services"
	"github.com/dizaihq/dizai/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	addr := utils.SafeEnv("DIZAI_ADDR", ":8080")
	commit := os.Getenv("DIZAI_COMMIT")
	buildTime := os.Getenv("DIZAI_BUILD_TIME")

	store, err := openStore()
	if err != nil {
		log.Fatalf("open store: %v", err)
	}

	mux := http.NewServeMux()
	api.NewRouter(store, completionFromEnv()).Register(mux)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":         true,
			"name":       "DizAí API",
			"commit":     commit,
			"build_time": buildTime,
		})
	})
	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"commit":     commit,
			"build_time": buildTime,
		})
	})

	if staticDir := os.Getenv("DIZAI_STATIC_DIR"); staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}

	handler := middleware.CORS(middleware.SecureHeaders(middleware.NoStore(middleware.WithAuth(mux))))

	log.Printf("DizAí server listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// openStore picks sqlite when DIZAI_SQLITE_PATH is set, the in-memory
// store otherwise.
func openStore() (api.Store, error) {
	path := os.Getenv("DIZAI_SQLITE_PATH")
	if path == "" {
		log.Printf("DIZAI_SQLITE_PATH not set, using in-memory store")
		return api.NewMemoryStore(), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	conn, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(conn.DB, os.Getenv("DIZAI_MIGRATIONS_DIR")); err != nil {
		return nil, err
	}
	return db.NewStore(conn)
}

// completionFromEnv wires the analysis provider when configured; the
// analysis route reports itself unconfigured otherwise.
func completionFromEnv() services.CompletionFunc {
	endpoint := os.Getenv("DIZAI_AI_ENDPOINT")
	if endpoint == "" {
		return nil
	}
	client := ai.NewClient(endpoint,
		os.Getenv("DIZAI_AI_KEY"),
		utils.SafeEnv("DIZAI_AI_MODEL", "gpt-4o-mini"))
	return client.Complete
}
