package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	openai "github.com/sashabaranov/go-openai"

	"finadvisor/internal/catalog"
	"finadvisor/internal/chat"
	"finadvisor/internal/config"
	"finadvisor/internal/observability"
	"finadvisor/internal/repository"
)

func main() {
	cfg := config.Load()

	store := loadCatalog(cfg)
	if !store.Available() {
		log.Printf("[Advisor] catalog unavailable, lookups will degrade")
	}

	var history *chat.HistoryStore
	if cfg.RedisURL != "" {
		history = &chat.HistoryStore{
			Client: redis.NewClient(&redis.Options{Addr: cfg.RedisURL}),
		}
	}

	llmCfg := openai.DefaultConfig(cfg.LLMAPIKey)
	llmCfg.BaseURL = cfg.LLMBaseURL
	client := openai.NewClientWithConfig(llmCfg)

	mgr := chat.NewManager(history)
	dispatcher := &chat.Dispatcher{
		Catalog: store,
		Client:  client,
		ModelID: cfg.LLMModel,
	}

	observability.Start(cfg.MetricsPort)

	closingDelay := time.Duration(cfg.ClosingDelay) * time.Second
	http.Handle("/chat", chat.Handler(mgr, dispatcher, closingDelay))
	http.Handle("/history", chat.HistoryHandler(mgr))
	http.Handle("/catalog", chat.CatalogHandler(dispatcher))

	http.HandleFunc("/view", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		http.ServeFile(w, r, "./views/index.html")
	})

	log.Printf("[Advisor] listening on :%s (model %s)", cfg.Port, cfg.LLMModel)
	if err := http.ListenAndServe(":"+cfg.Port, nil); err != nil {
		log.Fatalf("[Advisor] server stopped: %v", err)
	}
}

// loadCatalog prefers Postgres when configured and falls back to the CSV.
// A failed load degrades to the unavailable store instead of aborting; the
// chat surface stays up and answers with the unavailable sentinel.
func loadCatalog(cfg *config.Config) *catalog.Store {
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Printf("[Advisor] postgres connect failed: %v", err)
			return catalog.Unavailable()
		}
		repo := &repository.CatalogRepository{DB: pool}
		products, err := repo.LoadAll(context.Background())
		if err != nil {
			log.Printf("[Advisor] catalog load from postgres failed: %v", err)
			return catalog.Unavailable()
		}
		log.Printf("[Advisor] catalog loaded from postgres: %d products", len(products))
		return catalog.New(products)
	}

	store, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		log.Printf("[Advisor] catalog load failed: %v", err)
		return catalog.Unavailable()
	}
	log.Printf("[Advisor] catalog loaded from %s: %d products", cfg.CatalogPath, len(store.Products()))
	return store
}
