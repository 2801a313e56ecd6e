package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/festiloc/festiloc-server/internal/ai"
	"github.com/festiloc/festiloc-server/internal/cache"
	"github.com/festiloc/festiloc-server/internal/catalog"
	"github.com/festiloc/festiloc-server/internal/chat"
	"github.com/festiloc/festiloc-server/internal/config"
	"github.com/festiloc/festiloc-server/internal/database"
	"github.com/festiloc/festiloc-server/internal/handlers"
	"github.com/festiloc/festiloc-server/internal/models"
	"github.com/festiloc/festiloc-server/internal/seo"
	"github.com/festiloc/festiloc-server/internal/storage"
	ws "github.com/festiloc/festiloc-server/internal/websocket"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (detects Embedded vs External automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in the shutdown handler below

	// 3. Auto-migrate schema
	log.Println("🚀 Synchronizing database schema...")
	err = db.AutoMigrate(
		&models.UserAuth{},

		// Catalog
		&models.Product{},
		&models.Package{},
		&models.PackageItem{},
		&models.PackageOption{},
		&models.OptionChoice{},
		&models.Realization{},

		// SEO workbench
		&models.SavedKeyword{},
		&models.KeywordRanking{},

		// Chatbot
		&models.ChatSession{},
		&models.ChatMessage{},
	)
	if err != nil {
		log.Printf("⚠️ Migration warning: %v\n", err)
	} else {
		log.Println("✅ Schema synchronized successfully")
	}

	// 4. Optional Redis catalog cache
	catalogCache, err := cache.New(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.TTL)
	if err != nil {
		log.Printf("⚠️ Cache: disabled (%v)", err)
		catalogCache = nil
	} else if catalogCache != nil {
		log.Println("✅ Cache: Redis connected")
	}

	// 5. Image storage
	store, err := storage.New(cfg.Storage.Dir, cfg.PublicBaseURL)
	if err != nil {
		log.Fatalf("Failed to init storage: %v", err)
	}

	// 6. Domain services
	catalogSvc := catalog.NewService(db)
	rankStore := seo.NewRankStore(db)

	var checker *seo.RankChecker
	if cfg.Serp.APIKey != "" {
		checker = seo.NewRankChecker(seo.NewSerpClient(cfg.Serp))
		log.Println("✅ SEO: rank checker ready")
	} else {
		log.Println("⚠️ SEO: SERP_API_KEY not set, rank checking disabled")
	}

	var gemini *ai.GeminiClient
	var generator *seo.Generator
	var chatSvc *chat.Service
	if cfg.Gemini.APIKey != "" {
		gemini, err = ai.NewGeminiClient(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Printf("⚠️ AI: failed to init Gemini client: %v", err)
		} else {
			generator = seo.NewGenerator(gemini)
			chatSvc = chat.NewService(db, gemini)
			log.Println("✅ AI: Gemini client ready")
		}
	} else {
		log.Println("⚠️ AI: GEMINI_API_KEY not set, keyword generation and chat disabled")
	}

	// 7. Chat widget hub
	hub := ws.NewHub()
	go hub.Run()

	// 8. HTTP router
	router := handlers.NewRouter(handlers.Deps{
		DB:       db,
		Cfg:      cfg,
		Cache:    catalogCache,
		Catalog:  catalogSvc,
		Checker:  checker,
		Ranks:    rankStore,
		Keywords: generator,
		Chat:     chatSvc,
		Hub:      hub,
		Storage:  store,
	})

	// 9. Background re-check of stale rankings
	workerCtx, stopWorker := context.WithCancel(context.Background())
	if checker != nil && cfg.RankRecheckInterval > 0 {
		go func() {
			ticker := time.NewTicker(cfg.RankRecheckInterval)
			defer ticker.Stop()
			for {
				select {
				case <-workerCtx.Done():
					return
				case <-ticker.C:
					if err := recheckRankings(workerCtx, checker, rankStore); err != nil {
						log.Printf("Rank Worker Error: %v", err)
					}
				}
			}
		}()
		log.Printf("✅ SEO: recheck worker started (every %s)", cfg.RankRecheckInterval)
	}

	// 10. Start server with graceful shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		log.Printf("🚀 Server starting on port %s [%s]\n", cfg.Port, cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	stopWorker()

	if gemini != nil {
		gemini.Close()
	}
	if catalogCache != nil {
		if err := catalogCache.Close(); err != nil {
			log.Printf("Cache close error: %v", err)
		}
	}

	log.Println("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}

// recheckRankings refreshes the oldest stored rankings, sequentially as the
// batch checker does, so the worker never bursts the search API.
func recheckRankings(ctx context.Context, checker *seo.RankChecker, store *seo.RankStore) error {
	stale, err := store.StaleRankings(10)
	if err != nil {
		return err
	}

	for _, ranking := range stale {
		result, err := checker.CheckRank(ctx, ranking.Keyword, ranking.URL)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Printf("⚠️ Recheck failed for %q: %v", ranking.Keyword, err)
			continue
		}
		if _, err := store.SaveResult(result, ""); err != nil {
			log.Printf("⚠️ Recheck save failed for %q: %v", ranking.Keyword, err)
		}
	}
	return nil
}
