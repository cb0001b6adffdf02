package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"secretsanta/internal/adapters/web"
	"secretsanta/internal/application"
	"secretsanta/internal/config"
	"secretsanta/internal/infrastructure/database"
	"secretsanta/internal/infrastructure/i18n"
	"secretsanta/internal/infrastructure/logging"
	"secretsanta/internal/infrastructure/storage"
	"secretsanta/internal/ports/output"
	"secretsanta/pkg/tz"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Configuration invalide: %v", err)
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatalf("❌ Configuration des logs invalide: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	primary, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Erreur lors de l'initialisation du stockage: %v", err)
	}
	defer closeStore()
	store := storage.NewResilientStore(primary)

	clock := output.SystemClock{}
	eventUC := application.NewEventService(store, clock)
	drawUC := application.NewDrawService(store, clock, nil)
	viewUC := application.NewViewService(drawUC, clock, store)

	handler := web.NewHandler(eventUC, drawUC, viewUC, i18n.NewTranslator(cfg.Locale), tz.Load(cfg.Timezone), cfg.TickInterval)
	router := web.NewRouter(handler)
	if cfg.GinMode == gin.DebugMode {
		pprof.Register(router)
		log.Info("pprof disponible sur /debug/pprof")
	}

	if err := web.NewServer(cfg.Addr, router).Run(ctx); err != nil {
		log.Errorf("❌ %v", err)
		os.Exit(1)
	}
}

// openStore picks the backend holding the event record.
func openStore(ctx context.Context, cfg *config.Config) (output.EventStore, func(), error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		store, closePool, err := database.Open(ctx, cfg.DatabaseURL, cfg.RecordSlot)
		if err != nil {
			return nil, nil, err
		}
		return store, closePool, nil
	case config.StorageMemory:
		log.Warn("⚠️ Stockage en mémoire: l'événement sera perdu à l'arrêt")
		return storage.NewMemoryStore(), func() {}, nil
	default:
		log.WithField("file", cfg.DataFile).Info("✅ Stockage fichier")
		return storage.NewFileStore(cfg.DataFile), func() {}, nil
	}
}
