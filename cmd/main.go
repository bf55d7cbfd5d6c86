package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"itemd/internal/backends"
	"itemd/internal/config"
	"itemd/internal/item"
	httpserver "itemd/internal/server/http"
	"itemd/pkg/cfg"
	"itemd/pkg/logger"
)

func main() {
	os.Exit(start())
}

// start returns the process exit code so deferred cleanups run before exit.
func start() int {
	_ = godotenv.Load()

	env := cfg.String("APP_ENV", "dev")

	cleanup := logger.Setup(env, logger.Options{Dir: cfg.String("LOG_DIR", "logs")})
	defer cleanup()

	configPath := cfg.String("APP_CONFIG", "config.yaml")

	conf, err := config.Load(configPath)
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return 1
	}
	if pretty, err := conf.Pretty(); err == nil && env == "dev" {
		log.Printf("[itemd] effective config:\n%s", pretty)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, conf); err != nil {
		log.Printf("[itemd] %v", err)
		return 1
	}
	log.Printf("[itemd] stopped")
	return 0
}

// run connects the backends and serves until ctx is done or the server
// fails. Backends are closed before it returns.
func run(ctx context.Context, conf *config.Config) error {
	deps, err := backends.Connect(ctx, conf)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := deps.Close(closeCtx); err != nil {
			log.Printf("[itemd] close backends: %v", err)
		}
	}()

	svc := item.NewService(deps.Store, deps.Cache, item.Options{
		CacheKey: conf.Cache.Key,
		CacheTTL: conf.Cache.TTLDuration(),
	})

	return httpserver.New(conf, svc).Start(ctx)
}
