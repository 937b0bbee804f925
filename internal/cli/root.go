package cli

import (
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/thallberg/fullstack-quiz-sub000/internal/app"
	"github.com/thallberg/fullstack-quiz-sub000/internal/config"
	"github.com/thallberg/fullstack-quiz-sub000/internal/infra/memory"
	infraredis "github.com/thallberg/fullstack-quiz-sub000/internal/infra/redis"
	"github.com/thallberg/fullstack-quiz-sub000/internal/logger"
)

var configPath string

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:   "quizdata",
		Short: "Offline quiz data simulation backed by a key-value store",
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(NewSeedCmd(&configPath))
	cmd.AddCommand(NewLeaderboardCmd(&configPath))
	return cmd
}

// buildDataSource wires config, logger, store, and the datasource together.
// Without a redis address the store falls back to in-memory, which only
// makes sense for one-shot demos since nothing survives the process.
func buildDataSource(configPath string) (*app.LocalDataSource, *logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return nil, nil, err
	}

	var store app.BlobStore = memory.NewStore()
	if cfg.Redis.Addr != "" {
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store = infraredis.NewStore(client, cfg.Storage.Namespace)
		log.Info("using redis store", "addr", cfg.Redis.Addr)
	} else {
		log.Warn("no redis address configured, data will not persist")
	}

	opts := app.Options{
		SessionTTL:      config.TTLDuration(cfg.Session.TTL, 7*24*time.Hour),
		SessionSecret:   cfg.Session.Secret,
		LeaderboardSize: cfg.Leaderboard.Top,
	}
	return app.NewLocalDataSource(store, log, opts), log, nil
}
