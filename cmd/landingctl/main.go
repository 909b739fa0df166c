package main

import (
	"context"
	"fmt"
	"os"

	"github.com/landingpages/internal/cache"
	"github.com/landingpages/internal/config"
	"github.com/landingpages/internal/db"
	"github.com/landingpages/internal/logger"
	"github.com/landingpages/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	dbPath   string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "landingctl",
	Short: "Operate the landing page engine from the command line",
	Long: `landingctl seeds the catalog, lists every generated landing URL,
previews how a path resolves and manages admin accounts.

It reads the same .env / config.yaml / environment as the server.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "sqlite database path (overrides DATABASE_PATH)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level for command output")

	rootCmd.AddCommand(seedCmd, urlsCmd, matchCmd, createAdminCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// app 持有一次命令执行所需的依赖。
type app struct {
	cfg        config.AppConfig
	log        *zap.Logger
	db         *gorm.DB
	landing    *service.LandingService
	closeStore func() error
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if dbPath != "" {
		cfg.DatabasePath = dbPath
	}

	zlog, err := logger.New(logLevel, "console")
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	if err := db.Init(cfg.DatabasePath); err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store, closeStore := cache.Open(ctx, cfg.Cache(), zlog)
	return &app{
		cfg:        cfg,
		log:        zlog,
		db:         db.DB,
		landing:    service.NewLandingService(db.DB, store, zlog, cfg.RelatedCommunityLimit),
		closeStore: closeStore,
	}, nil
}

func (a *app) Close() {
	_ = a.closeStore()
	_ = a.log.Sync()
}
