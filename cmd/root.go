package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vbitzceo/voidbitzPromptWorkshop/config"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/database"
	"github.com/vbitzceo/voidbitzPromptWorkshop/pkg/logger"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "promptworkshop",
	Short: "Author, organize, exchange and execute prompt templates",
	Long: `Prompt Workshop stores parameterized prompt templates with their
variables, categories and tags, exchanges them as YAML documents and runs
them against a language model with retries and a deterministic fallback.

Configuration comes from .env, an optional config.yaml and environment
variables, in that order of increasing precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfigFile(cfgFile)
		if err != nil {
			return err
		}

		logCfg := cfg.Logger()
		if cmd.Name() != serveCmd.Name() {
			// One-shot commands only log to the console.
			logCfg.Filename = ""
		}
		if err := logger.InitLogger(logCfg); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: $CONFIG_FILE or ./config.yaml)",
	)
}

// Execute runs the command tree. The context is cancelled on shutdown signals.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// openStores connects the database and cache and migrates the schema.
func openStores() error {
	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	if err := database.ConnectRedis(cfg); err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	logger.Log.Info("Stores ready",
		zap.String("db_driver", cfg.DBDriver),
		zap.Bool("cache", database.RedisClient != nil),
	)
	return nil
}
