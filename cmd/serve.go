package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/api"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/completion"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/services"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/suggest"
	"github.com/vbitzceo/voidbitzPromptWorkshop/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server.

Examples:
  promptworkshop serve                 # listen on server_addr from config
  promptworkshop serve --addr :3000    # listen on a custom address`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := openStores(); err != nil {
			return err
		}
		if cfg.SeedOnStart {
			if err := services.Seed(ctx); err != nil {
				return err
			}
		}
		if err := installExecutor(); err != nil {
			return err
		}

		addr := cfg.ServerAddr
		if serveAddr != "" {
			addr = serveAddr
		}
		srv := &http.Server{
			Addr:              addr,
			Handler:           api.NewRouter(cfg),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Log.Info("Server listening", zap.String("addr", addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			logger.Log.Info("Shutdown signal received")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

// installExecutor builds the model client from config and registers the
// executor and suggester the handlers use.
func installExecutor() error {
	completer, err := completion.New(cfg.Completion())
	if err != nil {
		return err
	}

	services.SetExecutor(services.NewPromptExecutor(services.DefaultStore, completer,
		services.WithAttemptTimeout(cfg.ExecutionTimeout),
		services.WithRetryBaseDelay(cfg.RetryBaseDelay),
		services.WithMaxRetries(cfg.MaxRetries),
	))

	s, err := suggest.New(completer, logger.Named("suggest"))
	if err != nil {
		return err
	}
	services.SetSuggester(s)

	logger.Log.Info("Model provider configured", zap.String("provider", cfg.AIProvider))
	return nil
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "address to listen on (overrides server_addr)")

	rootCmd.AddCommand(serveCmd)
}
