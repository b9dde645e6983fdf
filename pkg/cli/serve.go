package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kforge/pkg/cli/config"
	controller "github.com/m-mizutani/kforge/pkg/controller/http"
	"github.com/m-mizutani/kforge/pkg/domain/interfaces"
	"github.com/m-mizutani/kforge/pkg/infra/gemini"
	"github.com/m-mizutani/kforge/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		geminiCfg config.Gemini
	)

	flags := append(serverCfg.Flags(), geminiCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting kforge server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("gemini", geminiCfg),
			)

			// Select the generation mode once, at startup
			var llmClient interfaces.GenAIClient
			if geminiCfg.Configured() {
				llmClient = gemini.New(geminiCfg.Endpoint, geminiCfg.Model, geminiCfg.APIKey, geminiCfg.Timeout)
				logger.Info("Gemini client initialized", slog.String("model", geminiCfg.Model))
			} else {
				logger.Warn("No Gemini API key configured, running in fallback mode without LLM integration")
			}

			convertUC, err := usecase.NewConvert(llmClient)
			if err != nil {
				return goerr.Wrap(err, "failed to create convert use case")
			}

			// Create HTTP server with options
			server, err := controller.NewServer(
				ctx,
				convertUC,
				controller.WithAddr(serverCfg.Addr),
				controller.WithMaxBodySize(serverCfg.MaxBodySize),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
