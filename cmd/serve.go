package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/buihoanganh/webcheck/internal/api"
	"github.com/buihoanganh/webcheck/internal/backend"
	"github.com/buihoanganh/webcheck/internal/orchestrator"
	"github.com/buihoanganh/webcheck/internal/report"
	"github.com/buihoanganh/webcheck/internal/scan"
	"github.com/buihoanganh/webcheck/internal/synth"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run webcheck as a REST API service",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		authToken, _ := cmd.Flags().GetString("auth-token")
		shutdownTimeout, _ := cmd.Flags().GetDuration("shutdown-timeout")
		corsOrigins, _ := cmd.Flags().GetStringSlice("cors-origins")
		rateLimit, _ := cmd.Flags().GetInt("rate-limit")
		rateBurst, _ := cmd.Flags().GetInt("rate-burst")

		// Initialize structured logger
		zl, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer func() {
			if err := zl.Sync(); err != nil {
				fmt.Fprintf(os.Stderr, "failed to sync logger: %v\n", err)
			}
		}()

		client := backend.NewClient(backendURL, scanTimeout, zl)
		orch := orchestrator.New(client, synth.Generator{}, scanTimeout, zl)

		server := api.NewServer(api.Config{
			Scans:       &scanAPIService{orch: orch},
			Reports:     &reportAPIService{client: client, logger: zl},
			Health:      &healthAPIService{client: client},
			AuthToken:   authToken,
			Logger:      zl,
			CORSOrigins: corsOrigins,
			RateLimit:   rateLimit,
			RateBurst:   rateBurst,
		})

		httpServer := &http.Server{
			Addr:    addr,
			Handler: server,
			// Scans can legitimately run for minutes; the write timeout has
			// to outlive the scan window.
			ReadTimeout:  15 * time.Second,
			WriteTimeout: scanTimeout + 30*time.Second,
			IdleTimeout:  120 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			backendLabel := backendURL
			if backendLabel == "" {
				backendLabel = "(not configured, synthetic fallback only)"
			}
			fmt.Printf("%s API server listening on %s (backend: %s)\n", colorInfo("→"), addr, backendLabel)
			fmt.Printf("%s Press Ctrl+C to gracefully shutdown\n", colorInfo("→"))
			serverErrors <- httpServer.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server error: %w", err)
			}
		case sig := <-shutdown:
			fmt.Printf("\n%s Received signal %v, initiating graceful shutdown...\n", colorInfo("→"), sig)

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := httpServer.Shutdown(ctx); err != nil {
				if closeErr := httpServer.Close(); closeErr != nil {
					return fmt.Errorf("failed to gracefully shutdown server: %w (close error: %v)", err, closeErr)
				}
				return fmt.Errorf("failed to gracefully shutdown server: %w", err)
			}

			fmt.Printf("%s Server shutdown complete\n", colorSuccess("✓"))
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Address for the API server")
	serveCmd.Flags().String("auth-token", "", "Optional shared secret for API requests")
	serveCmd.Flags().Duration("shutdown-timeout", 30*time.Second, "Graceful shutdown timeout")
	serveCmd.Flags().StringSlice("cors-origins", []string{}, "Allowed CORS origins (empty = allow all)")
	serveCmd.Flags().Int("rate-limit", 10, "Rate limit per IP (requests/second, 0 = disabled)")
	serveCmd.Flags().Int("rate-burst", 20, "Rate limit burst size")
}

type scanAPIService struct {
	orch *orchestrator.Orchestrator
}

func (s *scanAPIService) Scan(ctx context.Context, domain string, categories []scan.Category) (*scan.Result, error) {
	return s.orch.Run(ctx, domain, categories)
}

type reportAPIService struct {
	client *backend.Client
	logger *zap.Logger
}

// Report proxies PDF rendering to the scanner backend when it is reachable
// and the result actually came from it; everything else renders locally.
// A backend rendering failure is absorbed the same way a scan failure is.
func (s *reportAPIService) Report(ctx context.Context, res *scan.Result, format report.Format) (*report.Document, error) {
	if format == report.FormatPDF && s.client.Configured() && !res.Synthetic {
		if data, err := s.client.Render(ctx, res); err == nil {
			return &report.Document{
				Format:      report.FormatPDF,
				ContentType: "application/pdf",
				Filename:    report.Filename(res.Domain, report.FormatPDF),
				Data:        data,
			}, nil
		} else {
			s.logger.Warn("backend report rendering failed, rendering locally", zap.Error(err))
		}
	}
	return report.Render(res, scan.ComputeMetrics(res), report.Options{Format: format})
}

type healthAPIService struct {
	client *backend.Client
}

func (s *healthAPIService) BackendStatus(ctx context.Context) string {
	if !s.client.Configured() {
		return "unconfigured"
	}
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Health(probeCtx); err != nil {
		return "unreachable"
	}
	return "ok"
}
