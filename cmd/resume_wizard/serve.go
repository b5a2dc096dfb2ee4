package main

import (
	"fmt"
	"log"

	"github.com/jonathan/resume-wizard/internal/export"
	"github.com/jonathan/resume-wizard/internal/generation"
	"github.com/jonathan/resume-wizard/internal/llm"
	"github.com/jonathan/resume-wizard/internal/server"
	"github.com/jonathan/resume-wizard/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var (
	servePort      int
	serveRateLimit int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the generation API server",
	Long: `Start an HTTP server that exposes the summary and bullet point generation endpoints,
plus a read-only view of the saved resume (preview, export, live state events).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	serveCmd.Flags().IntVar(&serveRateLimit, "rate-limit", 0, "Generation requests per client per minute (default 10)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.close()

	cfg := sess.cfg
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("rate-limit") {
		cfg.RateLimitPerMin = serveRateLimit
	}

	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	client, err := llm.NewGeminiClient(cmd.Context(), llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	format, err := export.ParseFormat(cfg.ExportFormat)
	if err != nil {
		return err
	}

	logger := log.Default()
	srv, err := server.New(server.Config{
		Port:         cfg.Port,
		Store:        sess.store,
		Generator:    generation.NewLLMGenerator(client),
		Exporter:     export.NewExporter(export.Options{TemplatePath: cfg.Template, Logger: logger}),
		ExportFormat: format,
		RateLimit:    ratelimit.LoadConfig(cfg.RateLimitPerMin),
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
