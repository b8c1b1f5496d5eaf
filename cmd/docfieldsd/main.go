package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/yashwanthu-lab/docfields/internal/common"
	"github.com/yashwanthu-lab/docfields/internal/engine"
	"github.com/yashwanthu-lab/docfields/internal/export"
	"github.com/yashwanthu-lab/docfields/internal/llm"
	"github.com/yashwanthu-lab/docfields/internal/llm/groq"
	"github.com/yashwanthu-lab/docfields/internal/ocr"
	"github.com/yashwanthu-lab/docfields/internal/repository"
	"github.com/yashwanthu-lab/docfields/internal/rules"
	"github.com/yashwanthu-lab/docfields/internal/server"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer repo.Close()

	var model llm.FieldExtractor
	if cfg.LLM.APIKey != "" {
		model = groq.NewClient(groq.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
			Timeout:     cfg.LLM.Timeout,
		}, logger)
		logger.Info("model backend configured", "model", cfg.LLM.Model)
	} else {
		logger.Warn("GROQ_API_KEY not set; extraction will use the local fallback only")
	}

	orch := engine.New(model, rules.NewExtractor(logger), cfg.LLM.Timeout, logger)
	reader := ocr.NewReader(ocr.Config{
		Tesseract:   cfg.OCR.Tesseract,
		Lang:        cfg.OCR.Lang,
		TessdataDir: cfg.OCR.TessdataDir,
		PSM:         cfg.OCR.PSM,
	}, logger)

	svc := server.New(server.Options{
		Engine:         orch,
		Reader:         reader,
		Repo:           repo,
		Exporter:       export.NewService(repo, logger),
		UploadDir:      cfg.Server.UploadDir,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
		ModelEnabled:   model != nil,
	}, logger)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: svc.Routes(),
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("stopped")
}
