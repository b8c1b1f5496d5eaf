package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yashwanthu-lab/docfields/internal/common"
	"github.com/yashwanthu-lab/docfields/internal/engine"
	"github.com/yashwanthu-lab/docfields/internal/llm"
	"github.com/yashwanthu-lab/docfields/internal/llm/groq"
	"github.com/yashwanthu-lab/docfields/internal/ocr"
	"github.com/yashwanthu-lab/docfields/internal/rules"
	"github.com/yashwanthu-lab/docfields/internal/schema"
)

// One-shot extraction: reads a text file or an image, runs the engine for the
// named document type, and prints the canonical record as JSON.
func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(logger)

	if len(os.Args) < 3 {
		logger.Error("usage: extract <identity|bank> <file.txt|image>")
		os.Exit(2)
	}
	sc, ok := schema.ByName(os.Args[1])
	if !ok {
		logger.Error("unknown document type", "arg", os.Args[1])
		os.Exit(2)
	}
	path := os.Args[2]

	cfg := common.LoadConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var rawText string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		b, err := os.ReadFile(path)
		if err != nil {
			logger.Error("read file", "path", path, "error", err)
			os.Exit(1)
		}
		rawText = string(b)
	default:
		reader := ocr.NewReader(ocr.Config{
			Tesseract:   cfg.OCR.Tesseract,
			Lang:        cfg.OCR.Lang,
			TessdataDir: cfg.OCR.TessdataDir,
			PSM:         cfg.OCR.PSM,
		}, logger)
		res, err := reader.ReadImage(ctx, path)
		if err != nil {
			logger.Error("ocr", "path", path, "error", err)
			os.Exit(1)
		}
		rawText = res.Text()
	}

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
	}

	orch := engine.New(model, rules.NewExtractor(logger), cfg.LLM.Timeout, logger)
	result, prov, err := orch.Extract(ctx, sc, rawText)
	if err != nil {
		logger.Error("extract", "error", err)
		os.Exit(1)
	}

	out := map[string]string{"provenance": string(prov)}
	for k, v := range result {
		out[k] = v
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error("encode output", "error", err)
		os.Exit(1)
	}
}
