package server

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yashwanthu-lab/docfields/internal/engine"
	"github.com/yashwanthu-lab/docfields/internal/export"
	"github.com/yashwanthu-lab/docfields/internal/ocr"
	"github.com/yashwanthu-lab/docfields/internal/repository"
	"github.com/yashwanthu-lab/docfields/internal/schema"
)

// Service exposes the extraction engine over a synchronous HTTP surface:
// one extract operation per document schema, plus record listing, deletion,
// export and health.
type Service struct {
	logger         *slog.Logger
	engine         *engine.Orchestrator
	reader         *ocr.Reader // nil disables the upload/OCR path
	repo           repository.RecordRepository
	exporter       *export.Service
	uploadDir      string
	maxUploadBytes int64
	modelEnabled   bool
}

type Options struct {
	Engine         *engine.Orchestrator
	Reader         *ocr.Reader
	Repo           repository.RecordRepository
	Exporter       *export.Service
	UploadDir      string
	MaxUploadBytes int64
	ModelEnabled   bool
}

func New(opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.UploadDir == "" {
		opts.UploadDir = "./uploads"
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 16 * 1024 * 1024
	}
	return &Service{
		logger:         logger,
		engine:         opts.Engine,
		reader:         opts.Reader,
		repo:           opts.Repo,
		exporter:       opts.Exporter,
		uploadDir:      opts.UploadDir,
		maxUploadBytes: opts.MaxUploadBytes,
		modelEnabled:   opts.ModelEnabled,
	}
}

// Routes builds the gin engine with all endpoints registered.
func (s *Service) Routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.POST("/extract/identity", s.handleExtract(schema.Identity()))
	r.POST("/extract/bank", s.handleExtract(schema.Bank()))
	r.GET("/records/:doctype", s.handleListRecords)
	r.GET("/records/:doctype/export", s.handleExport)
	r.DELETE("/records/:doctype/:id", s.handleDeleteRecord)
	r.GET("/health", s.handleHealth)

	return r
}

func (s *Service) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := uuid.New().String()
		c.Set("req_id", rid)
		start := time.Now()
		c.Next()
		s.logger.Info("http.request",
			"req_id", rid,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	}
}
