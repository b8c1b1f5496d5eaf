package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// Span is one detected text region with its recognition confidence in 0..1.
// The extraction engine joins span text with spaces and ignores confidence.
type Span struct {
	Text       string
	Confidence float32
}

// Result is the outcome of reading one image.
type Result struct {
	Spans      []Span
	Confidence float32 // mean word confidence, 0 when unknown
	Duration   time.Duration
}

// Text concatenates span text with separating spaces to form the raw text
// handed to the extraction engine.
func (r Result) Text() string {
	parts := make([]string, 0, len(r.Spans))
	for _, s := range r.Spans {
		if s.Text != "" {
			parts = append(parts, s.Text)
		}
	}
	return strings.Join(parts, " ")
}

type Config struct {
	Tesseract   string // binary name or absolute path; if empty -> "tesseract"
	Lang        string // default "eng"
	TessdataDir string
	PSM         int // e.g. 6 for a uniform block of text
}

// Reader runs tesseract over image files and returns detected text spans.
type Reader struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewReader(cfg Config, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Lang == "" {
		cfg.Lang = "eng"
	}
	return &Reader{cfg: cfg, runner: execRunner{}, logger: logger}
}

// ReadImage runs tesseract in TSV mode so each recognized word arrives as a
// (text, confidence) detection. If TSV yields nothing it retries in plain
// stdout mode and returns the whole output as a single zero-confidence span.
func (r *Reader) ReadImage(ctx context.Context, path string) (Result, error) {
	start := time.Now()

	args := r.baseArgs(path)
	out, errb, err := r.runner.Run(ctx, r.cfg.Tesseract, append(args, "tsv")...)
	if err != nil {
		return Result{}, fmt.Errorf("tesseract tsv: %w: %s", err, truncate(string(errb), 512))
	}

	spans, mean := parseTSV(string(out))
	if len(spans) == 0 {
		out, errb, err = r.runner.Run(ctx, r.cfg.Tesseract, args...)
		if err != nil {
			return Result{}, fmt.Errorf("tesseract: %w: %s", err, truncate(string(errb), 512))
		}
		if txt := strings.TrimSpace(string(out)); txt != "" {
			spans = []Span{{Text: txt}}
		}
	}

	res := Result{Spans: spans, Confidence: mean, Duration: time.Since(start)}
	r.logger.Debug("ocr.read.done",
		"path", path,
		"spans", len(spans),
		"confidence", mean,
		"elapsed_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}

func (r *Reader) baseArgs(path string) []string {
	args := []string{path, "stdout", "-l", r.cfg.Lang}
	if r.cfg.PSM > 0 {
		args = append(args, "--psm", strconv.Itoa(r.cfg.PSM))
	}
	if r.cfg.TessdataDir != "" {
		args = append(args, "--tessdata-dir", r.cfg.TessdataDir)
	}
	return args
}

// parseTSV extracts (word, conf) rows from tesseract TSV output. The conf
// column is second-to-last, the word text last; header and non-word rows
// (conf == -1) are skipped.
func parseTSV(out string) ([]Span, float32) {
	var spans []Span
	var sum float64
	for i, ln := range strings.Split(out, "\n") {
		if i == 0 || ln == "" {
			continue
		}
		cols := strings.Split(ln, "\t")
		if len(cols) < 12 {
			continue
		}
		confStr := cols[len(cols)-2]
		word := strings.TrimSpace(cols[len(cols)-1])
		if word == "" || confStr == "" || confStr == "-1" {
			continue
		}
		conf, err := strconv.ParseFloat(confStr, 64)
		if err != nil {
			continue
		}
		spans = append(spans, Span{Text: word, Confidence: float32(conf / 100.0)})
		sum += conf / 100.0
	}
	if len(spans) == 0 {
		return nil, 0
	}
	return spans, float32(sum / float64(len(spans)))
}
