package engine

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/yashwanthu-lab/docfields/internal/common"
	"github.com/yashwanthu-lab/docfields/internal/llm"
	"github.com/yashwanthu-lab/docfields/internal/rules"
	"github.com/yashwanthu-lab/docfields/internal/schema"
	"github.com/yashwanthu-lab/docfields/internal/textnorm"
)

// Orchestrator runs the two-tier extraction chain: one timeout-guarded model
// attempt, then the rule-based fallback on any model failure, then result
// normalization. It holds no per-request state; concurrent Extract calls need
// no coordination.
type Orchestrator struct {
	logger       *slog.Logger
	model        llm.FieldExtractor // nil when no backend is configured
	local        *rules.Extractor
	modelTimeout time.Duration
}

func New(model llm.FieldExtractor, local *rules.Extractor, modelTimeout time.Duration, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if local == nil {
		local = rules.NewExtractor(logger)
	}
	if modelTimeout <= 0 {
		modelTimeout = 45 * time.Second
	}
	return &Orchestrator{
		logger:       logger,
		model:        model,
		local:        local,
		modelTimeout: modelTimeout,
	}
}

// Extract produces a canonical record for raw text under sc. It fails only
// when normalization leaves no usable text (common.ErrNoExtractableText);
// every failure inside the chain itself is absorbed by the fallback, which
// cannot fail. No retries beyond the single model attempt.
func (o *Orchestrator) Extract(ctx context.Context, sc *schema.Schema, raw string) (schema.Result, schema.Provenance, error) {
	doc := textnorm.Normalize(raw)
	if doc.Empty() {
		return nil, "", common.ErrNoExtractableText
	}

	if o.model != nil {
		mctx, cancel := context.WithTimeout(ctx, o.modelTimeout)
		res, err := o.model.ExtractFields(mctx, llm.ExtractRequest{Schema: sc, RawText: raw})
		cancel()
		if err == nil {
			return finalize(sc, res), schema.ProvenanceLLM, nil
		}
		// ModelUnavailable, MalformedResponse and ContractViolation all land
		// here; timeout and cancellation arrive wrapped as ModelUnavailable.
		o.logger.Warn("engine.extract.fallback",
			"schema", sc.Name,
			"error", err,
		)
	}

	return finalize(sc, o.local.Extract(sc, doc)), schema.ProvenanceLocalFallback, nil
}

// finalize trims every value, coerces empties to NotAvailable, and rebuilds
// the record over the schema's exact field set: missing fields are re-added
// as NotAvailable and undeclared keys dropped. Guards against schema drift.
func finalize(sc *schema.Schema, res schema.Result) schema.Result {
	out := make(schema.Result, len(sc.Fields))
	for _, f := range sc.Fields {
		v := strings.TrimSpace(res[f.Name])
		if v == "" {
			v = schema.NotAvailable
		}
		out[f.Name] = v
	}
	return out
}
