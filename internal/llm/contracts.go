package llm

import (
	"context"

	"github.com/yashwanthu-lab/docfields/internal/schema"
)

// ExtractRequest carries one document's raw text plus the field contract the
// model must honor.
type ExtractRequest struct {
	Schema  *schema.Schema
	RawText string
}

// FieldExtractor is the model-guided strategy the orchestrator depends on.
// Failures are reported through the common error taxonomy
// (ErrModelUnavailable, ErrMalformedResponse, ErrContractViolation); the
// orchestrator treats all three identically and falls back.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, req ExtractRequest) (schema.Result, error)
}
