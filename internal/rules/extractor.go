package rules

import (
	"log/slog"

	"github.com/yashwanthu-lab/docfields/internal/schema"
	"github.com/yashwanthu-lab/docfields/internal/textnorm"
)

// Extractor is the deterministic, dependency-free extraction strategy. It is
// the availability guarantee of the engine: it never fails, performs no I/O,
// and runs in time linear in the text length.
type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Extract resolves every field declared by sc, first by the schema's ordered
// pattern rules over the flat text, then by line-oriented heuristics for
// fields without patterns. Unresolved fields stay at NotAvailable.
func (e *Extractor) Extract(sc *schema.Schema, doc textnorm.Document) schema.Result {
	out := sc.EmptyResult()

	matched := 0
	for _, f := range sc.Fields {
		for _, r := range f.Rules {
			if v, ok := r.Match(doc.Flat); ok {
				out[f.Name] = v
				matched++
				break
			}
		}
	}

	switch sc.Name {
	case schema.DocIdentity:
		setIfUnresolved(out, "name", identityName(doc.Flat))
		setIfUnresolved(out, "address", addressFromLines(doc.Lines))
	case schema.DocBank:
		setIfUnresolved(out, "bank_name", bankNameFromLines(doc.Lines))
		setIfUnresolved(out, "name", holderNameFromLines(doc.Lines))
		setIfUnresolved(out, "branch_name", branchFromLines(doc.Lines))
		setIfUnresolved(out, "nominee", nomineeFromLines(doc.Lines))
		setIfUnresolved(out, "address", addressFromLines(doc.Lines))
	}

	e.logger.Debug("rules.extract.done",
		"schema", sc.Name,
		"pattern_matches", matched,
		"lines", len(doc.Lines),
	)
	return out
}

func setIfUnresolved(out schema.Result, field, value string) {
	if out[field] == schema.NotAvailable && value != "" {
		out[field] = value
	}
}
