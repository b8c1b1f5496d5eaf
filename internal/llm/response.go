package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yashwanthu-lab/docfields/internal/common"
	"github.com/yashwanthu-lab/docfields/internal/schema"
)

// StripCodeFences removes enclosing markdown code-fence markers that models
// sometimes wrap around their JSON output.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "```json"); i >= 0 {
		s = s[i+len("```json"):]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
		return strings.TrimSpace(s)
	}
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
		return strings.TrimSpace(s)
	}
	return s
}

// DecodeFields parses a model completion into a schema-complete Result.
// A parse failure is ErrMalformedResponse; a parsed object whose key set does
// not equal the schema's field set is ErrContractViolation. No partial repair
// is attempted in either case; the caller falls back.
func DecodeFields(sc *schema.Schema, content []byte) (schema.Result, error) {
	var m map[string]any
	if err := json.Unmarshal(content, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedResponse, err)
	}

	if err := validateAgainstSchema(BuildFieldJSONSchema(sc), content); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrContractViolation, err)
	}

	out := make(schema.Result, len(sc.Fields))
	for _, f := range sc.Fields {
		v, _ := m[f.Name].(string)
		out[f.Name] = v
	}
	return out, nil
}
