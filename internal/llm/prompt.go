package llm

import (
	"strconv"
	"strings"

	"github.com/yashwanthu-lab/docfields/internal/schema"
)

// BuildSystemPrompt composes the system message for one document schema.
func BuildSystemPrompt(sc *schema.Schema) string {
	return "You are an expert at extracting structured data from " + sc.DocLabel +
		". Always return valid JSON only."
}

// BuildUserPrompt renders the schema-specific instruction embedding the raw
// text, the exact field contract, and the disambiguation rules. The rules are
// given to the model verbatim so both extraction strategies agree in
// principle on ambiguous cases; the rule-based extractor remains the safety
// net when the model does not comply.
func BuildUserPrompt(sc *schema.Schema, rawText string) string {
	var b strings.Builder

	b.WriteString("You are an expert at extracting information from ")
	b.WriteString(sc.DocLabel)
	b.WriteString(".\n\nText from document: ")
	b.WriteString(rawText)
	b.WriteString("\n\nExtract the following information and return ONLY valid JSON.\n\nRequired fields:\n")
	for _, f := range sc.Fields {
		b.WriteString("- ")
		b.WriteString(f.Name)
		b.WriteString(": ")
		b.WriteString(f.Format)
		b.WriteString(`. If not present, return "Not Available".`)
		b.WriteString("\n")
	}

	b.WriteString("\nEXTRACTION RULES:\n")
	for i, rule := range sc.PromptRules {
		b.WriteString(strconv.Itoa(i+1) + ". ")
		b.WriteString(rule)
		b.WriteString("\n")
	}

	b.WriteString("\nReturn only valid JSON in this format:\n{\n")
	for i, f := range sc.Fields {
		b.WriteString(`  "` + f.Name + `": "..."`)
		if i < len(sc.Fields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n")

	return b.String()
}
