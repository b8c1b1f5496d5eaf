package schema

import "regexp"

// NotAvailable is the sentinel value for any declared field the engine could
// not resolve from the source text.
const NotAvailable = "Not Available"

// Provenance records which extraction strategy produced a result.
type Provenance string

const (
	ProvenanceLLM           Provenance = "llm"
	ProvenanceLocalFallback Provenance = "local-fallback"
)

// Document type names, used as route segments and storage doc_type values.
const (
	DocIdentity = "identity"
	DocBank     = "bank"
)

// Rule is one ordered extraction pattern. When the expression carries a
// capture group the extracted value is the first group, otherwise the whole
// match. All rules are applied case-insensitively.
type Rule struct {
	Expr string
	re   *regexp.Regexp
}

func newRule(expr string) Rule {
	return Rule{Expr: expr, re: regexp.MustCompile(`(?i)` + expr)}
}

// Match runs the rule against flat text and returns the extracted value.
func (r Rule) Match(flat string) (string, bool) {
	m := r.re.FindStringSubmatch(flat)
	if m == nil {
		return "", false
	}
	if len(m) > 1 && m[1] != "" {
		return m[1], true
	}
	return m[0], true
}

// Field declares one extractable field: its canonical name, whether the
// document type is expected to carry it, a format hint handed to the model
// prompt, and the ordered pattern rules for the local extractor. Fields with
// no rules are resolved by line-oriented heuristics instead.
type Field struct {
	Name     string
	Required bool
	Format   string
	Rules    []Rule
}

// Schema is the immutable declaration of one document type. Rule ordering is
// data, not control flow: keyword-anchored patterns sit before bare-format
// patterns so precedence is visible here and testable.
type Schema struct {
	Name        string
	DocLabel    string
	Fields      []Field
	PromptRules []string
}

// FieldNames returns the declared field names in schema order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// HasField reports whether name is declared by this schema.
func (s *Schema) HasField(name string) bool {
	for _, f := range s.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

// EmptyResult returns a result with every declared field set to NotAvailable.
func (s *Schema) EmptyResult() Result {
	out := make(Result, len(s.Fields))
	for _, f := range s.Fields {
		out[f.Name] = NotAvailable
	}
	return out
}

// Result maps every field declared by the active schema to an extracted value
// or NotAvailable. Invariant: keys(Result) == keys(Schema) exactly.
type Result map[string]string

var (
	identity = &Schema{
		Name:     DocIdentity,
		DocLabel: "Indian Aadhaar identity cards",
		Fields: []Field{
			{
				Name:     "name",
				Required: true,
				Format:   "the CARDHOLDER's name (NOT father's/husband's name)",
			},
			{
				Name:     "aadhaar_number",
				Required: true,
				Format:   "12-digit number (format: XXXX XXXX XXXX)",
				Rules: []Rule{
					newRule(`\b\d{4}\s?\d{4}\s?\d{4}\b`),
				},
			},
			{
				Name:     "date_of_birth",
				Required: true,
				Format:   "date in DD/MM/YYYY format",
				Rules: []Rule{
					newRule(`\b\d{2}/\d{2}/\d{4}\b`),
				},
			},
			{
				Name:     "gender",
				Required: true,
				Format:   "Male/Female/Other",
				Rules: []Rule{
					newRule(`\b(MALE|FEMALE|M|F)\b`),
				},
			},
			{
				Name:   "address",
				Format: "full address, only when an address keyword is present",
			},
		},
		PromptRules: []string{
			`For NAME: take the name that appears BEFORE any of these indicators: "S/O", "D/O", "W/O", "Father", "Husband", "Son of", "Daughter of", "Wife of". The cardholder's name precedes them on the card.`,
			`Skip any text that contains government headers like "GOVERNMENT OF INDIA", "AADHAAR", "UNIQUE IDENTIFICATION AUTHORITY".`,
			`Do NOT guess or make up any value. If a field is not clearly available, return "Not Available".`,
			`For ADDRESS: extract it only if the keyword "Address" (or variations like "Addr", "Residence") is present in the text. Otherwise return "Not Available".`,
		},
	}

	bank = &Schema{
		Name:     DocBank,
		DocLabel: "Indian bank documents (passbooks, statements, account opening forms)",
		Fields: []Field{
			{
				Name:     "bank_name",
				Required: true,
				Format:   `name of the bank (e.g. "State Bank of India", "HDFC Bank")`,
			},
			{
				Name:   "branch_name",
				Format: "branch name or location",
			},
			{
				Name:     "ifsc_code",
				Required: true,
				Format:   "11-character IFSC code (format: ABCD0123456)",
				Rules: []Rule{
					newRule(`IFSC[:\s]*([A-Z]{4}0[A-Z0-9]{6})`),
					newRule(`IFS[:\s]*([A-Z]{4}0[A-Z0-9]{6})`),
					newRule(`\b[A-Z]{4}0[A-Z0-9]{6}\b`),
				},
			},
			{
				Name:     "name",
				Required: true,
				Format:   "account holder's name (NOT bank staff names or branch names)",
			},
			{
				Name:   "pan_no",
				Format: "PAN number (format: ABCDE1234F)",
				Rules: []Rule{
					newRule(`PAN[:\s]*([A-Z]{5}\d{4}[A-Z])`),
					newRule(`\b[A-Z]{5}\d{4}[A-Z]\b`),
				},
			},
			{
				Name:   "cif",
				Format: "customer ID / CIF number (8-12 digits)",
				Rules: []Rule{
					newRule(`CIF[:\s]*(\d{8,12})`),
					newRule(`CUSTOMER[:\s]*ID[:\s]*(\d{8,12})`),
					newRule(`\bID[:\s]*(\d{8,12})`),
				},
			},
			{
				Name:   "phone_number",
				Format: "10-digit mobile/phone number",
				Rules: []Rule{
					newRule(`MOBILE[:\s]*([6-9]\d{9})`),
					newRule(`PHONE[:\s]*([6-9]\d{9})`),
					newRule(`MOB[:\s]*([6-9]\d{9})`),
					newRule(`\b[6-9]\d{9}\b`),
				},
			},
			{
				Name:     "account",
				Required: true,
				Format:   "bank account number (usually 9-18 digits)",
				Rules: []Rule{
					newRule(`A/C[:\s]*(\d{9,18})`),
					newRule(`ACCOUNT[:\s]*(\d{9,18})`),
					newRule(`ACC[:\s]*(\d{9,18})`),
					newRule(`\b\d{9,18}\b`),
				},
			},
			{
				Name:   "nominee",
				Format: "nominee name if mentioned",
			},
			{
				Name:   "address",
				Format: "customer's full address",
			},
		},
		PromptRules: []string{
			`Bank name: look for words like "BANK", "BANKING", "FINANCIAL SERVICES".`,
			`Account holder name: look for the customer name, avoid bank employee names.`,
			`IFSC: always 11 characters, starts with 4 letters, 5th character is 0. Prefer a value labelled "IFSC:" over a bare code found elsewhere.`,
			`Account number: usually 9-18 digits.`,
			`PAN: format ABCDE1234F (5 letters, 4 digits, 1 letter).`,
			`Do NOT guess or make up any value. If a field is not found, return "Not Available".`,
			`For ADDRESS: extract it only if an address keyword ("Address", "Addr", "Residence", "Pin") appears in the text. Otherwise return "Not Available".`,
		},
	}
)

// Identity returns the identity-document schema. Schemas are process-wide and
// read-only after initialization.
func Identity() *Schema { return identity }

// Bank returns the bank-document schema.
func Bank() *Schema { return bank }

// ByName resolves a document type name to its schema.
func ByName(name string) (*Schema, bool) {
	switch name {
	case DocIdentity:
		return identity, true
	case DocBank:
		return bank, true
	default:
		return nil, false
	}
}
