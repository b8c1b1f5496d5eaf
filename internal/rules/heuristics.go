package rules

import (
	"regexp"
	"strings"
	"unicode"
)

// Keyword sets driving the line-oriented heuristics. Matching is uppercase
// substring containment, same as the source documents print them.
var (
	headerTokens = map[string]struct{}{
		"GOVERNMENT": {}, "AADHAAR": {}, "UNIQUE": {}, "IDENTIFICATION": {},
		"AUTHORITY": {}, "INDIA": {}, "OF": {},
	}
	relationTokens = map[string]struct{}{
		"S/O": {}, "D/O": {}, "W/O": {}, "FATHER": {}, "HUSBAND": {},
	}
	bankKeywords    = []string{"BANK", "BANKING", "FINANCIAL", "COOPERATIVE", "CREDIT", "UNION"}
	skipKeywords    = []string{"BANK", "STATEMENT", "ACCOUNT", "PASSBOOK", "BRANCH", "ADDRESS", "PHONE", "MOBILE", "IFSC", "CODE"}
	branchKeywords  = []string{"BRANCH", "BR.", "OFFICE"}
	addressKeywords = []string{"ADDRESS", "ADDR", "RESIDENCE", "PIN", "PINCODE"}
	nomineeKeywords = []string{"NOMINEE", "NOMINY", "BENEFICIARY"}
)

var (
	reNonAlpha     = regexp.MustCompile(`[^A-Za-z\s]`)
	reNonBankChars = regexp.MustCompile(`[^A-Za-z\s&]`)
	reAddrPrefix   = regexp.MustCompile(`(?i)ADDRESS[:\s]*`)
	reNomPrefix    = regexp.MustCompile(`(?i)NOMINEE[:\s]*`)
)

// identityName takes the first run of alphabetic, non-header tokens of
// length > 2 and concatenates up to three of them. The walk stops at the
// first relation indicator ("S/O", "D/O", "W/O", Father, Husband): the
// cardholder's own name precedes those markers on the card, so a name seen
// after one is a relative's and must never be promoted.
func identityName(flat string) string {
	var name []string
	for _, tok := range strings.Fields(flat) {
		up := strings.ToUpper(strings.Trim(tok, ":.,"))
		if _, rel := relationTokens[up]; rel {
			break
		}
		if !isAlpha(tok) || len(tok) <= 2 {
			continue
		}
		if _, hdr := headerTokens[up]; hdr {
			continue
		}
		name = append(name, tok)
		if len(name) == 3 {
			break
		}
	}
	return strings.Join(name, " ")
}

// bankNameFromLines scans the first 10 lines for a bank keyword; documents
// print the institution name in the masthead.
func bankNameFromLines(lines []string) string {
	limit := len(lines)
	if limit > 10 {
		limit = 10
	}
	for _, ln := range lines[:limit] {
		if !containsAny(strings.ToUpper(ln), bankKeywords) {
			continue
		}
		cleaned := collapse(reNonBankChars.ReplaceAllString(ln, " "))
		if len(cleaned) > 5 {
			return cleaned
		}
	}
	return ""
}

// holderNameFromLines picks the first line of 2-4 alphabetic tokens that
// carries no digits and none of the bank-document skip keywords. First
// qualifying line wins; a heading or relative's name can still slip through
// on unusual layouts, which is a known precision limit of this heuristic.
func holderNameFromLines(lines []string) string {
	for _, ln := range lines {
		if strings.ContainsAny(ln, "0123456789") {
			continue
		}
		cleaned := collapse(reNonAlpha.ReplaceAllString(ln, " "))
		tokens := strings.Fields(cleaned)
		if len(tokens) < 2 || len(tokens) > 4 || len(cleaned) <= 5 {
			continue
		}
		if containsAny(strings.ToUpper(cleaned), skipKeywords) {
			continue
		}
		return cleaned
	}
	return ""
}

func branchFromLines(lines []string) string {
	for _, ln := range lines {
		if !containsAny(strings.ToUpper(ln), branchKeywords) {
			continue
		}
		cleaned := collapse(reNonAlpha.ReplaceAllString(ln, " "))
		if strings.Contains(strings.ToUpper(cleaned), "BRANCH") && len(cleaned) > 10 {
			return cleaned
		}
	}
	return ""
}

// addressFromLines concatenates, in document order, every line carrying an
// address indicator keyword. Absence of the keyword yields "": the engine
// must not guess an address from arbitrary trailing text.
func addressFromLines(lines []string) string {
	var parts []string
	for _, ln := range lines {
		if !containsAny(strings.ToUpper(ln), addressKeywords) {
			continue
		}
		cleaned := strings.TrimSpace(reAddrPrefix.ReplaceAllString(ln, ""))
		if len(cleaned) > 5 {
			parts = append(parts, cleaned)
		}
	}
	return strings.Join(parts, " ")
}

func nomineeFromLines(lines []string) string {
	for _, ln := range lines {
		if !containsAny(strings.ToUpper(ln), nomineeKeywords) {
			continue
		}
		cleaned := reNomPrefix.ReplaceAllString(ln, "")
		cleaned = collapse(reNonAlpha.ReplaceAllString(cleaned, " "))
		if len(cleaned) > 3 {
			return cleaned
		}
	}
	return ""
}

func containsAny(upper string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(upper, kw) {
			return true
		}
	}
	return false
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
