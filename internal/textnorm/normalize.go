package textnorm

import (
	"regexp"
	"strings"
)

// Document is the normalized view of one raw OCR text. Lines feed the
// line-oriented heuristics, Flat feeds the pattern pass. A Document is built
// once per request and never mutated.
type Document struct {
	Lines []string
	Flat  string
}

// Empty reports whether normalization left no usable text.
func (d Document) Empty() bool { return d.Flat == "" }

// OCR column separators (pipes, underscores) show up as isolated runs in
// scanned tables; they carry no field content.
var reSeparators = regexp.MustCompile(`[|_]+`)

// Normalize collapses whitespace and OCR artifacts into a flat string and a
// trimmed line sequence. Lines of length <= 2 are treated as noise and
// dropped. Pure function: empty input yields empty outputs.
func Normalize(text string) Document {
	cleaned := reSeparators.ReplaceAllString(text, " ")

	var lines []string
	for _, ln := range strings.Split(cleaned, "\n") {
		ln = strings.Join(strings.Fields(ln), " ")
		if len(ln) > 2 {
			lines = append(lines, ln)
		}
	}

	return Document{
		Lines: lines,
		Flat:  strings.Join(strings.Fields(cleaned), " "),
	}
}
