package ocr

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tsvLine(conf, word string) string {
	// level page_num block_num par_num line_num word_num left top width height conf text
	return strings.Join([]string{"5", "1", "1", "1", "1", "1", "10", "10", "50", "20", conf, word}, "\t")
}

func sampleTSV() string {
	header := strings.Join([]string{"level", "page_num", "block_num", "par_num", "line_num", "word_num", "left", "top", "width", "height", "conf", "text"}, "\t")
	return strings.Join([]string{
		header,
		tsvLine("-1", ""), // block row, no text
		tsvLine("96.5", "STATE"),
		tsvLine("91.0", "BANK"),
		tsvLine("88.5", "OF"),
		tsvLine("94.0", "INDIA"),
		"",
	}, "\n")
}

func TestParseTSV(t *testing.T) {
	spans, mean := parseTSV(sampleTSV())
	require.Len(t, spans, 4)
	assert.Equal(t, "STATE", spans[0].Text)
	assert.InDelta(t, 0.965, float64(spans[0].Confidence), 0.001)
	assert.InDelta(t, 0.925, float64(mean), 0.001)
}

func TestParseTSVEmpty(t *testing.T) {
	spans, mean := parseTSV("")
	assert.Nil(t, spans)
	assert.Zero(t, mean)
}

func TestResultText(t *testing.T) {
	r := Result{Spans: []Span{{Text: "STATE"}, {Text: ""}, {Text: "BANK"}}}
	assert.Equal(t, "STATE BANK", r.Text())
}

// stubRunner replays canned outputs per invocation.
type stubRunner struct {
	outs  []string
	errs  []error
	calls [][]string
}

func (s *stubRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	i := len(s.calls)
	s.calls = append(s.calls, append([]string{name}, args...))
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	var out string
	if i < len(s.outs) {
		out = s.outs[i]
	}
	return []byte(out), nil, err
}

func TestReadImageTSV(t *testing.T) {
	r := NewReader(Config{}, nil)
	stub := &stubRunner{outs: []string{sampleTSV()}}
	r.runner = stub

	res, err := r.ReadImage(context.Background(), "doc.png")
	require.NoError(t, err)
	assert.Equal(t, "STATE BANK OF INDIA", res.Text())
	assert.InDelta(t, 0.925, float64(res.Confidence), 0.001)

	require.Len(t, stub.calls, 1)
	assert.Equal(t, "tsv", stub.calls[0][len(stub.calls[0])-1])
}

func TestReadImageFallsBackToPlainOutput(t *testing.T) {
	r := NewReader(Config{}, nil)
	stub := &stubRunner{outs: []string{"", "  STATE BANK OF INDIA\n"}}
	r.runner = stub

	res, err := r.ReadImage(context.Background(), "doc.png")
	require.NoError(t, err)
	require.Len(t, stub.calls, 2)
	assert.Equal(t, "STATE BANK OF INDIA", res.Text())
	assert.Zero(t, res.Confidence)
}

func TestReadImageCommandFailure(t *testing.T) {
	r := NewReader(Config{}, nil)
	r.runner = &stubRunner{errs: []error{errors.New("exec: tesseract not found")}}

	_, err := r.ReadImage(context.Background(), "doc.png")
	assert.Error(t, err)
}

func TestBaseArgsIncludesTuning(t *testing.T) {
	r := NewReader(Config{Lang: "eng", PSM: 6, TessdataDir: "/opt/tessdata"}, nil)
	args := r.baseArgs("doc.png")
	joined := strings.Join(args, " ")
	assert.Contains(t, joined, "doc.png stdout -l eng")
	assert.Contains(t, joined, "--psm 6")
	assert.Contains(t, joined, "--tessdata-dir /opt/tessdata")
}
