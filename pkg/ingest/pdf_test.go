package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-coursechat-be/pkg/apperrors"
)

type mockRunner struct {
	output []byte
	err    error
	name   string
	args   []string
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.name = name
	m.args = args
	return m.output, m.err
}

func TestParseChunksExtractedText(t *testing.T) {
	runner := &mockRunner{output: []byte(strings.Repeat("lecture content ", 100))}
	p := NewParserWithRunner(runner)

	chunks, err := p.Parse(context.Background(), strings.NewReader("%PDF-1.4 fake"), "week1.pdf")
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	assert.Equal(t, "pdftotext", runner.name)
	assert.Equal(t, "-layout", runner.args[0])
	assert.Equal(t, "-", runner.args[len(runner.args)-1])

	for _, c := range chunks {
		assert.Equal(t, "week1.pdf", c.Source())
	}
}

func TestParseFailsWhenExtractionFails(t *testing.T) {
	runner := &mockRunner{err: errors.New("exit status 1")}
	p := NewParserWithRunner(runner)

	_, err := p.Parse(context.Background(), strings.NewReader("broken"), "bad.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrIngestion))
}

func TestParseFailsOnEmptyDocument(t *testing.T) {
	runner := &mockRunner{output: []byte("   \n\t  ")}
	p := NewParserWithRunner(runner)

	_, err := p.Parse(context.Background(), strings.NewReader("scanned image pdf"), "scan.pdf")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrIngestion))
}

func TestQuickAnalyzeReturnsFirstChunk(t *testing.T) {
	longText := strings.Repeat("operating systems scheduling ", 100)
	runner := &mockRunner{output: []byte(longText)}
	p := NewParserWithRunner(runner)

	sample, err := p.QuickAnalyze(context.Background(), strings.NewReader("fake"), "os.pdf")
	require.NoError(t, err)

	first := SplitIntoChunks(longText, "os.pdf")[0]
	assert.Equal(t, first.PageContent, sample)
}
