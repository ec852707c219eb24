package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"ai-coursechat-be/pkg/apperrors"
)

// CommandRunner executes an external command and returns its stdout.
// Injected so parsers can be unit-tested without the binary installed.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Parser turns an uploaded PDF byte stream into provenance-tagged chunks.
// Extraction shells out to pdftotext; the pipeline itself performs no index
// writes.
type Parser struct {
	runner CommandRunner
}

func NewParser() *Parser {
	return &Parser{runner: execRunner{}}
}

// NewParserWithRunner injects a custom runner (used in tests).
func NewParserWithRunner(runner CommandRunner) *Parser {
	return &Parser{runner: runner}
}

// Parse loads the full document text and splits it into overlapping chunks,
// each tagged with source = filename. An unreadable or empty document
// surfaces as ErrIngestion.
func (p *Parser) Parse(ctx context.Context, r io.Reader, filename string) ([]Chunk, error) {
	text, err := p.extractText(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrIngestion, filename, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: %s: no extractable text", apperrors.ErrIngestion, filename)
	}
	return SplitIntoChunks(text, filename), nil
}

// QuickAnalyze extracts only the first chunk's text, for course-name
// inference, without a full parse-and-store cycle.
func (p *Parser) QuickAnalyze(ctx context.Context, r io.Reader, filename string) (string, error) {
	chunks, err := p.Parse(ctx, r, filename)
	if err != nil {
		return "", err
	}
	return chunks[0].PageContent, nil
}

func (p *Parser) extractText(ctx context.Context, r io.Reader) (string, error) {
	tmp, err := os.CreateTemp("", "upload-*.pdf")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	// -layout keeps reading order close to the visual one, "-" writes to stdout.
	out, err := p.runner.Run(ctx, "pdftotext", "-layout", tmp.Name(), "-")
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
