package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTextShortInputIsSingleSegment(t *testing.T) {
	segments := SplitText("short text", 1000, 100)
	assert.Equal(t, []string{"short text"}, segments)
}

func TestSplitTextEmptyInput(t *testing.T) {
	assert.Nil(t, SplitText("", 1000, 100))
}

func TestSplitTextOverlapsAtBoundaries(t *testing.T) {
	text := strings.Repeat("a", 250)
	segments := SplitText(text, 100, 20)

	require.Len(t, segments, 4)
	assert.Len(t, segments[0], 100)
	assert.Len(t, segments[1], 100)
	assert.Len(t, segments[2], 100)
	// last segment starts at 240 and runs to the end
	assert.Len(t, segments[3], 10)

	// consecutive segments share the overlap region
	assert.Equal(t, segments[0][80:], segments[1][:20])
}

func TestSplitTextNeverCutsMultibyteRunes(t *testing.T) {
	text := strings.Repeat("가나다라마", 50) // 250 runes, 3 bytes each
	segments := SplitText(text, 100, 20)

	for _, seg := range segments {
		assert.True(t, len([]rune(seg)) <= 100)
		for _, r := range seg {
			assert.NotEqual(t, '�', r)
		}
	}
}

func TestSplitTextOverlapNotSmallerThanChunkSize(t *testing.T) {
	// degenerate configuration falls back to non-overlapping steps
	segments := SplitText(strings.Repeat("x", 30), 10, 10)
	assert.Equal(t, []string{
		strings.Repeat("x", 10),
		strings.Repeat("x", 10),
		strings.Repeat("x", 10),
	}, segments)
}

func TestSplitIntoChunksTagsSource(t *testing.T) {
	chunks := SplitIntoChunks(strings.Repeat("b", 1500), "lecture01.pdf")

	require.Len(t, chunks, 2)
	for _, c := range chunks {
		assert.Equal(t, "lecture01.pdf", c.Source())
	}
}
