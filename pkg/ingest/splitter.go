package ingest

// Default splitting parameters. 1000 characters with 100 overlap balances
// retrieval recall against context-window cost.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 100
)

// SplitText splits a long string into segments of approximately 'chunkSize'
// characters with 'overlap' characters repeated at boundaries to preserve
// context. Rune-based so multibyte text is never cut mid-character.
func SplitText(text string, chunkSize int, overlap int) []string {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback if overlap >= chunkSize
	}

	var segments []string
	totalLen := len(runes)
	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		}
		segments = append(segments, string(runes[i:end]))
		if end == totalLen {
			break
		}
	}

	return segments
}

// SplitIntoChunks runs SplitText with the default parameters and tags every
// resulting segment with the originating filename.
func SplitIntoChunks(text, filename string) []Chunk {
	segments := SplitText(text, DefaultChunkSize, DefaultChunkOverlap)
	chunks := make([]Chunk, 0, len(segments))
	for _, seg := range segments {
		chunks = append(chunks, NewChunk(seg, filename))
	}
	return chunks
}
