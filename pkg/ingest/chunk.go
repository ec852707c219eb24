package ingest

// MetadataSource is the metadata key carrying the originating filename.
// Every chunk in the index is tagged with it so deletion can target exactly
// the chunks produced from one file.
const MetadataSource = "source"

// Chunk is a provenance-tagged text segment, the unit stored in the index.
// Immutable once produced; ownership transfers to the index store on add.
type Chunk struct {
	PageContent string            `json:"page_content"`
	Metadata    map[string]string `json:"metadata"`
}

// Source returns the originating filename recorded in the chunk metadata.
func (c Chunk) Source() string {
	return c.Metadata[MetadataSource]
}

// NewChunk builds a chunk tagged with the given source filename.
func NewChunk(content, source string) Chunk {
	return Chunk{
		PageContent: content,
		Metadata:    map[string]string{MetadataSource: source},
	}
}
