// Package chunker provides AST-aware code chunking for semantic search and RAG
// pipelines. It uses tree-sitter to split source code at semantic boundaries
// (functions, classes, methods) rather than arbitrary character windows, and
// falls back to a line-based window when no parser is available.
package chunker

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) into a file's UTF-8 buffer.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Union returns the smallest span containing both s and other.
func (s Span) Union(other Span) Span {
	start := s.Start
	if other.Start < start {
		start = other.Start
	}
	end := s.End
	if other.End > end {
		end = other.End
	}
	return Span{Start: start, End: end}
}

// Slice returns the bytes of the span from code, clamped to code's bounds.
func (s Span) Slice(code []byte) []byte {
	start, end := s.Start, s.End
	if start < 0 {
		start = 0
	}
	if end > len(code) {
		end = len(code)
	}
	if start > end {
		start = end
	}
	return code[start:end]
}

// LineSpan is a 1-based inclusive pair of line numbers.
type LineSpan struct {
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`
}

// lineSpanForByte converts a byte offset into the 1-based line number it
// falls on, by counting newlines preceding it in code.
func lineSpanForByte(code []byte, offset int) int {
	if offset > len(code) {
		offset = len(code)
	}
	line := 1
	for i := 0; i < offset; i++ {
		if code[i] == '\n' {
			line++
		}
	}
	return line
}

// lineSpanForSpan derives a 1-based inclusive LineSpan from a byte Span.
// The end line is computed from the last byte inside the span (not the
// exclusive boundary) so a span ending exactly at a newline doesn't spill
// onto the following line.
func lineSpanForSpan(code []byte, sp Span) LineSpan {
	start := lineSpanForByte(code, sp.Start)
	endOffset := sp.End
	if endOffset > sp.Start {
		endOffset--
	}
	end := lineSpanForByte(code, endOffset)
	if end < start {
		end = start
	}
	return LineSpan{StartLine: start, EndLine: end}
}

// ChunkingStatus describes how a LanguageProfile should be processed.
type ChunkingStatus string

const (
	StatusTreeSitter ChunkingStatus = "tree-sitter"
	StatusPlaintext  ChunkingStatus = "plaintext"
	StatusNotebook   ChunkingStatus = "notebook"
)

// BlockDelimiters is an optional pair of strings used to locate the end of a
// container's signature when the grammar exposes no "body" field.
type BlockDelimiters struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// LanguageProfile is the immutable per-language configuration consulted by
// every pipeline stage: which node types are imports, which introduce a named
// scope, which are identifiers, and how to fall back to textual delimiters
// when the grammar has no explicit "body" field.
type LanguageProfile struct {
	Name             string          `yaml:"name"`
	Status           ChunkingStatus  `yaml:"status"`
	ImportTypes      []string        `yaml:"import_types"`
	ContainerTypes   []string        `yaml:"container_types"`
	IdentifierTypes  []string        `yaml:"identifier_types"`
	StopAtTypes      []string        `yaml:"stop_at_types"`
	BlockDelimiters  BlockDelimiters `yaml:"block_delimiters"`
	CommentPrefix    string          `yaml:"comment_prefix"`
	importTypeSet    map[string]bool
	containerTypeSet map[string]bool
	identifierSet    map[string]bool
	stopAtSet        map[string]bool
}

func (p *LanguageProfile) prepare() {
	p.importTypeSet = toSet(p.ImportTypes)
	p.containerTypeSet = toSet(p.ContainerTypes)
	p.identifierSet = toSet(p.IdentifierTypes)
	p.stopAtSet = toSet(p.StopAtTypes)
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

func (p *LanguageProfile) IsImportType(nodeType string) bool {
	return p.importTypeSet[nodeType]
}

func (p *LanguageProfile) IsContainerType(nodeType string) bool {
	return p.containerTypeSet[nodeType]
}

func (p *LanguageProfile) IsIdentifierType(nodeType string) bool {
	return p.identifierSet[nodeType]
}

func (p *LanguageProfile) IsStopAtType(nodeType string) bool {
	return p.stopAtSet[nodeType]
}

// FileMetadata is the caller-supplied identity of a file being chunked.
type FileMetadata struct {
	FilePath string
	Repo     string
	Branch   string
}

// normalizedFilePath prefixes FilePath with Repo the way the source system
// does: if Repo already appears inside FilePath, the path is truncated to
// start there; otherwise it becomes "<repo>/<basename>".
func (m FileMetadata) normalizedFilePath() string {
	repo := m.Repo
	if repo == "" {
		repo = "unknown_repo"
	}
	path := m.FilePath
	if path == "" {
		path = "unknown_file"
	}
	if idx := indexOf(path, repo); repo != "unknown_repo" && idx != -1 {
		return path[idx:]
	}
	return fmt.Sprintf("%s/%s", repo, baseName(path))
}

func indexOf(haystack, needle string) int {
	n := len(needle)
	if n == 0 {
		return -1
	}
	for i := 0; i+n <= len(haystack); i++ {
		if haystack[i:i+n] == needle {
			return i
		}
	}
	return -1
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == '\\' {
			return path[i+1:]
		}
	}
	return path
}

// ChunkingMethod records which pipeline path produced a chunk.
type ChunkingMethod string

const (
	MethodTreeSitter ChunkingMethod = "tree-sitter"
	MethodLineBased  ChunkingMethod = "line-based"
	MethodNotebook   ChunkingMethod = "notebook"
)

// ChunkMetadata is the metadata attached to every emitted ChunkRecord.
type ChunkMetadata struct {
	Repo                   string         `json:"repo"`
	Branch                 string         `json:"branch"`
	FilePath               string         `json:"file_path"`
	Language               string         `json:"language"`
	ChunkingMethod         ChunkingMethod `json:"chunking_method"`
	ChunkID                string         `json:"chunk_id"`
	ChunkIndex             int            `json:"chunk_index"`
	StartLine              int            `json:"start_line"`
	EndLine                int            `json:"end_line"`
	RelationalDescription  string         `json:"relational_description"`
	CellType               string         `json:"cell_type,omitempty"`
	OriginalCellIndex      *int           `json:"original_cell_index,omitempty"`
	FileDescription        string         `json:"file_description,omitempty"`
}

// ChunkRecord is one chunk emitted by the assembler, notebook specialization,
// or line fallback.
type ChunkRecord struct {
	Content            string
	Metadata           ChunkMetadata
	ImportLines        []string
	ParentContextSpans []LineSpan
	ParentContextText  []string
	byteSpan           Span // internal only; stripped before serialization
}

// FormattedChunk is the serialized, formatter-produced view of a ChunkRecord.
type FormattedChunk struct {
	FormattedChunkBlock string        `json:"formatted_chunk_block"`
	OriginalContent     string        `json:"original_content"`
	Metadata            ChunkMetadata `json:"metadata"`
}

// ChunkOptions configures a single call to Chunk.
type ChunkOptions struct {
	Language             string
	MaxChars             int
	Coalesce             int
	IncludeTokens        bool
	GenerateDescriptions bool
	FallbackChunkSize    int
	FallbackOverlap      int
}

const (
	DefaultMaxChars          = 1500
	DefaultCoalesce          = 100
	DefaultFallbackChunkSize = 40
	DefaultFallbackOverlap   = 15
	// significanceThreshold is the minimum non-whitespace byte count a
	// tree-sitter chunk must have to survive the post-filter.
	significanceThreshold = 5
)

// DefaultChunkOptions returns the options used when a caller supplies none.
func DefaultChunkOptions() ChunkOptions {
	return ChunkOptions{
		MaxChars:          DefaultMaxChars,
		Coalesce:          DefaultCoalesce,
		FallbackChunkSize: DefaultFallbackChunkSize,
		FallbackOverlap:   DefaultFallbackOverlap,
	}
}

func (o ChunkOptions) withDefaults() ChunkOptions {
	if o.MaxChars <= 0 {
		o.MaxChars = DefaultMaxChars
	}
	if o.Coalesce <= 0 {
		o.Coalesce = DefaultCoalesce
	}
	if o.FallbackChunkSize <= 0 {
		o.FallbackChunkSize = DefaultFallbackChunkSize
	}
	return o
}

// FileInput is one unit of work for the batch API.
type FileInput struct {
	Code     string
	Metadata FileMetadata
	Options  ChunkOptions
}

// BatchResult is the per-file outcome of ChunkBatch.
type BatchResult struct {
	FilePath   string
	FormattedText string
	Chunks     []FormattedChunk
	Err        error
}

// BatchOptions configures ChunkBatch.
type BatchOptions struct {
	Concurrency int
}

// DefaultBatchOptions returns the default batch options (concurrency 5, per
// the bounded-parallelism default callers see).
func DefaultBatchOptions() BatchOptions {
	return BatchOptions{Concurrency: 5}
}
