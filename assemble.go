package chunker

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// splitLinesNoEnds splits code into lines without their terminators, for
// 1-based line-indexed slicing elsewhere (parent context text, fallback
// windows).
func splitLinesNoEnds(code []byte) []string {
	text := string(code)
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	// strings.Split on a trailing "\n" yields a spurious empty final
	// element; drop it so line counts match lineSpanForSpan's convention.
	if len(lines) > 0 && lines[len(lines)-1] == "" && strings.HasSuffix(text, "\n") {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// assembleChunks runs spans through the full tree-sitter path: per-span
// content decode, significance filter, metadata, import filtering, and
// ancestor context, finishing with the whitespace handoff pass.
func assembleChunks(root *sitter.Node, code []byte, lang string, profile *LanguageProfile, spans []Span, meta FileMetadata) []ChunkRecord {
	fileLines := splitLinesNoEnds(code)
	nodes := collectGlobalImports(root, code, profile)
	lines := importLines(nodes)
	normalizedPath := meta.normalizedFilePath()

	var records []ChunkRecord
	chunkIndex := 0

	for _, sp := range spans {
		content := string(sp.Slice(code))
		if nonWhitespaceLen(content) < significanceThreshold {
			continue
		}

		lineSpan := lineSpanForSpan(code, sp)
		defining := findDefiningNode(root, code, sp.Start, sp.End, profile)
		ancestors := ancestorContainers(defining, profile)
		parentSpans, parentText := buildParentContext(ancestors, profile, code, fileLines)

		importOnly := isImportOnlySpan(root, code, sp, profile)
		description := relationalDescription(ancestors, defining, importOnly, code)

		record := ChunkRecord{
			Content:            content,
			ImportLines:        filterImportsForChunk(nodes, lines, root, code, profile, lang, sp.Start, sp.End),
			ParentContextSpans: parentSpans,
			ParentContextText:  parentText,
			byteSpan:           sp,
			Metadata: ChunkMetadata{
				Repo:                  meta.Repo,
				Branch:                meta.Branch,
				FilePath:              normalizedPath,
				Language:              lang,
				ChunkingMethod:        MethodTreeSitter,
				ChunkID:               fmt.Sprintf("%s-L%d-L%d", normalizedPath, lineSpan.StartLine, lineSpan.EndLine),
				ChunkIndex:            chunkIndex,
				StartLine:             lineSpan.StartLine,
				EndLine:               lineSpan.EndLine,
				RelationalDescription: description,
			},
		}
		records = append(records, record)
		chunkIndex++
	}

	applyWhitespaceHandoff(records)
	return records
}

// isImportOnlySpan reports whether every top-level statement overlapping the
// span is itself an import-type node — used to prefer the "primarily
// imports" label over a structural one.
func isImportOnlySpan(root *sitter.Node, code []byte, sp Span, profile *LanguageProfile) bool {
	sawAny := false
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		// Anonymous tokens (e.g. Go's "\n" statement terminators) are not
		// statements.
		if child == nil || !child.IsNamed() {
			continue
		}
		childStart, childEnd := int(child.StartByte()), int(child.EndByte())
		if childEnd <= sp.Start || childStart >= sp.End {
			continue
		}
		sawAny = true
		if !profile.IsImportType(child.Type()) {
			return false
		}
	}
	return sawAny
}

// applyWhitespaceHandoff strips trailing spaces/tabs (never newlines) from
// each chunk's content and prepends exactly those bytes to the following
// chunk, so no bytes are lost and no chunk ends mid-indentation.
func applyWhitespaceHandoff(records []ChunkRecord) {
	for i := 0; i < len(records)-1; i++ {
		content := records[i].Content
		end := len(content)
		for end > 0 && (content[end-1] == ' ' || content[end-1] == '\t') {
			end--
		}
		trailing := content[end:]
		if trailing == "" {
			continue
		}
		records[i].Content = content[:end]
		records[i+1].Content = trailing + records[i+1].Content
	}
}
