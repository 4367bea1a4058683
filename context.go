package chunker

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// findDefiningNode returns the smallest container node that fully encloses
// [start,end). Starting from the smallest node covering the first
// non-whitespace byte in the span, it first climbs past any intervening
// non-container ancestors (statement wrappers, bodies, and the like) to find
// the innermost node that is itself a container type enclosing the whole
// span - that node may be the starting node itself, e.g. when the span is a
// function's own definition. From there it keeps climbing only while the
// parent is immediately a qualifying container too; the first parent that
// fails the container+encloses test stops the walk, so an outer container
// found past a non-qualifying ancestor never overwrites the inner one.
func findDefiningNode(root *sitter.Node, code []byte, start, end int, profile *LanguageProfile) *sitter.Node {
	firstNonWS := start
	for firstNonWS < end && firstNonWS < len(code) && isWhitespaceByte(code[firstNonWS]) {
		firstNonWS++
	}
	if firstNonWS >= end {
		firstNonWS = start
	}

	node := root.NamedDescendantForByteRange(uint32(firstNonWS), uint32(firstNonWS))
	if node == nil {
		return nil
	}

	qualifies := func(n *sitter.Node) bool {
		return n != nil && profile.IsContainerType(n.Type()) && int(n.StartByte()) <= start && int(n.EndByte()) >= end
	}

	current := node
	for current != nil && !qualifies(current) {
		current = current.Parent()
	}
	if current == nil {
		return nil
	}

	defining := current
	for {
		parent := current.Parent()
		if !qualifies(parent) {
			break
		}
		defining = parent
		current = parent
	}
	return defining
}

// ancestorContainers walks upward from the defining node's parent, collecting
// every container_types node until a stop_at_types node or the root, then
// reverses the result to outermost-first.
func ancestorContainers(defining *sitter.Node, profile *LanguageProfile) []*sitter.Node {
	if defining == nil {
		return nil
	}
	var ancestors []*sitter.Node
	current := defining.Parent()
	for current != nil {
		if profile.IsStopAtType(current.Type()) {
			break
		}
		if profile.IsContainerType(current.Type()) {
			ancestors = append(ancestors, current)
		}
		current = current.Parent()
	}
	for i, j := 0, len(ancestors)-1; i < j; i, j = i+1, j-1 {
		ancestors[i], ancestors[j] = ancestors[j], ancestors[i]
	}
	return ancestors
}

// signatureSpan computes the [start, bodyStart) byte range of a container's
// declaration header: the AST "body" field if the grammar exposes one,
// otherwise a scan for the configured block delimiter, otherwise the whole
// node range.
func signatureSpan(node *sitter.Node, profile *LanguageProfile, code []byte) Span {
	if body := node.ChildByFieldName("body"); body != nil {
		return Span{Start: int(node.StartByte()), End: int(body.StartByte())}
	}
	if profile.BlockDelimiters.Start != "" {
		if pos := findTopLevelDelimiter(node, code, profile.BlockDelimiters.Start); pos != -1 {
			return Span{Start: int(node.StartByte()), End: int(node.StartByte()) + pos + len(profile.BlockDelimiters.Start)}
		}
	}
	return Span{Start: int(node.StartByte()), End: int(node.EndByte())}
}

// findTopLevelDelimiter finds the byte offset (relative to node's own text)
// of delimiter's first occurrence that sits outside any parens, brackets,
// angle brackets, or string literal — so a signature scan doesn't stop at a
// "{" that's actually part of a generic bound or a default-argument literal.
func findTopLevelDelimiter(node *sitter.Node, code []byte, delimiter string) int {
	text := string(code[node.StartByte():node.EndByte()])
	parenDepth, bracketDepth, angleDepth := 0, 0, 0
	inString := false
	var stringChar byte

	for i := 0; i < len(text); i++ {
		ch := text[i]
		var prev byte
		if i > 0 {
			prev = text[i-1]
		}

		if (ch == '"' || ch == '\'' || ch == '`') && prev != '\\' {
			if !inString {
				inString, stringChar = true, ch
			} else if ch == stringChar {
				inString = false
			}
			continue
		}
		if inString {
			continue
		}

		switch ch {
		case '(':
			parenDepth++
		case ')':
			parenDepth--
		case '[':
			bracketDepth++
		case ']':
			bracketDepth--
		case '<':
			if i+1 < len(text) {
				next := text[i+1]
				if isIdentStartByte(next) || next == '>' || next == ' ' || next == '<' {
					angleDepth++
				}
			}
		case '>':
			if angleDepth > 0 {
				angleDepth--
			}
		}

		if strings.HasPrefix(text[i:], delimiter) && parenDepth == 0 && bracketDepth == 0 && angleDepth == 0 {
			return i
		}
	}
	return -1
}

func isIdentStartByte(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_'
}

// containerName returns a container node's declared name via the "name"
// field, falling back to the first identifier-shaped child, then to the
// "name" field of a direct child (e.g. the type_spec inside a Go
// type_declaration).
func containerName(node *sitter.Node, code []byte) string {
	if name := node.ChildByFieldName("name"); name != nil {
		return string(code[name.StartByte():name.EndByte()])
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if strings.Contains(child.Type(), "identifier") {
			return string(code[child.StartByte():child.EndByte()])
		}
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if child := node.Child(i); child != nil {
			if name := child.ChildByFieldName("name"); name != nil {
				return string(code[name.StartByte():name.EndByte()])
			}
		}
	}
	return ""
}

// relationalDescription builds the human-readable "Chunk within X -> Y"
// label, or one of the special-cased fallbacks for top-level/import-only/
// self-defining chunks.
func relationalDescription(ancestors []*sitter.Node, defining *sitter.Node, spanIsImportOnly bool, code []byte) string {
	if spanIsImportOnly {
		return "Chunk containing primarily imports"
	}
	if len(ancestors) == 0 {
		if defining != nil {
			return fmt.Sprintf("Top-level %s '%s'", defining.Type(), containerName(defining, code))
		}
		return "Top-level code chunk"
	}
	parts := make([]string, 0, len(ancestors))
	for _, a := range ancestors {
		parts = append(parts, fmt.Sprintf("%s '%s'", a.Type(), containerName(a, code)))
	}
	return "Chunk within " + strings.Join(parts, " -> ")
}

// buildParentContext computes the ordered LineSpans and literal source lines
// of every ancestor container's signature, outermost first.
func buildParentContext(ancestors []*sitter.Node, profile *LanguageProfile, code []byte, fileLines []string) ([]LineSpan, []string) {
	var spans []LineSpan
	var text []string
	for _, ancestor := range ancestors {
		sig := signatureSpan(ancestor, profile, code)
		ls := lineSpanForSpan(code, sig)
		spans = append(spans, ls)
		text = append(text, sliceLines(fileLines, ls.StartLine, ls.EndLine))
	}
	return spans, text
}

func sliceLines(fileLines []string, startLine, endLine int) string {
	if startLine < 1 {
		startLine = 1
	}
	if endLine > len(fileLines) {
		endLine = len(fileLines)
	}
	if startLine > endLine || startLine > len(fileLines) {
		return ""
	}
	return strings.Join(fileLines[startLine-1:endLine], "\n")
}
