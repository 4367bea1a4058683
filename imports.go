package chunker

import (
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// importNode pairs a collected import statement's AST node with its
// de-duplicated source text.
type importNode struct {
	node *sitter.Node
	text string
}

// collectGlobalImports walks root collecting every node whose type is an
// import type for profile. It does not descend into a container (a function,
// class, etc.) unless the container node is itself also an import type,
// since import statements live at file scope in every grammar the registry
// wires. Results are ordered by start byte and de-duplicated by decoded,
// stripped text, keeping the first occurrence.
func collectGlobalImports(root *sitter.Node, code []byte, profile *LanguageProfile) []importNode {
	var found []*sitter.Node

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if profile.IsImportType(n.Type()) {
			found = append(found, n)
		} else if profile.IsContainerType(n.Type()) {
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			if child := n.Child(i); child != nil {
				walk(child)
			}
		}
	}
	walk(root)

	sort.Slice(found, func(i, j int) bool {
		return found[i].StartByte() < found[j].StartByte()
	})

	seen := make(map[string]bool)
	var result []importNode
	for _, n := range found {
		text := strings.TrimSpace(string(code[n.StartByte():n.EndByte()]))
		if text == "" || seen[text] {
			continue
		}
		seen[text] = true
		result = append(result, importNode{node: n, text: text})
	}
	return result
}

// importLines returns the surfaced line-by-line text for a set of collected
// import nodes, splitting any multi-line import statement into its
// constituent lines (e.g. a Go grouped import block).
func importLines(nodes []importNode) []string {
	var lines []string
	for _, n := range nodes {
		for _, line := range strings.Split(n.text, "\n") {
			line = strings.TrimRight(line, "\r")
			if strings.TrimSpace(line) != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

// boundNames returns the set of names an import node introduces into scope,
// per language-specific construct shapes. "*" is used as the wildcard
// sentinel meaning "this import cannot be proven unused by name matching."
func boundNames(n *sitter.Node, lang string, code []byte) []string {
	text := func(nd *sitter.Node) string {
		if nd == nil {
			return ""
		}
		return string(code[nd.StartByte():nd.EndByte()])
	}
	lastSegment := func(s, sep string) string {
		parts := strings.Split(s, sep)
		return parts[len(parts)-1]
	}

	switch lang {
	case "python":
		switch n.Type() {
		case "import_statement":
			var names []string
			for i := 0; i < int(n.ChildCount()); i++ {
				child := n.Child(i)
				switch child.Type() {
				case "dotted_name":
					if first := child.Child(0); first != nil && first.Type() == "identifier" {
						names = append(names, text(first))
					}
				case "aliased_import":
					if alias := child.ChildByFieldName("alias"); alias != nil {
						names = append(names, text(alias))
					}
				}
			}
			return names
		case "import_from_statement":
			var names []string
			for i := 0; i < int(n.ChildCount()); i++ {
				child := n.Child(i)
				switch child.Type() {
				case "wildcard_import":
					return []string{"*"}
				case "aliased_import":
					if alias := child.ChildByFieldName("alias"); alias != nil {
						names = append(names, text(alias))
					} else if name := child.ChildByFieldName("name"); name != nil {
						names = append(names, text(name))
					}
				case "identifier":
					t := text(child)
					if t != "from" && t != "import" {
						names = append(names, t)
					}
				}
			}
			return names
		}

	case "javascript", "typescript", "tsx":
		if n.Type() == "import_statement" {
			var names []string
			for i := 0; i < int(n.ChildCount()); i++ {
				clause := n.Child(i)
				if clause.Type() != "import_clause" {
					continue
				}
				for j := 0; j < int(clause.ChildCount()); j++ {
					c := clause.Child(j)
					switch c.Type() {
					case "identifier":
						names = append(names, text(c))
					case "named_imports":
						for k := 0; k < int(c.ChildCount()); k++ {
							spec := c.Child(k)
							if spec.Type() != "import_specifier" {
								continue
							}
							if alias := spec.ChildByFieldName("alias"); alias != nil {
								names = append(names, text(alias))
							} else if name := spec.ChildByFieldName("name"); name != nil {
								names = append(names, text(name))
							}
						}
					case "namespace_import":
						if alias := c.ChildByFieldName("alias"); alias != nil {
							names = append(names, text(alias))
						}
					}
				}
			}
			return names
		}
		if n.Type() == "lexical_declaration" {
			var names []string
			for i := 0; i < int(n.ChildCount()); i++ {
				decl := n.Child(i)
				if decl.Type() != "variable_declarator" {
					continue
				}
				name := decl.ChildByFieldName("name")
				value := decl.ChildByFieldName("value")
				if name != nil && value != nil && value.Type() == "call_expression" {
					if fn := value.ChildByFieldName("function"); fn != nil && text(fn) == "require" {
						names = append(names, text(name))
					}
				}
			}
			return names
		}

	case "go":
		if n.Type() == "import_declaration" {
			var names []string
			collectSpec := func(spec *sitter.Node) {
				if name := spec.ChildByFieldName("name"); name != nil {
					names = append(names, text(name))
					return
				}
				if path := spec.ChildByFieldName("path"); path != nil {
					p := stripQuotes(text(path))
					names = append(names, lastSegment(p, "/"))
				}
			}
			for i := 0; i < int(n.ChildCount()); i++ {
				child := n.Child(i)
				switch child.Type() {
				case "import_spec":
					collectSpec(child)
				case "import_spec_list":
					for j := 0; j < int(child.ChildCount()); j++ {
						if spec := child.Child(j); spec.Type() == "import_spec" {
							collectSpec(spec)
						}
					}
				}
			}
			return names
		}

	case "java":
		if n.Type() == "import_declaration" {
			if name := n.ChildByFieldName("name"); name != nil {
				return []string{lastSegment(text(name), ".")}
			}
		}

	case "c", "c++":
		switch n.Type() {
		case "preproc_include":
			if path := n.ChildByFieldName("path"); path != nil {
				header := lastSegment(text(path), "/")
				header = strings.Trim(header, "<>\"")
				header = strings.SplitN(header, ".", 2)[0]
				return []string{header}
			}
		case "preproc_def":
			if name := n.ChildByFieldName("name"); name != nil {
				return []string{text(name)}
			}
		}

	case "ruby":
		if n.Type() == "call" {
			if arg := n.Child(1); arg != nil {
				mod := strings.Trim(text(arg), "\"'")
				mod = lastSegment(mod, "/")
				mod = strings.SplitN(mod, ".", 2)[0]
				return []string{mod}
			}
		}

	case "rust":
		if n.Type() == "use_declaration" {
			var names []string
			if path := n.ChildByFieldName("argument"); path != nil {
				names = append(names, rustUseNames(path, code)...)
			}
			return names
		}

	case "php":
		switch n.Type() {
		case "namespace_use_declaration":
			var names []string
			for i := 0; i < int(n.ChildCount()); i++ {
				clause := n.Child(i)
				if clause.Type() != "namespace_use_clause" {
					continue
				}
				if alias := clause.ChildByFieldName("alias"); alias != nil {
					names = append(names, text(alias))
				} else if name := clause.ChildByFieldName("name"); name != nil {
					names = append(names, lastSegment(text(name), "\\"))
				}
			}
			return names
		case "include_expression", "require_expression":
			return []string{"*"}
		}
	}

	return nil
}

func rustUseNames(n *sitter.Node, code []byte) []string {
	text := func(nd *sitter.Node) string { return string(code[nd.StartByte():nd.EndByte()]) }
	switch n.Type() {
	case "use_list":
		var names []string
		for i := 0; i < int(n.ChildCount()); i++ {
			child := n.Child(i)
			if child.Type() == "," || child.Type() == "{" || child.Type() == "}" {
				continue
			}
			names = append(names, rustUseNames(child, code)...)
		}
		return names
	case "scoped_identifier":
		parts := strings.Split(text(n), "::")
		return []string{parts[len(parts)-1]}
	case "identifier":
		return []string{text(n)}
	case "use_as_clause":
		if alias := n.ChildByFieldName("alias"); alias != nil {
			return []string{text(alias)}
		}
	case "use_wildcard":
		return []string{"*"}
	}
	return nil
}

func stripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') || (first == '`' && last == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// filterImportsForChunk returns the ordered subset of import lines whose
// bound names are used inside [spanStart, spanEnd). A wildcard binding
// anywhere taints the whole file's imports into every chunk, since the
// filter cannot prove non-use across it.
func filterImportsForChunk(nodes []importNode, lines []string, root *sitter.Node, code []byte, profile *LanguageProfile, lang string, spanStart, spanEnd int) []string {
	nameToLineIndices := make(map[string]map[int]bool)
	lineIdx := 0
	hasWildcard := false

	for _, n := range nodes {
		stmtLineCount := strings.Count(n.text, "\n") + 1
		names := boundNames(n.node, lang, code)
		for _, name := range names {
			if name == "*" {
				hasWildcard = true
			}
			if nameToLineIndices[name] == nil {
				nameToLineIndices[name] = make(map[int]bool)
			}
			for i := 0; i < stmtLineCount; i++ {
				nameToLineIndices[name][lineIdx+i] = true
			}
		}
		lineIdx += stmtLineCount
	}

	if hasWildcard {
		return append([]string(nil), lines...)
	}

	used := findIdentifiersInSpan(root, spanStart, spanEnd, code, profile)

	relevant := make(map[int]bool)
	for name := range used {
		for idx := range nameToLineIndices[name] {
			relevant[idx] = true
		}
	}

	var filtered []string
	for i, line := range lines {
		if relevant[i] {
			filtered = append(filtered, line)
		}
	}
	return filtered
}
