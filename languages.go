package chunker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/css"
	"github.com/smacker/go-tree-sitter/dockerfile"
	"github.com/smacker/go-tree-sitter/elixir"
	"github.com/smacker/go-tree-sitter/elm"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/groovy"
	"github.com/smacker/go-tree-sitter/hcl"
	"github.com/smacker/go-tree-sitter/html"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/lua"
	"github.com/smacker/go-tree-sitter/ocaml"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/protobuf"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/scala"
	"github.com/smacker/go-tree-sitter/svelte"
	"github.com/smacker/go-tree-sitter/swift"
	"github.com/smacker/go-tree-sitter/toml"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	yamlgrammar "github.com/smacker/go-tree-sitter/yaml"
	"gopkg.in/yaml.v3"
)

// extensionToLanguage maps a case-folded file extension to a language name.
// Grounded on EXTENSION_TO_LANGUAGE in the retrieved Python original; every
// entry from that table is preserved, including the ones whose language has
// no tree-sitter grammar wired below and therefore resolves to the line
// fallback via a "plaintext" profile.
var extensionToLanguage = map[string]string{
	".py":  "python",
	".pyw": "python",
	".pyi": "python",

	".js":  "javascript",
	".jsx": "javascript",
	".mjs": "javascript",
	".cjs": "javascript",
	".ts":  "typescript",
	".mts": "typescript",
	".cts": "typescript",
	".tsx": "tsx",

	".java":   "java",
	".groovy": "groovy",
	".gvy":    "groovy",
	".gradle": "groovy",
	".kt":     "kotlin",
	".kts":    "kotlin",
	".scala":  "scala",

	".cpp": "c++",
	".cc":  "c++",
	".cxx": "c++",
	".c":   "c",
	".h":   "c",
	".hpp": "c++",
	".cs":  "c#",

	".go":      "go",
	".rb":      "ruby",
	".php":     "php",
	".rs":      "rust",
	".swift":   "swift",
	".html":    "html",
	".htm":     "html",
	".css":     "css",
	".less":    "less",
	".json":    "json",
	".yaml":    "yaml",
	".yml":     "yaml",
	".md":      "markdown",
	".sh":      "shell",
	".bash":    "shell",
	".zsh":     "shell",
	".jl":      "julia",
	".hack":    "hack",
	".hh":      "hack",
	".hcl":     "hcl",
	".tf":      "hcl",
	".pl":      "perl",
	".pm":      "perl",
	".ps1":     "powershell",
	".psm1":    "powershell",
	".psd1":    "powershell",
	".pug":     "pug",
	".jade":    "pug",
	".odin":    "odin",
	".ipynb":   "notebook",
	".mmd":     "mermaid",
	".mermaid": "mermaid",
	".svelte":  "svelte",
	".ex":      "elixir",
	".exs":     "elixir",
	".elm":     "elm",
	".ml":      "ocaml",
	".mli":     "ocaml",
	".lua":     "lua",
	".toml":    "toml",
	".proto":   "protobuf",
	".dockerfile": "dockerfile",

	".sql":   "sql",
	".psql":  "sql",
	".tsql":  "sql",
	".pgsql": "sql",
	".plsql": "sql",

	".aspx": "asp.net",
	".ascx": "asp.net",
	".ashx": "asp.net",
	".asmx": "asp.net",
	".asp":  "classic-asp",
	".bat":  "batchfile",
	".cmd":  "batchfile",

	".hbs":        "handlebars",
	".handlebars": "handlebars",
	".mustache":   "mustache",
	".pde":        "processing",
	".as":         "actionscript",
	".mdx":        "mdx",
	".lkml":       "lookml",
	".prg":        "harbour",
	".awk":        "awk",
	".feature":    "gherkin",
	".ejs":        "ejs",
	".cls":        "apex",
	".apex":       "apex",
	".nsi":        "nsis",
}

// knownFilenames maps a case-folded exact or prefix-matched basename to a
// language name. Grounded on KNOWN_FILENAMES: an exact match is tried first,
// then a "<known>.<anything>" prefix so "Dockerfile.complex" or
// "Makefile.linux" still resolve.
var knownFilenames = map[string]string{
	"dockerfile":  "dockerfile",
	"makefile":    "makefile",
	"procfile":    "procfile",
	"jenkinsfile": "groovy",
	"vagrantfile": "ruby",
	"gemfile":     "ruby",
	"rakefile":    "ruby",
	"brewfile":    "ruby",
}

// DetectLanguage determines a language name from a file path by checking the
// basename against knownFilenames (exact, then prefix match) before falling
// back to the extension table. Returns "" if nothing matches.
func DetectLanguage(path string) string {
	if path == "" {
		return ""
	}
	filename := strings.ToLower(filepath.Base(path))

	if lang, ok := knownFilenames[filename]; ok {
		return lang
	}
	for known, lang := range knownFilenames {
		if strings.HasPrefix(filename, known+".") {
			return lang
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	return extensionToLanguage[ext]
}

func containerSet(types ...string) []string   { return types }
func importSet(types ...string) []string      { return types }
func identifierSet(types ...string) []string  { return types }

// LanguageRegistry owns the set of known LanguageProfiles plus the
// tree-sitter grammars backing the "tree-sitter" status entries. A registry
// is an ordinary value owned by the caller; there is no package-level
// mutable instance, per the elimination of global state.
type LanguageRegistry struct {
	mu       sync.RWMutex
	profiles map[string]*LanguageProfile
	grammars map[string]*sitter.Language
}

// NewLanguageRegistry builds the registry with every built-in profile
// prepared and ready to use.
func NewLanguageRegistry() *LanguageRegistry {
	r := &LanguageRegistry{
		profiles: make(map[string]*LanguageProfile),
		grammars: make(map[string]*sitter.Language),
	}
	for _, p := range builtinProfiles() {
		p.prepare()
		r.profiles[p.Name] = p
	}
	r.grammars = map[string]*sitter.Language{
		"python":     python.GetLanguage(),
		"javascript": javascript.GetLanguage(),
		"typescript": tsx.GetLanguage(),
		"tsx":        tsx.GetLanguage(),
		"java":       java.GetLanguage(),
		"groovy":     groovy.GetLanguage(),
		"kotlin":     kotlin.GetLanguage(),
		"scala":      scala.GetLanguage(),
		"c":          c.GetLanguage(),
		"c++":        cpp.GetLanguage(),
		"c#":         csharp.GetLanguage(),
		"go":         golang.GetLanguage(),
		"ruby":       ruby.GetLanguage(),
		"php":        php.GetLanguage(),
		"rust":       rust.GetLanguage(),
		"swift":      swift.GetLanguage(),
		"html":       html.GetLanguage(),
		"css":        css.GetLanguage(),
		"shell":      bash.GetLanguage(),
		"hcl":        hcl.GetLanguage(),
		"svelte":     svelte.GetLanguage(),
		"elixir":     elixir.GetLanguage(),
		"elm":        elm.GetLanguage(),
		"ocaml":      ocaml.GetLanguage(),
		"lua":        lua.GetLanguage(),
		"toml":       toml.GetLanguage(),
		"protobuf":   protobuf.GetLanguage(),
		"dockerfile": dockerfile.GetLanguage(),
		"yaml":       yamlgrammar.GetLanguage(),
	}
	return r
}

// Grammar returns the tree-sitter grammar backing a language name, or nil if
// the language has no grammar wired (plaintext/notebook status, or unknown).
func (r *LanguageRegistry) Grammar(lang string) *sitter.Language {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.grammars[lang]
}

// Profile returns the profile for a language name, and whether it was found.
func (r *LanguageRegistry) Profile(lang string) (*LanguageProfile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[lang]
	return p, ok
}

// LoadOverridesFile decodes a YAML document of additional or adjusted
// LanguageProfile entries and merges them into the registry, keyed by name.
// This lets an operator extend the built-in registry without recompiling;
// grammars for overridden tree-sitter entries must already be wired (the
// registry does not dynamically load grammar shared objects).
func (r *LanguageRegistry) LoadOverridesFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading language overrides: %w", err)
	}
	var doc struct {
		Languages []*LanguageProfile `yaml:"languages"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing language overrides: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range doc.Languages {
		p.prepare()
		r.profiles[p.Name] = p
	}
	return nil
}

// builtinProfiles returns the full set of built-in LanguageProfiles. Profiles
// backed by a tree-sitter grammar declare StatusTreeSitter; languages present
// in the source registry with no confidently-known grammar sub-package keep
// StatusPlaintext, forcing the line fallback rather than guessing at node
// type names for a grammar we never actually wired.
func builtinProfiles() []*LanguageProfile {
	return []*LanguageProfile{
		{
			Name:            "python",
			Status:          StatusTreeSitter,
			ImportTypes:     importSet("import_statement", "import_from_statement"),
			ContainerTypes:  containerSet("function_definition", "class_definition"),
			IdentifierTypes: identifierSet("identifier", "attribute"),
			StopAtTypes:     containerSet("module"),
			BlockDelimiters: BlockDelimiters{Start: ":"},
			CommentPrefix:   "#",
		},
		{
			Name:            "javascript",
			Status:          StatusTreeSitter,
			ImportTypes:     importSet("import_statement", "lexical_declaration"),
			ContainerTypes:  containerSet("function_declaration", "class_declaration", "method_definition", "arrow_function", "function_expression"),
			IdentifierTypes: identifierSet("identifier", "property_identifier", "member_expression"),
			StopAtTypes:     containerSet("program"),
			BlockDelimiters: BlockDelimiters{Start: "{", End: "}"},
			CommentPrefix:   "//",
		},
		{
			Name:            "typescript",
			Status:          StatusTreeSitter,
			ImportTypes:     importSet("import_statement", "lexical_declaration"),
			ContainerTypes:  containerSet("function_declaration", "class_declaration", "method_definition", "interface_declaration", "enum_declaration"),
			IdentifierTypes: identifierSet("identifier", "property_identifier", "member_expression"),
			StopAtTypes:     containerSet("program"),
			BlockDelimiters: BlockDelimiters{Start: "{", End: "}"},
			CommentPrefix:   "//",
		},
		{
			Name:            "tsx",
			Status:          StatusTreeSitter,
			ImportTypes:     importSet("import_statement", "lexical_declaration"),
			ContainerTypes:  containerSet("function_declaration", "class_declaration", "method_definition", "interface_declaration", "enum_declaration"),
			IdentifierTypes: identifierSet("identifier", "property_identifier", "member_expression"),
			StopAtTypes:     containerSet("program"),
			BlockDelimiters: BlockDelimiters{Start: "{", End: "}"},
			CommentPrefix:   "//",
		},
		{
			Name:            "go",
			Status:          StatusTreeSitter,
			ImportTypes:     importSet("import_declaration"),
			ContainerTypes:  containerSet("function_declaration", "method_declaration", "type_declaration"),
			IdentifierTypes: identifierSet("identifier", "field_identifier", "selector_expression"),
			StopAtTypes:     containerSet("source_file"),
			BlockDelimiters: BlockDelimiters{Start: "{", End: "}"},
			CommentPrefix:   "//",
		},
		{
			Name:            "java",
			Status:          StatusTreeSitter,
			ImportTypes:     importSet("import_declaration"),
			ContainerTypes:  containerSet("class_declaration", "interface_declaration", "method_declaration", "enum_declaration"),
			IdentifierTypes: identifierSet("identifier", "field_access"),
			StopAtTypes:     containerSet("program"),
			BlockDelimiters: BlockDelimiters{Start: "{", End: "}"},
			CommentPrefix:   "//",
		},
		{
			Name:            "rust",
			Status:          StatusTreeSitter,
			ImportTypes:     importSet("use_declaration"),
			ContainerTypes:  containerSet("function_item", "struct_item", "impl_item", "trait_item", "mod_item", "enum_item"),
			IdentifierTypes: identifierSet("identifier", "field_identifier", "scoped_identifier"),
			StopAtTypes:     containerSet("source_file"),
			BlockDelimiters: BlockDelimiters{Start: "{", End: "}"},
			CommentPrefix:   "//",
		},
		{
			Name:            "c",
			Status:          StatusTreeSitter,
			ImportTypes:     importSet("preproc_include", "preproc_def"),
			ContainerTypes:  containerSet("function_definition", "struct_specifier", "enum_specifier"),
			IdentifierTypes: identifierSet("identifier", "field_identifier"),
			StopAtTypes:     containerSet("translation_unit"),
			BlockDelimiters: BlockDelimiters{Start: "{", End: "}"},
			CommentPrefix:   "//",
		},
		{
			Name:            "c++",
			Status:          StatusTreeSitter,
			ImportTypes:     importSet("preproc_include", "preproc_def"),
			ContainerTypes:  containerSet("function_definition", "class_specifier", "struct_specifier", "namespace_definition"),
			IdentifierTypes: identifierSet("identifier", "field_identifier"),
			StopAtTypes:     containerSet("translation_unit"),
			BlockDelimiters: BlockDelimiters{Start: "{", End: "}"},
			CommentPrefix:   "//",
		},
		{
			Name:            "c#",
			Status:          StatusTreeSitter,
			ImportTypes:     importSet("using_directive"),
			ContainerTypes:  containerSet("class_declaration", "interface_declaration", "method_declaration", "struct_declaration"),
			IdentifierTypes: identifierSet("identifier", "member_access_expression"),
			StopAtTypes:     containerSet("compilation_unit"),
			BlockDelimiters: BlockDelimiters{Start: "{", End: "}"},
			CommentPrefix:   "//",
		},
		{
			Name:            "ruby",
			Status:          StatusTreeSitter,
			ImportTypes:     importSet("call"),
			ContainerTypes:  containerSet("method", "class", "module"),
			IdentifierTypes: identifierSet("identifier", "constant"),
			StopAtTypes:     containerSet("program"),
			BlockDelimiters: BlockDelimiters{Start: "do"},
			CommentPrefix:   "#",
		},
		{
			Name:            "php",
			Status:          StatusTreeSitter,
			ImportTypes:     importSet("namespace_use_declaration", "include_expression", "require_expression"),
			ContainerTypes:  containerSet("function_definition", "class_declaration", "method_declaration", "interface_declaration"),
			IdentifierTypes: identifierSet("name", "member_access_expression"),
			StopAtTypes:     containerSet("program"),
			BlockDelimiters: BlockDelimiters{Start: "{", End: "}"},
			CommentPrefix:   "//",
		},
		{
			Name:            "swift",
			Status:          StatusTreeSitter,
			ImportTypes:     importSet("import_declaration"),
			ContainerTypes:  containerSet("function_declaration", "class_declaration", "protocol_declaration", "extension_declaration"),
			IdentifierTypes: identifierSet("simple_identifier"),
			StopAtTypes:     containerSet("source_file"),
			BlockDelimiters: BlockDelimiters{Start: "{", End: "}"},
			CommentPrefix:   "//",
		},
		{
			Name:            "kotlin",
			Status:          StatusTreeSitter,
			ImportTypes:     importSet("import_header"),
			ContainerTypes:  containerSet("function_declaration", "class_declaration", "object_declaration"),
			IdentifierTypes: identifierSet("simple_identifier"),
			StopAtTypes:     containerSet("source_file"),
			BlockDelimiters: BlockDelimiters{Start: "{", End: "}"},
			CommentPrefix:   "//",
		},
		{
			Name:            "scala",
			Status:          StatusTreeSitter,
			ImportTypes:     importSet("import_declaration"),
			ContainerTypes:  containerSet("function_definition", "class_definition", "object_definition", "trait_definition"),
			IdentifierTypes: identifierSet("identifier"),
			StopAtTypes:     containerSet("compilation_unit"),
			BlockDelimiters: BlockDelimiters{Start: "{", End: "}"},
			CommentPrefix:   "//",
		},
		{
			Name:            "groovy",
			Status:          StatusTreeSitter,
			ImportTypes:     importSet("import_declaration"),
			ContainerTypes:  containerSet("function_declaration", "class_declaration"),
			IdentifierTypes: identifierSet("identifier"),
			StopAtTypes:     containerSet("program"),
			BlockDelimiters: BlockDelimiters{Start: "{", End: "}"},
			CommentPrefix:   "//",
		},
		{
			Name:            "elixir",
			Status:          StatusTreeSitter,
			ImportTypes:     importSet("call"),
			ContainerTypes:  containerSet("call"),
			IdentifierTypes: identifierSet("identifier"),
			StopAtTypes:     containerSet("source"),
			BlockDelimiters: BlockDelimiters{Start: "do"},
			CommentPrefix:   "#",
		},
		{
			Name:            "elm",
			Status:          StatusTreeSitter,
			ImportTypes:     importSet("import_clause"),
			ContainerTypes:  containerSet("value_declaration", "type_declaration"),
			IdentifierTypes: identifierSet("lower_case_identifier", "upper_case_identifier"),
			StopAtTypes:     containerSet("file"),
			CommentPrefix:   "--",
		},
		{
			Name:            "ocaml",
			Status:          StatusTreeSitter,
			ImportTypes:     importSet("open_module"),
			ContainerTypes:  containerSet("value_definition", "module_definition"),
			IdentifierTypes: identifierSet("value_name"),
			StopAtTypes:     containerSet("compilation_unit"),
			CommentPrefix:   "(*",
		},
		{
			Name:            "lua",
			Status:          StatusTreeSitter,
			ImportTypes:     importSet("function_call"),
			ContainerTypes:  containerSet("function_declaration", "local_function"),
			IdentifierTypes: identifierSet("identifier"),
			StopAtTypes:     containerSet("chunk"),
			BlockDelimiters: BlockDelimiters{Start: "function"},
			CommentPrefix:   "--",
		},
		{
			Name:            "html",
			Status:          StatusTreeSitter,
			ImportTypes:     nil,
			ContainerTypes:  containerSet("element"),
			IdentifierTypes: identifierSet("tag_name", "attribute_name"),
			StopAtTypes:     containerSet("document"),
			CommentPrefix:   "<!--",
		},
		{
			Name:            "css",
			Status:          StatusTreeSitter,
			ImportTypes:     importSet("import_statement"),
			ContainerTypes:  containerSet("rule_set", "media_statement"),
			IdentifierTypes: identifierSet("class_name", "id_name", "property_name"),
			StopAtTypes:     containerSet("stylesheet"),
			BlockDelimiters: BlockDelimiters{Start: "{", End: "}"},
			CommentPrefix:   "/*",
		},
		{
			Name:            "shell",
			Status:          StatusTreeSitter,
			ImportTypes:     importSet("command"),
			ContainerTypes:  containerSet("function_definition"),
			IdentifierTypes: identifierSet("variable_name", "command_name"),
			StopAtTypes:     containerSet("program"),
			CommentPrefix:   "#",
		},
		{
			Name:            "hcl",
			Status:          StatusTreeSitter,
			ImportTypes:     nil,
			ContainerTypes:  containerSet("block"),
			IdentifierTypes: identifierSet("identifier"),
			StopAtTypes:     containerSet("config_file"),
			BlockDelimiters: BlockDelimiters{Start: "{", End: "}"},
			CommentPrefix:   "#",
		},
		{
			Name:            "svelte",
			Status:          StatusTreeSitter,
			ImportTypes:     nil,
			ContainerTypes:  containerSet("element", "script_element"),
			IdentifierTypes: identifierSet("identifier"),
			StopAtTypes:     containerSet("document"),
			CommentPrefix:   "//",
		},
		{
			Name:            "toml",
			Status:          StatusTreeSitter,
			ImportTypes:     nil,
			ContainerTypes:  containerSet("table", "table_array_element"),
			IdentifierTypes: identifierSet("bare_key", "quoted_key"),
			StopAtTypes:     containerSet("document"),
			CommentPrefix:   "#",
		},
		{
			Name:            "yaml",
			Status:          StatusTreeSitter,
			ImportTypes:     nil,
			ContainerTypes:  containerSet("block_mapping_pair"),
			IdentifierTypes: identifierSet("flow_node"),
			StopAtTypes:     containerSet("stream"),
			CommentPrefix:   "#",
		},
		{
			Name:            "protobuf",
			Status:          StatusTreeSitter,
			ImportTypes:     importSet("import"),
			ContainerTypes:  containerSet("message", "service", "enum"),
			IdentifierTypes: identifierSet("identifier"),
			StopAtTypes:     containerSet("source_file"),
			BlockDelimiters: BlockDelimiters{Start: "{", End: "}"},
			CommentPrefix:   "//",
		},
		{
			Name:            "dockerfile",
			Status:          StatusTreeSitter,
			ImportTypes:     importSet("from_instruction"),
			ContainerTypes:  nil,
			IdentifierTypes: identifierSet("image_spec"),
			StopAtTypes:     containerSet("source_file"),
			CommentPrefix:   "#",
		},
		{Name: "makefile", Status: StatusPlaintext},
		{Name: "procfile", Status: StatusPlaintext},
		{Name: "less", Status: StatusPlaintext},
		{Name: "json", Status: StatusPlaintext},
		{Name: "markdown", Status: StatusPlaintext},
		{Name: "julia", Status: StatusPlaintext},
		{Name: "hack", Status: StatusPlaintext},
		{Name: "perl", Status: StatusPlaintext},
		{Name: "powershell", Status: StatusPlaintext},
		{Name: "pug", Status: StatusPlaintext},
		{Name: "odin", Status: StatusPlaintext},
		{Name: "mermaid", Status: StatusPlaintext},
		{Name: "sql", Status: StatusPlaintext},
		{Name: "asp.net", Status: StatusPlaintext},
		{Name: "classic-asp", Status: StatusPlaintext},
		{Name: "batchfile", Status: StatusPlaintext},
		{Name: "handlebars", Status: StatusPlaintext},
		{Name: "mustache", Status: StatusPlaintext},
		{Name: "processing", Status: StatusPlaintext},
		{Name: "actionscript", Status: StatusPlaintext},
		{Name: "mdx", Status: StatusPlaintext},
		{Name: "lookml", Status: StatusPlaintext},
		{Name: "harbour", Status: StatusPlaintext},
		{Name: "awk", Status: StatusPlaintext},
		{Name: "gherkin", Status: StatusPlaintext},
		{Name: "ejs", Status: StatusPlaintext},
		{Name: "apex", Status: StatusPlaintext},
		{Name: "nsis", Status: StatusPlaintext},
		{Name: "notebook", Status: StatusNotebook},
	}
}
