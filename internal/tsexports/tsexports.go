// Package tsexports extracts the exported symbol names of TypeScript and TSX
// component sources using tree-sitter.
package tsexports

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"git.home.luguber.info/inful/docmeta/internal/util/sets"
)

var (
	typeScriptLanguage = sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript())
	tsxLanguage        = sitter.NewLanguage(tree_sitter_typescript.LanguageTSX())
)

// Extractor parses TypeScript sources. The zero value is ready to use and safe
// for concurrent use; parsers are created per call.
type Extractor struct{}

// Exports returns the sorted, de-duplicated names exported by content.
// Unparseable input yields nil.
func (Extractor) Exports(filename string, content []byte) []string {
	lang := typeScriptLanguage
	if strings.HasSuffix(strings.ToLower(filename), ".tsx") {
		lang = tsxLanguage
	}
	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(lang); err != nil {
		return nil
	}

	tree := parser.Parse(content, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil
	}

	names := sets.New[string]()
	for i := uint(0); i < root.NamedChildCount(); i++ {
		stmt := root.NamedChild(i)
		if stmt == nil || stmt.Kind() != "export_statement" {
			continue
		}
		for _, n := range exportStatementNames(stmt, content) {
			names.Add(n)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return sets.Sorted(names)
}

func exportStatementNames(stmt *sitter.Node, content []byte) []string {
	var out []string

	if decl := stmt.ChildByFieldName("declaration"); decl != nil {
		switch decl.Kind() {
		case "class_declaration", "abstract_class_declaration", "interface_declaration",
			"type_alias_declaration", "enum_declaration", "function_declaration",
			"generator_function_declaration":
			if name := fieldText(decl, "name", content); name != "" {
				out = append(out, name)
			}
		case "lexical_declaration", "variable_declaration":
			out = append(out, declaratorNames(decl, content)...)
		}
	}

	// export default <expr>
	if stmt.ChildByFieldName("value") != nil {
		out = append(out, "default")
	}

	for i := uint(0); i < stmt.NamedChildCount(); i++ {
		child := stmt.NamedChild(i)
		if child == nil {
			continue
		}
		switch child.Kind() {
		case "export_clause":
			out = append(out, clauseNames(child, content)...)
		case "namespace_export":
			if child.NamedChildCount() > 0 {
				out = append(out, strings.TrimSpace(nodeText(child.NamedChild(0), content)))
			}
		}
	}
	return out
}

func declaratorNames(decl *sitter.Node, content []byte) []string {
	var out []string
	for i := uint(0); i < decl.NamedChildCount(); i++ {
		child := decl.NamedChild(i)
		if child == nil || child.Kind() != "variable_declarator" {
			continue
		}
		if name := child.ChildByFieldName("name"); name != nil && name.Kind() == "identifier" {
			out = append(out, strings.TrimSpace(nodeText(name, content)))
		}
	}
	return out
}

func clauseNames(clause *sitter.Node, content []byte) []string {
	var out []string
	for i := uint(0); i < clause.NamedChildCount(); i++ {
		spec := clause.NamedChild(i)
		if spec == nil || spec.Kind() != "export_specifier" {
			continue
		}
		name := spec.ChildByFieldName("alias")
		if name == nil {
			name = spec.ChildByFieldName("name")
		}
		if name != nil {
			if text := strings.TrimSpace(nodeText(name, content)); text != "" {
				out = append(out, text)
			}
		}
	}
	return out
}

func fieldText(node *sitter.Node, field string, content []byte) string {
	return strings.TrimSpace(nodeText(node.ChildByFieldName(field), content))
}

func nodeText(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	return node.Utf8Text(content)
}
