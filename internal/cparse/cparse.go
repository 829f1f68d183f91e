// Package cparse extracts include directives with tree-sitter. Unlike the
// line scanner it sees directives the way the grammar does, so text inside
// block comments and raw string literals never yields a target.
package cparse

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
)

// Name identifies this extractor in configuration and in the scan cache.
const Name = "tree-sitter"

const includePattern = `(preproc_include path: (_) @path)`

var (
	grammars     map[string]*sitter.Language
	grammarsOnce sync.Once
)

func initGrammars() {
	grammarsOnce.Do(func() {
		grammars = map[string]*sitter.Language{
			"c":   c.GetLanguage(),
			"cpp": cpp.GetLanguage(),
		}
	})
}

// languageFor picks the grammar for a file. Only ".c" files use the C
// grammar; headers are parsed as C++, which accepts every C directive.
func languageFor(name string) *sitter.Language {
	initGrammars()
	if strings.EqualFold(path.Ext(name), ".c") {
		return grammars["c"]
	}
	return grammars["cpp"]
}

// Extractor returns include targets found by a tree-sitter parse.
type Extractor struct{}

// New returns a tree-sitter Extractor.
func New() *Extractor { return &Extractor{} }

// Name returns the extractor's name.
func (*Extractor) Name() string { return Name }

// Includes parses src and returns the target of every include directive in
// document order, delimiters stripped. Directives whose target is a macro
// name are skipped.
func (*Extractor) Includes(ctx context.Context, name string, src []byte) ([]string, error) {
	lang := languageFor(name)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("cparse: parse %s: %w", name, err)
	}
	defer tree.Close()

	q, err := sitter.NewQuery([]byte(includePattern), lang)
	if err != nil {
		return nil, fmt.Errorf("cparse: query: %w", err)
	}
	defer q.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(q, tree.RootNode())

	var includes []string
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			if target, ok := includeTarget(capture.Node, src); ok {
				includes = append(includes, target)
			}
		}
	}
	return includes, nil
}

func includeTarget(node *sitter.Node, src []byte) (string, bool) {
	switch node.Type() {
	case "string_literal", "system_lib_string":
	default:
		return "", false
	}
	text := node.Content(src)
	if len(text) < 2 {
		return "", false
	}
	target := text[1 : len(text)-1]
	if target == "" {
		return "", false
	}
	return target, true
}
