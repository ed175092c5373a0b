// Package treesitter provides an incremental core.Parser backed by the
// gotreesitter runtime and its bundled grammars.
package treesitter

import (
	"errors"
	"fmt"

	"github.com/ionut-t/ropedit/core"
	"github.com/odvcencio/gotreesitter"
	"github.com/odvcencio/gotreesitter/grammars"
)

var (
	ErrNoGrammar   = errors.New("no tree-sitter grammar")
	ErrUnsupported = errors.New("grammar cannot be parsed by this runtime")
)

// Parser highlights one language. Trees it returns carry the gotreesitter
// parse, so edits forwarded by the document let the next parse reuse every
// subtree the edit did not touch.
type Parser struct {
	name        string
	highlighter *gotreesitter.Highlighter
}

// ForFile returns a parser for the grammar matching filename.
func ForFile(filename string) (*Parser, error) {
	entry := grammars.DetectLanguage(filename)
	if entry == nil {
		return nil, fmt.Errorf("%w for %q", ErrNoGrammar, filename)
	}
	return newParser(entry)
}

// ForLanguage returns a parser for a language name or alias such as "go"
// or "golang".
func ForLanguage(name string) (*Parser, error) {
	entry := grammars.DetectLanguageByName(name)
	if entry == nil {
		return nil, fmt.Errorf("%w for language %q", ErrNoGrammar, name)
	}
	return newParser(entry)
}

func newParser(entry *grammars.LangEntry) (*Parser, error) {
	lang := entry.Language()
	if support := grammars.EvaluateParseSupport(*entry, lang); support.Backend == grammars.ParseBackendUnsupported {
		return nil, fmt.Errorf("%w: %s: %s", ErrUnsupported, entry.Name, support.Reason)
	}

	var opts []gotreesitter.HighlighterOption
	if entry.TokenSourceFactory != nil {
		factory := entry.TokenSourceFactory
		opts = append(opts, gotreesitter.WithTokenSourceFactory(func(src []byte) gotreesitter.TokenSource {
			return factory(src, lang)
		}))
	}

	h, err := gotreesitter.NewHighlighter(lang, entry.HighlightQuery, opts...)
	if err != nil {
		return nil, fmt.Errorf("compiling %s highlight query: %w", entry.Name, err)
	}

	return &Parser{name: entry.Name, highlighter: h}, nil
}

// Language returns the grammar name.
func (p *Parser) Language() string {
	return p.name
}

// Tree is a parse of one version of the text together with its highlights.
type Tree struct {
	tree  *gotreesitter.Tree
	spans []core.HighlightSpan
	dirty bool
}

// Edit records the edit on the parse tree so the next Parse can reuse the
// unchanged parts.
func (t *Tree) Edit(edit core.EditDescriptor) {
	t.dirty = true
	if t.tree != nil {
		t.tree.Edit(inputEdit(edit))
	}
}

// Spans returns the highlights of the last parse.
func (t *Tree) Spans() []core.HighlightSpan {
	return t.spans
}

func inputEdit(edit core.EditDescriptor) gotreesitter.InputEdit {
	return gotreesitter.InputEdit{
		StartByte:   uint32(edit.StartByte),
		OldEndByte:  uint32(edit.OldEndByte),
		NewEndByte:  uint32(edit.NewEndByte),
		StartPoint:  point(edit.StartPoint),
		OldEndPoint: point(edit.OldEndPoint),
		NewEndPoint: point(edit.NewEndPoint),
	}
}

func point(p core.Point) gotreesitter.Point {
	return gotreesitter.Point{Row: uint32(p.Row), Column: uint32(p.Column)}
}

// Parse reparses text. When old is an edited *Tree the parse is incremental;
// an unedited one is returned as is.
func (p *Parser) Parse(text string, old core.SyntaxTree) (core.SyntaxTree, error) {
	var prev *gotreesitter.Tree
	if t, ok := old.(*Tree); ok {
		if !t.dirty {
			return t, nil
		}
		if t.tree != nil && t.tree.RootNode() != nil {
			prev = t.tree
		}
	}

	ranges, tree := p.highlighter.HighlightIncremental([]byte(text), prev)
	return &Tree{tree: tree, spans: toSpans(ranges, len(text))}, nil
}

// Highlights returns the spans of tree, which must come from Parse.
func (p *Parser) Highlights(tree core.SyntaxTree, text string) []core.HighlightSpan {
	t, ok := tree.(*Tree)
	if !ok {
		return nil
	}
	return t.spans
}

// toSpans converts the sorted, non-overlapping ranges gotreesitter returns.
func toSpans(ranges []gotreesitter.HighlightRange, length int) []core.HighlightSpan {
	spans := make([]core.HighlightSpan, 0, len(ranges))
	for _, r := range ranges {
		start, end := int(r.StartByte), min(int(r.EndByte), length)
		if end <= start {
			continue
		}
		spans = append(spans, core.HighlightSpan{StartByte: start, EndByte: end, Scope: scopeFor(r.Capture)})
	}
	return spans
}

// captureScopes renames tree-sitter captures that have a different name in
// the theme. Other captures are used as is and resolved by prefix.
var captureScopes = map[string]string{
	"number":              "constant.numeric",
	"float":               "constant.numeric",
	"boolean":             "constant.builtin",
	"character":           "constant.character",
	"escape":              "string.escape",
	"punctuation.special": "punctuation.delimiter",
}

func scopeFor(capture string) string {
	if scope, ok := captureScopes[capture]; ok {
		return scope
	}
	return capture
}
