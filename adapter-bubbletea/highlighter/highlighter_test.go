package highlighter

import (
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/ionut-t/ropedit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goSource = "package main\n\nfunc main() {\n\tx := \"hi\" // greet\n\t_ = x + 42\n}\n"

func spanAt(spans []core.HighlightSpan, offset int) string {
	for _, s := range spans {
		if s.StartByte <= offset && offset < s.EndByte {
			return s.Scope
		}
	}
	return ""
}

func TestParseGo(t *testing.T) {
	h := New("go", "monokai")

	tree, err := h.Parse(goSource, nil)
	require.NoError(t, err)
	spans := h.Highlights(tree, goSource)

	require.NotEmpty(t, spans)
	require.NoError(t, core.ValidateSpans(spans))
	assert.Equal(t, "keyword", spanAt(spans, strings.Index(goSource, "func")))
	assert.Equal(t, "string", spanAt(spans, strings.Index(goSource, "\"hi\"")+1))
	assert.Equal(t, "comment", spanAt(spans, strings.Index(goSource, "greet")))
	assert.Equal(t, "constant.numeric", spanAt(spans, strings.Index(goSource, "42")))
	for _, s := range spans {
		assert.LessOrEqual(t, s.EndByte, len(goSource))
	}
}

func TestParseWithoutTrailingNewline(t *testing.T) {
	h := New("go", "monokai")
	text := "var s = \"x\""

	tree, err := h.Parse(text, nil)
	require.NoError(t, err)

	spans := h.Highlights(tree, text)
	require.NoError(t, core.ValidateSpans(spans))
	require.NotEmpty(t, spans)
	assert.Equal(t, len(text), spans[len(spans)-1].EndByte)
}

func TestParseEmpty(t *testing.T) {
	h := New("go", "monokai")

	tree, err := h.Parse("", nil)

	require.NoError(t, err)
	assert.Empty(t, h.Highlights(tree, ""))
}

func TestParseReusesCleanTree(t *testing.T) {
	h := New("go", "monokai")
	tree, err := h.Parse(goSource, nil)
	require.NoError(t, err)

	again, err := h.Parse(goSource, tree)

	require.NoError(t, err)
	assert.Same(t, tree, again)
}

func TestParseAfterEdit(t *testing.T) {
	h := New("go", "monokai")
	text := "x := 1"
	tree, err := h.Parse(text, nil)
	require.NoError(t, err)

	d := core.NewFromString(text)
	d.OnEdit(tree.Edit)
	d.InsertString("// ")

	updated, err := h.Parse(d.Content(), tree)
	require.NoError(t, err)
	assert.Same(t, tree, updated)
	assert.Equal(t, []core.HighlightSpan{{StartByte: 0, EndByte: 9, Scope: "comment"}}, h.Highlights(updated, d.Content()))
}

func TestTreeEdit(t *testing.T) {
	spans := func() []core.HighlightSpan {
		return []core.HighlightSpan{
			{StartByte: 0, EndByte: 3, Scope: "a"},
			{StartByte: 4, EndByte: 8, Scope: "b"},
			{StartByte: 10, EndByte: 12, Scope: "c"},
		}
	}

	tests := []struct {
		name string
		edit core.EditDescriptor
		want []core.HighlightSpan
	}{
		{
			name: "insert after all spans",
			edit: core.EditDescriptor{StartByte: 12, OldEndByte: 12, NewEndByte: 14},
			want: spans(),
		},
		{
			name: "insert between spans",
			edit: core.EditDescriptor{StartByte: 9, OldEndByte: 9, NewEndByte: 11},
			want: []core.HighlightSpan{{StartByte: 0, EndByte: 3, Scope: "a"}, {StartByte: 4, EndByte: 8, Scope: "b"}, {StartByte: 12, EndByte: 14, Scope: "c"}},
		},
		{
			name: "insert inside a span",
			edit: core.EditDescriptor{StartByte: 6, OldEndByte: 6, NewEndByte: 7},
			want: []core.HighlightSpan{{StartByte: 0, EndByte: 3, Scope: "a"}, {StartByte: 4, EndByte: 6, Scope: "b"}, {StartByte: 11, EndByte: 13, Scope: "c"}},
		},
		{
			name: "delete covering a span",
			edit: core.EditDescriptor{StartByte: 3, OldEndByte: 9, NewEndByte: 3},
			want: []core.HighlightSpan{{StartByte: 0, EndByte: 3, Scope: "a"}, {StartByte: 4, EndByte: 6, Scope: "c"}},
		},
		{
			name: "delete straddling a span start",
			edit: core.EditDescriptor{StartByte: 2, OldEndByte: 5, NewEndByte: 2},
			want: []core.HighlightSpan{{StartByte: 0, EndByte: 2, Scope: "a"}, {StartByte: 2, EndByte: 5, Scope: "b"}, {StartByte: 7, EndByte: 9, Scope: "c"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := &Tree{spans: spans(), length: 14}

			tree.Edit(tt.edit)

			assert.Equal(t, tt.want, tree.Spans())
			assert.True(t, tree.dirty)
			assert.Equal(t, 14+tt.edit.Delta(), tree.length)
			assert.NoError(t, core.ValidateSpans(tree.Spans()))
		})
	}
}

func TestScopeFor(t *testing.T) {
	tests := []struct {
		token chroma.Token
		want  string
	}{
		{chroma.Token{Type: chroma.KeywordDeclaration, Value: "func"}, "keyword"},
		{chroma.Token{Type: chroma.KeywordType, Value: "int"}, "type.builtin"},
		{chroma.Token{Type: chroma.LiteralStringDouble, Value: `"x"`}, "string"},
		{chroma.Token{Type: chroma.LiteralNumberInteger, Value: "42"}, "constant.numeric"},
		{chroma.Token{Type: chroma.NameVariableGlobal, Value: "$x"}, "variable"},
		{chroma.Token{Type: chroma.CommentSingle, Value: "// x"}, "comment"},
		{chroma.Token{Type: chroma.CommentPreprocFile, Value: "<stdio.h>"}, "string"},
		{chroma.Token{Type: chroma.Punctuation, Value: "({"}, "punctuation.bracket"},
		{chroma.Token{Type: chroma.Punctuation, Value: ";"}, "punctuation.delimiter"},
		{chroma.Token{Type: chroma.Name, Value: "x"}, ""},
		{chroma.Token{Type: chroma.Text, Value: " "}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.token.Type.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, scopeFor(tt.token))
		})
	}
}

func TestForFile(t *testing.T) {
	assert.Equal(t, "Go", ForFile("main.go", "plaintext", "monokai").Language())
	assert.Equal(t, "Rust", ForFile("no-extension", "rust", "monokai").Language())
	assert.Equal(t, "plaintext", ForFile("no-extension", "no-such-language", "monokai").Language())
}

func TestTheme(t *testing.T) {
	h := New("go", "monokai")

	theme := h.Theme()

	assert.NotNil(t, theme.Editor.GetBackground())
	assert.Contains(t, theme.Tokens, "keyword")
	assert.Equal(t, h.GetStyleForToken(chroma.Keyword).GetForeground(), theme.TokenStyle("keyword").GetForeground())
	assert.Equal(t, core.DefaultTheme().StatusBar.GetBackground(), theme.StatusBar.GetBackground())
}
