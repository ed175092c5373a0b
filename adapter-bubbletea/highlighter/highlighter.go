package highlighter

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/ropedit/core"
)

// Highlighter is a core.Parser backed by a chroma lexer. Chroma cannot
// resume lexing mid-document, so an edited tree is re-lexed in full on the
// next parse while its spans are shifted to stay roughly aligned until then.
type Highlighter struct {
	lexer      chroma.Lexer
	style      *chroma.Style
	styleCache map[chroma.TokenType]lipgloss.Style
}

// New creates a highlighter for a chroma language name and style name.
func New(language string, theme string) *Highlighter {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Get("plaintext")
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return newHighlighter(lexer, theme)
}

// ForFile picks the lexer by file name, falling back to language.
func ForFile(filename, language, theme string) *Highlighter {
	if lexer := lexers.Match(filename); lexer != nil {
		return newHighlighter(lexer, theme)
	}
	return New(language, theme)
}

func newHighlighter(lexer chroma.Lexer, theme string) *Highlighter {
	return &Highlighter{
		lexer:      chroma.Coalesce(lexer),
		style:      styles.Get(theme),
		styleCache: make(map[chroma.TokenType]lipgloss.Style),
	}
}

// Language returns the name of the lexer in use.
func (h *Highlighter) Language() string {
	return h.lexer.Config().Name
}

// Tree holds the highlight spans of one lexing pass.
type Tree struct {
	spans  []core.HighlightSpan
	length int
	dirty  bool
}

// Edit shifts spans after the edit and clips spans touching it. The tree is
// marked for re-lexing.
func (t *Tree) Edit(edit core.EditDescriptor) {
	delta := edit.NewEndByte - edit.OldEndByte
	out := t.spans[:0]
	for _, s := range t.spans {
		switch {
		case s.EndByte <= edit.StartByte:
		case s.StartByte >= edit.OldEndByte:
			s.StartByte += delta
			s.EndByte += delta
		case s.StartByte < edit.StartByte:
			s.EndByte = edit.StartByte
		case s.EndByte > edit.OldEndByte:
			s.StartByte = edit.NewEndByte
			s.EndByte += delta
		default:
			continue
		}
		if s.EndByte > s.StartByte {
			out = append(out, s)
		}
	}
	t.spans = out
	t.length += delta
	t.dirty = true
}

// Spans returns the current spans.
func (t *Tree) Spans() []core.HighlightSpan {
	return t.spans
}

// Parse lexes text into old when it is a *Tree, or into a new tree. A clean
// tree of the same length is returned as is.
func (h *Highlighter) Parse(text string, old core.SyntaxTree) (core.SyntaxTree, error) {
	tree, ok := old.(*Tree)
	if ok && !tree.dirty && tree.length == len(text) {
		return tree, nil
	}
	if !ok {
		tree = &Tree{}
	}

	spans, err := h.tokenise(text)
	if err != nil {
		return nil, err
	}
	tree.spans = spans
	tree.length = len(text)
	tree.dirty = false
	return tree, nil
}

// Highlights returns the spans of tree, which must come from Parse.
func (h *Highlighter) Highlights(tree core.SyntaxTree, text string) []core.HighlightSpan {
	t, ok := tree.(*Tree)
	if !ok {
		return nil
	}
	return t.spans
}

func (h *Highlighter) tokenise(text string) ([]core.HighlightSpan, error) {
	if text == "" {
		return nil, nil
	}

	// EnsureLF would rewrite CRLF and shift every later offset.
	iterator, err := h.lexer.Tokenise(&chroma.TokeniseOptions{State: "root"}, text)
	if err != nil {
		return nil, err
	}

	var spans []core.HighlightSpan
	offset := 0
	for _, token := range iterator.Tokens() {
		start := offset
		offset += len(token.Value)
		if start >= len(text) {
			break
		}
		scope := scopeFor(token)
		if scope == "" || len(token.Value) == 0 {
			continue
		}
		end := min(offset, len(text))
		if n := len(spans); n > 0 && spans[n-1].Scope == scope && spans[n-1].EndByte == start {
			spans[n-1].EndByte = end
			continue
		}
		spans = append(spans, core.HighlightSpan{StartByte: start, EndByte: end, Scope: scope})
	}
	return spans, nil
}

// GetStyleForToken converts a Chroma token type to a lipgloss style.
func (h *Highlighter) GetStyleForToken(tokenType chroma.TokenType) lipgloss.Style {
	if style, ok := h.styleCache[tokenType]; ok {
		return style
	}

	entry := h.style.Get(tokenType)

	style := lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		style = style.Foreground(lipgloss.Color(entry.Colour.String()))
	}

	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}

	h.styleCache[tokenType] = style

	return style
}

// Theme builds an editor theme from the chroma style. Colours the style
// does not define are taken from core.DefaultTheme.
func (h *Highlighter) Theme() *core.Theme {
	theme := core.DefaultTheme()

	background := h.style.Get(chroma.Background)
	editor := lipgloss.NewStyle()
	if background.Colour.IsSet() {
		editor = editor.Foreground(lipgloss.Color(background.Colour.String()))
	}
	if background.Background.IsSet() {
		editor = editor.Background(lipgloss.Color(background.Background.String()))
	}
	theme.Editor = editor.Inherit(theme.Editor)

	if entry := h.style.Get(chroma.LineHighlight); entry.Background.IsSet() {
		theme.ActiveLine = lipgloss.NewStyle().Background(lipgloss.Color(entry.Background.String()))
	}
	if entry := h.style.Get(chroma.LineNumbers); entry.Colour.IsSet() {
		theme.LineNumbers = lipgloss.NewStyle().Foreground(lipgloss.Color(entry.Colour.String()))
	}

	theme.Tokens = make(map[string]lipgloss.Style, len(scopeTokens))
	for scope, tokenType := range scopeTokens {
		theme.Tokens[scope] = h.GetStyleForToken(tokenType)
	}
	return theme
}

// tokenScopes maps chroma token types to scope labels. Types without an
// entry are looked up by sub-category, then category.
var tokenScopes = map[chroma.TokenType]string{
	chroma.Keyword:               "keyword",
	chroma.KeywordType:           "type.builtin",
	chroma.KeywordConstant:       "constant.builtin",
	chroma.NameFunction:          "function",
	chroma.NameFunctionMagic:     "function",
	chroma.NameBuiltin:           "function.builtin",
	chroma.NameBuiltinPseudo:     "variable.builtin",
	chroma.NameClass:             "type",
	chroma.NameException:         "type",
	chroma.NameTag:               "tag",
	chroma.NameAttribute:         "tag.attribute",
	chroma.NameNamespace:         "namespace",
	chroma.NameDecorator:         "attribute",
	chroma.NameLabel:             "label",
	chroma.NameConstant:          "constant",
	chroma.NameEntity:            "constant",
	chroma.NameVariable:          "variable",
	chroma.NameVariableAnonymous: "variable",
	chroma.NameVariableClass:     "variable",
	chroma.NameVariableGlobal:    "variable",
	chroma.NameVariableInstance:  "variable",
	chroma.NameVariableMagic:     "variable.builtin",
	chroma.NameProperty:          "property",
	chroma.LiteralString:         "string",
	chroma.LiteralStringEscape:   "string.escape",
	chroma.LiteralStringRegex:    "string.regex",
	chroma.LiteralStringChar:     "constant.character",
	chroma.LiteralNumber:         "constant.numeric",
	chroma.LiteralDate:           "constant",
	chroma.Operator:              "operator",
	chroma.Comment:               "comment",
	chroma.CommentPreproc:        "macro",
	chroma.CommentPreprocFile:    "string",
	chroma.Error:                 "error",
	chroma.GenericHeading:        "markup.heading",
	chroma.GenericSubheading:     "markup.heading",
	chroma.GenericStrong:         "markup.bold",
	chroma.GenericEmph:           "markup.italic",
}

// scopeTokens picks the chroma token type whose style a scope takes.
var scopeTokens = map[string]chroma.TokenType{
	"keyword":               chroma.Keyword,
	"type.builtin":          chroma.KeywordType,
	"constant.builtin":      chroma.KeywordConstant,
	"function":              chroma.NameFunction,
	"function.builtin":      chroma.NameBuiltin,
	"variable.builtin":      chroma.NameBuiltinPseudo,
	"type":                  chroma.NameClass,
	"tag":                   chroma.NameTag,
	"tag.attribute":         chroma.NameAttribute,
	"namespace":             chroma.NameNamespace,
	"attribute":             chroma.NameDecorator,
	"label":                 chroma.NameLabel,
	"constant":              chroma.NameConstant,
	"variable":              chroma.NameVariable,
	"property":              chroma.NameProperty,
	"string":                chroma.LiteralString,
	"string.escape":         chroma.LiteralStringEscape,
	"string.regex":          chroma.LiteralStringRegex,
	"constant.character":    chroma.LiteralStringChar,
	"constant.numeric":      chroma.LiteralNumber,
	"operator":              chroma.Operator,
	"punctuation.bracket":   chroma.Punctuation,
	"punctuation.delimiter": chroma.Punctuation,
	"comment":               chroma.Comment,
	"macro":                 chroma.CommentPreproc,
	"error":                 chroma.Error,
	"markup.heading":        chroma.GenericHeading,
	"markup.bold":           chroma.GenericStrong,
	"markup.italic":         chroma.GenericEmph,
}

func scopeFor(token chroma.Token) string {
	t := token.Type
	if t.InCategory(chroma.Punctuation) {
		if strings.Trim(token.Value, "()[]{} ") == "" {
			return "punctuation.bracket"
		}
		return "punctuation.delimiter"
	}
	for _, candidate := range []chroma.TokenType{t, t.SubCategory(), t.Category()} {
		if scope, ok := tokenScopes[candidate]; ok {
			return scope
		}
	}
	return ""
}
