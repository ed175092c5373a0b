package core

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles the render composer applies. Tokens maps scope
// labels such as "keyword" or "function.method" to styles.
type Theme struct {
	Editor      lipgloss.Style
	ActiveLine  lipgloss.Style
	Selection   lipgloss.Style
	LineNumbers lipgloss.Style
	StatusBar   lipgloss.Style
	Placeholder lipgloss.Style
	Tokens      map[string]lipgloss.Style
}

// TokenStyle returns the style for scope. A dotted scope falls back to its
// parents ("function.method" then "function"); unknown scopes get the editor
// style.
func (t *Theme) TokenStyle(scope string) lipgloss.Style {
	for scope != "" {
		if style, ok := t.Tokens[scope]; ok {
			return style
		}
		i := strings.LastIndexByte(scope, '.')
		if i < 0 {
			break
		}
		scope = scope[:i]
	}
	return t.Editor
}

// patch returns base overlaid with the properties set on overlay.
func patch(base, overlay lipgloss.Style) lipgloss.Style {
	return overlay.Inherit(base)
}

func fg(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

// DefaultTheme returns a dark theme on the Ayu palette.
func DefaultTheme() *Theme {
	var (
		orange    = fg("#ffb454")
		orangeRed = fg("#ff8f40")
		blue      = fg("#59c2ff")
		lightGray = fg("#bfbdb6")
		green     = fg("#aad94c")
		text      = fg("#e6e1cf")
		purple    = fg("#d4bfff")
		lime      = fg("#c2d94c")
		cyan      = fg("#95e6cb")
		darkGray  = fg("#5c6773")
		red       = fg("#f07178")
	)

	return &Theme{
		Editor: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e6e1cf")).
			Background(lipgloss.Color("#191f26")),
		Selection:   lipgloss.NewStyle().Background(lipgloss.Color("12")),
		LineNumbers: fg("#5c6773"),
		ActiveLine: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d2cdbb")).
			Background(lipgloss.Color("#272b2e")),
		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c5c5c5")).
			Background(lipgloss.Color("#0f1419")),
		Placeholder: fg("#aaa593"),
		Tokens: map[string]lipgloss.Style{
			"attribute":             orange,
			"keyword":               orangeRed,
			"constructor":           blue,
			"function":              orange,
			"function.method":       blue,
			"punctuation.bracket":   lightGray,
			"punctuation.delimiter": lightGray,
			"type":                  blue,
			"type.builtin":          blue,
			"property":              green,
			"variable":              text,
			"variable.parameter":    text,
			"variable.builtin":      orangeRed,
			"constant":              purple,
			"constant.builtin":      purple,
			"constant.numeric":      purple,
			"constant.character":    lime,
			"string":                lime,
			"string.escape":         cyan,
			"string.regex":          cyan,
			"comment":               darkGray,
			"comment.documentation": darkGray,
			"tag":                   orangeRed,
			"tag.attribute":         orange,
			"tag.delimiter":         lightGray,
			"operator":              orangeRed,
			"label":                 orange,
			"module":                blue,
			"namespace":             blue,
			"field":                 green,
			"parameter":             text,
			"macro":                 orangeRed,
			"escape":                cyan,
			"embedded":              text,
			"error":                 red,
			"warning":               orange,
		},
	}
}
