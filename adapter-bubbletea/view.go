package adapter_bubbletea

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/ropedit/core"
	"github.com/muesli/reflow/truncate"
)

// textRows returns the number of rows left for text once the status line,
// command line and help line are placed.
func (m *Model) textRows() int {
	rows := m.height - 1
	if m.showStatusLine {
		rows--
	}
	if m.showHelp {
		rows--
	}
	return max(rows, 0)
}

// gutterWidth is wide enough for the largest visible line number plus two
// spaces of padding on each side.
func (m *Model) gutterWidth(rows int) int {
	if !m.showLineNumbers {
		return 0
	}
	return len(strconv.Itoa(m.doc.ScrollTop()+rows)) + 4
}

// refresh renders the document into the viewport.
func (m *Model) refresh() {
	rows := m.textRows()
	gutter := min(m.gutterWidth(rows), m.width)
	cols := m.width - gutter

	theme := m.editorTheme
	if m.yanked {
		flash := *theme
		flash.Selection = m.theme.HighlightYankStyle
		theme = &flash
	}

	m.frame = m.doc.Render(m.parser, theme, rows, cols)

	m.viewport.Width = m.width
	m.viewport.Height = rows
	m.viewport.SetContent(m.renderFrame(theme, rows, cols, gutter))
	m.viewport.GotoTop()
}

func (m *Model) renderFrame(theme *core.Theme, rows, cols, gutter int) string {
	lines := make([]string, 0, rows)
	_, cursorLine := m.doc.Position()
	showCursor := m.isFocused && m.cursorVisible && !m.commandLine.Focused()
	empty := m.doc.Rope().IsEmpty()

	for i, cells := range m.frame.Rows {
		lineStyle := m.frame.LineStyles[i]

		var sb strings.Builder
		if gutter > 0 {
			numberStyle := theme.LineNumbers.Inherit(lineStyle)
			if m.frame.Lines[i] == cursorLine {
				numberStyle = m.theme.CurrentLineNumberStyle.Inherit(numberStyle)
			}
			number := "  " + strconv.Itoa(m.frame.Lines[i]+1) + "  "
			sb.WriteString(numberStyle.Width(gutter).Align(lipgloss.Right).Render(number))
		}

		cursor := m.frame.Cursor
		cursorHere := showCursor && cursor != nil && cursor.Row == i

		width := 0
		for _, cell := range cells {
			style := cell.Style
			if cursorHere && cursor.Col == width {
				style = style.Reverse(true)
			}
			sb.WriteString(style.Render(string(cell.Rune)))
			width += cell.Width
		}

		if cursorHere && cursor.Col == width && width < cols {
			sb.WriteString(lineStyle.Reverse(true).Render(" "))
			width++
		}

		if empty && i == 0 && m.placeholder != "" && width < cols {
			placeholder := truncate.String(m.placeholder, uint(cols-width))
			sb.WriteString(theme.Placeholder.Inherit(lineStyle).Render(placeholder))
			width += lipgloss.Width(placeholder)
		}

		if width < cols {
			sb.WriteString(lineStyle.Render(strings.Repeat(" ", cols-width)))
		}

		lines = append(lines, sb.String())
	}

	for len(lines) < rows {
		filler := ""
		if m.showTildeIndicator && m.width > 0 {
			filler = m.theme.TildeStyle.Inherit(theme.Editor).Render("~")
		}
		if pad := m.width - lipgloss.Width(filler); pad > 0 {
			filler += theme.Editor.Render(strings.Repeat(" ", pad))
		}
		lines = append(lines, filler)
	}

	return strings.Join(lines, "\n")
}

func (m Model) View() string {
	parts := []string{m.viewport.View()}
	if m.showStatusLine {
		parts = append(parts, m.statusLine())
	}
	parts = append(parts, m.commandLineView())
	if m.showHelp {
		parts = append(parts, m.help.View(m.keys))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) modeStyle() lipgloss.Style {
	switch m.doc.Mode().(type) {
	case core.Insert:
		return m.theme.InsertModeStyle
	case core.Select:
		return m.theme.SelectModeStyle
	}
	return m.theme.NormalModeStyle
}

func (m *Model) statusLine() string {
	status := m.frame.Status
	barStyle := m.editorTheme.StatusBar

	name := m.fileName
	if m.doc.IsModified() {
		name += " [+]"
	}

	left := m.modeStyle().Render(" "+status.Mode+" ") + barStyle.Render(" "+name)
	right := barStyle.Render(status.Position() + " ")

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 0)

	return left + barStyle.Render(strings.Repeat(" ", gap)) + right
}

func (m *Model) commandLineView() string {
	width := uint(max(m.width, 0))
	background := m.theme.CommandLineStyle.GetBackground()

	var line string
	switch {
	case m.commandLine.Focused():
		line = m.commandLine.View()
	case m.err != nil:
		line = m.theme.ErrorStyle.Background(background).Render(truncate.StringWithTail(m.err.Error(), width, "…"))
	case m.message != "":
		line = m.theme.MessageStyle.Background(background).Render(truncate.StringWithTail(m.message, width, "…"))
	}

	if pad := m.width - lipgloss.Width(line); pad > 0 {
		line += m.theme.CommandLineStyle.Render(strings.Repeat(" ", pad))
	}

	return line
}
