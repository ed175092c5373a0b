package adapter_bubbletea

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/ropedit/adapter-bubbletea/highlighter"
	"github.com/ionut-t/ropedit/core"
)

// Theme styles the chrome around the text area. Text colours come from the
// core.Theme passed to WithEditorTheme.
type Theme struct {
	NormalModeStyle        lipgloss.Style
	InsertModeStyle        lipgloss.Style
	SelectModeStyle        lipgloss.Style
	CommandLineStyle       lipgloss.Style
	MessageStyle           lipgloss.Style
	ErrorStyle             lipgloss.Style
	CurrentLineNumberStyle lipgloss.Style
	HighlightYankStyle     lipgloss.Style
	TildeStyle             lipgloss.Style
}

var DefaultTheme = Theme{
	NormalModeStyle:        lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("255")),
	InsertModeStyle:        lipgloss.NewStyle().Background(lipgloss.Color("26")).Foreground(lipgloss.Color("255")),
	SelectModeStyle:        lipgloss.NewStyle().Background(lipgloss.Color("127")).Foreground(lipgloss.Color("255")),
	CommandLineStyle:       lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("255")),
	MessageStyle:           lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	ErrorStyle:             lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	CurrentLineNumberStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	HighlightYankStyle:     lipgloss.NewStyle().Background(lipgloss.Color("220")).Foreground(lipgloss.Color("0")).Bold(true),
	TildeStyle:             lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

type cursorBlinkMsg struct{}
type cursorBlinkCanceledMsg struct{}
type resumeBlinkCycleMsg struct{}

type CursorMode int

const (
	CursorSteady CursorMode = iota
	CursorBlink
)

const cursorBlinkInterval = 500 * time.Millisecond
const cursorActivityResetDelay = 250 * time.Millisecond

const messageDuration = 3 * time.Second

type cursorBlinkContext struct {
	ctx    context.Context
	cancel context.CancelFunc
}

type Model struct {
	doc         *core.Document
	parser      core.Parser
	editorTheme *core.Theme
	theme       Theme
	keys        KeyMap
	help        help.Model
	commandLine textinput.Model
	viewport    viewport.Model
	clipboard   core.Clipboard
	frame       core.Frame

	width              int
	height             int
	tabWidth           int
	fileName           string
	placeholder        string
	showLineNumbers    bool
	showTildeIndicator bool
	showStatusLine     bool
	showHelp           bool
	scrollMouse        bool

	err            error
	message        string
	clearMsgCancel context.CancelFunc
	yanked         bool
	isFocused      bool

	cursorMode         CursorMode
	cursorVisible      bool
	cursorBlinkContext *cursorBlinkContext
}

type ErrorMsg struct {
	ID    core.ErrorId
	Error error
}

// SaveMsg asks the host to write Content. Path is empty when the document
// should be written to the file it was opened from. The host calls
// Document().MarkSaved(Content) after a successful write and, when Quit is
// set, exits only then.
type SaveMsg struct {
	Path    string
	Content string
	Quit    bool
}

type QuitMsg struct{}

type YankMsg struct {
	Content string
}

type clearMsg struct{}

type clearYankMsg struct{}

// signalMsg carries one signal read from the document channel.
type signalMsg struct {
	signal core.Signal
}

func (m *Model) dispatchClearMsg(duration time.Duration) tea.Cmd {
	if m.clearMsgCancel != nil {
		m.clearMsgCancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	m.clearMsgCancel = cancel

	return func() tea.Msg {
		defer cancel()
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			return clearMsg{}
		}
		return nil
	}
}

func (m *Model) dispatchClearYankMsg() tea.Cmd {
	return tea.Tick(time.Millisecond*150, func(t time.Time) tea.Msg {
		return clearYankMsg{}
	})
}

type clipboardImpl struct{}

func (c *clipboardImpl) Write(text string) error {
	return clipboard.WriteAll(text)
}

func (c *clipboardImpl) Read() (string, error) {
	return clipboard.ReadAll()
}

// New creates an editor over an empty document.
func New(width, height int) Model {
	commandLine := textinput.New()
	commandLine.Prompt = ":"

	m := Model{
		doc:             core.New(),
		editorTheme:     core.DefaultTheme(),
		theme:           DefaultTheme,
		keys:            DefaultKeyMap(),
		help:            help.New(),
		commandLine:     commandLine,
		viewport:        viewport.New(width, height),
		clipboard:       &clipboardImpl{},
		tabWidth:        4,
		showLineNumbers: true,
		showStatusLine:  true,
		scrollMouse:     true,
		cursorMode:      CursorSteady,
		cursorVisible:   true,
		cursorBlinkContext: &cursorBlinkContext{
			ctx: context.Background(),
		},
	}

	m.SetSize(width, height)

	return m
}

func (m *Model) SetSize(width, height int) {
	m.width = max(width, 0)
	m.height = max(height, 0)
	m.help.Width = m.width
	m.commandLine.Width = max(m.width-2, 0)
	m.refresh()
}

// SetBytes sets the content of the editor.
func (m *Model) SetBytes(content []byte) {
	m.SetContent(string(content))
}

// SetContent replaces the document text and marks it saved.
func (m *Model) SetContent(content string) {
	m.doc.SetContent(content)
	m.refresh()
}

// WithTheme sets the chrome theme.
func (m *Model) WithTheme(theme Theme) {
	m.theme = theme
}

// WithEditorTheme sets the text area theme.
func (m *Model) WithEditorTheme(theme *core.Theme) {
	m.editorTheme = theme
	m.refresh()
}

// WithKeyMap replaces the default keybindings.
func (m *Model) WithKeyMap(keys KeyMap) {
	m.keys = keys
}

// WithClipboard replaces the system clipboard used by yank.
func (m *Model) WithClipboard(clipboard core.Clipboard) {
	m.clipboard = clipboard
}

// SetLanguage enables chroma highlighting for language with the given
// chroma style. An empty language disables highlighting.
//
// For a full list of available themes, see: https://github.com/alecthomas/chroma/blob/master/styles
func (m *Model) SetLanguage(language string, theme string) {
	if language == "" {
		m.WithSyntaxHighlighter(nil)
		return
	}
	m.WithSyntaxHighlighter(highlighter.New(language, theme))
}

// WithSyntaxHighlighter sets the parser used for highlighting.
func (m *Model) WithSyntaxHighlighter(parser core.Parser) {
	m.parser = parser
	m.doc.ClearTree()
	m.refresh()
}

// SetFileName sets the name shown in the status line.
func (m *Model) SetFileName(name string) {
	m.fileName = name
}

// SetTabWidth sets the column multiple Tab pads to in insert mode.
func (m *Model) SetTabWidth(width int) {
	m.tabWidth = max(width, 1)
}

// DispatchMessage allows setting a message to be displayed in the command line for a specified duration.
func (m *Model) DispatchMessage(message string, duration time.Duration) tea.Cmd {
	m.message = message
	m.err = nil

	return m.dispatchClearMsg(duration)
}

// DispatchError allows setting an error to be displayed in the command line for a specified duration.
func (m *Model) DispatchError(err error, duration time.Duration) tea.Cmd {
	m.err = err
	m.message = ""

	return m.dispatchClearMsg(duration)
}

// HideLineNumbers controls whether to show line numbers in the viewport.
func (m *Model) HideLineNumbers(hide bool) {
	m.showLineNumbers = !hide
	m.refresh()
}

// ShowTildeIndicator controls whether rows past the end of the buffer are marked with a tilde.
func (m *Model) ShowTildeIndicator(show bool) {
	m.showTildeIndicator = show
	m.refresh()
}

// HideStatusLine controls whether to show the status line at the bottom of the viewport.
func (m *Model) HideStatusLine(hide bool) {
	m.showStatusLine = !hide
	m.refresh()
}

// ShowHelp controls whether the key help line is shown.
func (m *Model) ShowHelp(show bool) {
	m.showHelp = show
	m.refresh()
}

// ScrollWithMouse controls whether the mouse wheel scrolls the view.
func (m *Model) ScrollWithMouse(enabled bool) {
	m.scrollMouse = enabled
}

// SetPlaceholder sets the text shown while the buffer is empty.
func (m *Model) SetPlaceholder(placeholder string) {
	m.placeholder = placeholder
	m.refresh()
}

// GetSavedContent returns the content as of the last save.
func (m *Model) GetSavedContent() string {
	return m.doc.SavedContent()
}

// GetCurrentContent returns the current content of the editor buffer.
func (m *Model) GetCurrentContent() string {
	return m.doc.Content()
}

// HasChanges checks if the editor has unsaved changes
func (m *Model) HasChanges() bool {
	return m.doc.IsModified()
}

// Document returns the underlying document.
func (m *Model) Document() *core.Document {
	return m.doc
}

// Focus sets the editor to focused state.
func (m *Model) Focus() {
	m.isFocused = true
}

// Blur sets the editor to unfocused state.
func (m *Model) Blur() {
	m.isFocused = false
}

// IsFocused returns whether the editor is currently focused.
func (m *Model) IsFocused() bool {
	return m.isFocused
}

// IsCommandMode returns whether the command line has focus.
func (m *Model) IsCommandMode() bool {
	return m.commandLine.Focused()
}

func (m *Model) SetCursorMode(mode CursorMode) {
	m.cursorMode = mode
	m.cursorVisible = true
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.listenForEditorUpdate(), m.CursorBlink())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.IsFocused() {
			break
		}

		cmds = append(cmds, m.handleKey(msg))

		m.cursorVisible = true
		if m.cursorBlinkContext != nil && m.cursorBlinkContext.cancel != nil {
			m.cursorBlinkContext.cancel()
		}

		if m.cursorMode == CursorBlink {
			cmds = append(cmds, m.restartBlinkCycleCmd())
		}

	case tea.MouseMsg:
		if !m.IsFocused() || !m.scrollMouse || msg.Action != tea.MouseActionPress {
			break
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.doc.ScrollUp()
			m.doc.MoveToView()
		case tea.MouseButtonWheelDown:
			m.doc.ScrollDown()
			m.doc.MoveToView()
		}

	case signalMsg:
		cmds = append(cmds, m.handleSignal(msg.signal), m.listenForEditorUpdate())

	case ErrorMsg:
		cmds = append(cmds, m.DispatchError(msg.Error, messageDuration))

	case QuitMsg:
		return m, tea.Quit

	case clearMsg:
		m.message = ""
		m.err = nil
		m.clearMsgCancel = nil

	case clearYankMsg:
		m.yanked = false
		if m.doc.IsSelectMode() {
			m.doc.EnterNormal()
		}

	case cursorBlinkMsg:
		if m.isFocused && m.cursorMode == CursorBlink {
			m.cursorVisible = !m.cursorVisible
			cmds = append(cmds, m.CursorBlink())
		} else {
			m.cursorVisible = m.isFocused
		}

	case resumeBlinkCycleMsg:
		if m.isFocused && m.cursorMode == CursorBlink {
			m.cursorVisible = true
			cmds = append(cmds, m.CursorBlink())
		}
	}

	m.refresh()

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.commandLine.Focused() {
		return m.handleCommandKey(msg)
	}

	if key.Matches(msg, m.keys.Escape) {
		m.doc.EnterNormal()
		m.err = nil
		m.message = ""
		return nil
	}

	if m.doc.IsInsertMode() {
		m.handleInsertKey(msg)
		return nil
	}

	return m.handleNormalKey(msg)
}

func (m *Model) handleInsertKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Newline):
		m.doc.Insert('\n')
	case key.Matches(msg, m.keys.Backspace):
		m.doc.RemoveBefore()
	case key.Matches(msg, m.keys.Tab):
		m.doc.InsertTab(m.tabWidth)
	case msg.Type == tea.KeySpace:
		m.doc.Insert(' ')
	case msg.Type == tea.KeyRunes:
		m.doc.InsertString(string(msg.Runes))
	case msg.Type == tea.KeyUp:
		m.doc.MoveUp()
	case msg.Type == tea.KeyDown:
		m.doc.MoveDown()
	case msg.Type == tea.KeyLeft:
		m.doc.MoveLeft()
	case msg.Type == tea.KeyRight:
		m.doc.MoveRight()
	default:
		return
	}

	m.doc.ScrollToCursor()
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Insert):
		m.doc.EnterInsert()
	case key.Matches(msg, m.keys.Select):
		m.doc.EnterSelect()
	case key.Matches(msg, m.keys.SelectLine):
		m.doc.EnterSelectLine()
	case key.Matches(msg, m.keys.Command):
		m.err = nil
		m.message = ""
		m.commandLine.Reset()
		return m.commandLine.Focus()
	case key.Matches(msg, m.keys.Remove):
		m.doc.Remove()
	case key.Matches(msg, m.keys.Yank):
		if err := m.doc.Yank(m.clipboard); err != nil {
			return errorCmd(err)
		}
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, m.keys.Left):
		m.doc.MoveLeft()
	case key.Matches(msg, m.keys.Right):
		m.doc.MoveRight()
	case key.Matches(msg, m.keys.Up):
		m.doc.MoveUp()
		m.doc.ScrollToCursor()
	case key.Matches(msg, m.keys.Down):
		m.doc.MoveDown()
		m.doc.ScrollToCursor()
	case key.Matches(msg, m.keys.NextWord):
		m.doc.MoveNextWord()
		m.doc.ScrollToCursor()
	case key.Matches(msg, m.keys.WordEnd):
		m.doc.MoveNextWordEnd()
		m.doc.ScrollToCursor()
	case key.Matches(msg, m.keys.PrevWord):
		m.doc.MovePrevWordStart()
		m.doc.ScrollToCursor()
	case key.Matches(msg, m.keys.LineStart):
		m.doc.MoveLineStart()
	case key.Matches(msg, m.keys.LineEnd):
		m.doc.MoveLineEnd()
	case key.Matches(msg, m.keys.ScrollUp):
		m.doc.ScrollUp()
		m.doc.MoveToView()
	case key.Matches(msg, m.keys.ScrollDown):
		m.doc.ScrollDown()
		m.doc.MoveToView()
	}

	return nil
}

func (m *Model) handleCommandKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.commandLine.Blur()
		m.commandLine.Reset()
		return nil

	case key.Matches(msg, m.keys.Newline):
		command := m.commandLine.Value()
		m.commandLine.Blur()
		m.commandLine.Reset()
		if err := m.doc.ExecuteCommand(command); err != nil {
			return errorCmd(err)
		}
		return nil

	case key.Matches(msg, m.keys.Backspace) && m.commandLine.Value() == "":
		m.commandLine.Blur()
		return nil
	}

	var cmd tea.Cmd
	m.commandLine, cmd = m.commandLine.Update(msg)
	return cmd
}

func errorCmd(err error) tea.Cmd {
	msg := ErrorMsg{Error: err}
	var editorErr *core.Error
	if errors.As(err, &editorErr) {
		msg.ID = editorErr.Id()
	}
	return func() tea.Msg {
		return msg
	}
}

// listenForEditorUpdate waits for the next document signal. Update re-arms
// it after each signal, so exactly one listener is pending at a time.
func (m *Model) listenForEditorUpdate() tea.Cmd {
	signals := m.doc.SignalChan()
	return func() tea.Msg {
		return signalMsg{signal: <-signals}
	}
}

func (m *Model) handleSignal(signal core.Signal) tea.Cmd {
	switch signal := signal.(type) {
	case core.MessageSignal:
		_, message := signal.Value()
		return m.DispatchMessage(message, messageDuration)

	case core.ErrorSignal:
		id, err := signal.Value()
		return func() tea.Msg {
			return ErrorMsg{ID: id, Error: err}
		}

	case core.YankSignal:
		content, totalLines, lineMode := signal.Value()
		message := core.YankMessage
		if lineMode {
			if totalLines == 1 {
				message = "1 line yanked"
			} else {
				message = fmt.Sprintf("%d lines yanked", totalLines)
			}
		}

		m.yanked = true
		return tea.Batch(
			m.DispatchMessage(message, messageDuration),
			m.dispatchClearYankMsg(),
			func() tea.Msg {
				return YankMsg{Content: content}
			},
		)

	case core.SaveSignal:
		content, path := signal.Value()
		quit := signal.QuitAfter()
		return func() tea.Msg {
			return SaveMsg{Path: path, Content: content, Quit: quit}
		}

	case core.QuitSignal:
		return func() tea.Msg {
			return QuitMsg{}
		}
	}

	return nil
}

// CursorBlink is the main command for the blinking cursor effect (toggling visibility)
func (m *Model) CursorBlink() tea.Cmd {
	if m.cursorMode != CursorBlink || !m.isFocused {
		m.cursorVisible = m.isFocused
		return nil
	}

	if m.cursorBlinkContext != nil && m.cursorBlinkContext.cancel != nil {
		m.cursorBlinkContext.cancel()
	}

	ctx, cancel := context.WithTimeout(m.cursorBlinkContext.ctx, cursorBlinkInterval)
	m.cursorBlinkContext.cancel = cancel

	return func() tea.Msg {
		defer cancel()
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			return cursorBlinkMsg{}
		}
		return cursorBlinkCanceledMsg{}
	}
}

// restartBlinkCycleCmd is used after user activity to delay the resumption of blinking.
func (m *Model) restartBlinkCycleCmd() tea.Cmd {
	if m.cursorMode != CursorBlink || !m.isFocused {
		m.cursorVisible = m.isFocused
		return nil
	}

	return tea.Tick(cursorActivityResetDelay, func(t time.Time) tea.Msg {
		return resumeBlinkCycleMsg{}
	})
}
