package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	editor "github.com/ionut-t/ropedit/adapter-bubbletea"
	"github.com/ionut-t/ropedit/adapter-bubbletea/highlighter"
	"github.com/ionut-t/ropedit/adapter-bubbletea/treesitter"
	"github.com/ionut-t/ropedit/core"
	"github.com/ionut-t/ropedit/internal/config"
)

// app hosts the editor and owns everything that touches the file system.
type app struct {
	editor   editor.Model
	path     string
	language string
}

func newApp(cfg config.Config, path string) (app, error) {
	content, err := os.ReadFile(path)
	if path != "" && err != nil && !errors.Is(err, fs.ErrNotExist) {
		return app{}, fmt.Errorf("reading %s: %w", path, err)
	}

	h := highlighter.ForFile(filepath.Base(path), cfg.Language, cfg.Theme)
	var parser core.Parser = h
	language := h.Language()
	if ts, err := treeSitterParser(path, cfg.Language); err == nil {
		parser, language = ts, ts.Language()
	} else {
		log.Printf("tree-sitter unavailable, using chroma: %v", err)
	}

	e := editor.New(80, 24)
	e.Focus()
	e.SetCursorMode(editor.CursorBlink)
	e.WithSyntaxHighlighter(parser)
	if cfg.Theme != config.BuiltinTheme {
		e.WithEditorTheme(h.Theme())
	}
	e.SetTabWidth(cfg.TabWidth)
	e.HideLineNumbers(!cfg.LineNumbers)
	e.ScrollWithMouse(cfg.ScrollMouse)
	e.ShowHelp(cfg.ShowHelp)
	e.ShowTildeIndicator(true)
	e.SetBytes(content)

	name := path
	if name == "" {
		name = "[No Name]"
		e.SetPlaceholder("Press i to start typing")
	}
	e.SetFileName(name)

	return app{editor: e, path: path, language: language}, nil
}

// treeSitterParser picks a grammar by file name, then by the configured
// language.
func treeSitterParser(path, language string) (*treesitter.Parser, error) {
	if path != "" {
		p, err := treesitter.ForFile(filepath.Base(path))
		if err == nil || language == "" {
			return p, err
		}
	}
	return treesitter.ForLanguage(language)
}

func (m app) Init() tea.Cmd {
	return m.editor.Init()
}

func (m app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.editor.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case editor.SaveMsg:
		return m, m.save(msg)

	case editor.QuitMsg:
		return m, tea.Quit
	}

	editorModel, cmd := m.editor.Update(msg)
	m.editor = editorModel.(editor.Model)

	return m, cmd
}

func (m app) View() string {
	return m.editor.View()
}

// save writes msg.Content to msg.Path, or to the opened file when the
// command named no path. A named path becomes the file for later writes.
// The document is marked saved, and a pending quit runs, only after the
// write succeeds.
func (m *app) save(msg editor.SaveMsg) tea.Cmd {
	doc := m.editor.Document()

	if msg.Path != "" {
		m.path = msg.Path
		m.editor.SetFileName(msg.Path)
	}
	if m.path == "" {
		doc.DispatchError(core.ErrFailedToSaveId, core.ErrNoFileName)
		return nil
	}

	target, err := expandHome(m.path)
	if err != nil {
		doc.DispatchError(core.ErrFailedToSaveId, err)
		return nil
	}

	if err := os.WriteFile(target, []byte(msg.Content), 0o644); err != nil {
		doc.DispatchError(core.ErrFailedToSaveId, err)
		return nil
	}

	doc.MarkSaved(msg.Content)
	doc.DispatchMessage(core.ChangesSavedMessage, fmt.Sprintf("%q written, %d bytes", m.path, len(msg.Content)))
	if msg.Quit {
		return tea.Quit
	}
	return nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[2:]), nil
}
