package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	editor "github.com/ionut-t/ropedit/adapter-bubbletea"
	"github.com/ionut-t/ropedit/core"
	"github.com/ionut-t/ropedit/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nextSignal(t *testing.T, m app) core.Signal {
	t.Helper()
	select {
	case signal := <-m.editor.Document().SignalChan():
		return signal
	default:
		require.FailNow(t, "no signal dispatched")
		return nil
	}
}

func TestNewApp_LoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n"), 0o600))

	m, err := newApp(config.Defaults(), path)
	require.NoError(t, err)

	assert.Equal(t, "package main\n", m.editor.GetCurrentContent())
	assert.False(t, m.editor.HasChanges())
	assert.Equal(t, "go", m.language, "go files use the tree-sitter grammar")
}

func TestNewApp_MissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.rs")

	m, err := newApp(config.Defaults(), path)
	require.NoError(t, err)

	assert.Empty(t, m.editor.GetCurrentContent())
	assert.Equal(t, path, m.path)
	assert.Equal(t, "rust", strings.ToLower(m.language))
}

func TestNewApp_FallsBackToConfiguredLanguage(t *testing.T) {
	cfg := config.Defaults()
	cfg.Language = "python"

	m, err := newApp(cfg, "")
	require.NoError(t, err)
	assert.Equal(t, "python", strings.ToLower(m.language))
}

func TestNewApp_ChromaTheme(t *testing.T) {
	cfg := config.Defaults()
	cfg.Theme = "monokai"

	m, err := newApp(cfg, "")
	require.NoError(t, err)
	assert.NotEmpty(t, m.View())
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")

	m, err := newApp(config.Defaults(), path)
	require.NoError(t, err)

	updated, cmd := m.Update(editor.SaveMsg{Content: "hello\n"})
	m = updated.(app)
	assert.Nil(t, cmd)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))

	signal, ok := nextSignal(t, m).(core.MessageSignal)
	require.True(t, ok)
	id, message := signal.Value()
	assert.Equal(t, core.ChangesSavedMessage, id)
	assert.Contains(t, message, "notes.txt")
}

func TestSave_MarksDocumentSavedAfterWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")

	m, err := newApp(config.Defaults(), path)
	require.NoError(t, err)
	doc := m.editor.Document()
	doc.InsertString("hello")
	require.True(t, m.editor.HasChanges())

	updated, _ := m.Update(editor.SaveMsg{Content: doc.Content()})
	m = updated.(app)
	nextSignal(t, m)

	assert.False(t, m.editor.HasChanges())
}

func TestSave_FailedWriteKeepsChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "file.txt")

	m, err := newApp(config.Defaults(), path)
	require.NoError(t, err)
	doc := m.editor.Document()
	doc.InsertString("hello")

	updated, cmd := m.Update(editor.SaveMsg{Content: doc.Content(), Quit: true})
	m = updated.(app)
	assert.Nil(t, cmd, "a failed write must not quit")
	assert.IsType(t, core.ErrorSignal{}, nextSignal(t, m))

	assert.True(t, m.editor.HasChanges())
	err = doc.ExecuteCommand("q")
	assert.ErrorIs(t, err, core.ErrUnsavedChanges)
}

func TestSave_QuitAfterWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")

	m, err := newApp(config.Defaults(), path)
	require.NoError(t, err)

	_, cmd := m.Update(editor.SaveMsg{Content: "bye", Quit: true})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "bye", string(data))
}

func TestSave_NamedPathBecomesCurrentFile(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.txt")
	second := filepath.Join(dir, "second.txt")

	m, err := newApp(config.Defaults(), first)
	require.NoError(t, err)

	updated, _ := m.Update(editor.SaveMsg{Path: second, Content: "a"})
	m = updated.(app)
	nextSignal(t, m)
	assert.Equal(t, second, m.path)

	updated, _ = m.Update(editor.SaveMsg{Content: "b"})
	m = updated.(app)
	nextSignal(t, m)

	data, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))

	_, err = os.Stat(first)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSave_WithoutFileName(t *testing.T) {
	m, err := newApp(config.Defaults(), "")
	require.NoError(t, err)

	updated, _ := m.Update(editor.SaveMsg{Content: "x"})
	m = updated.(app)

	signal, ok := nextSignal(t, m).(core.ErrorSignal)
	require.True(t, ok)
	id, err := signal.Value()
	assert.Equal(t, core.ErrFailedToSaveId, id)
	assert.ErrorIs(t, err, core.ErrNoFileName)
}

func TestSave_WriteFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "file.txt")

	m, err := newApp(config.Defaults(), path)
	require.NoError(t, err)

	updated, _ := m.Update(editor.SaveMsg{Content: "x"})
	m = updated.(app)

	signal, ok := nextSignal(t, m).(core.ErrorSignal)
	require.True(t, ok)
	id, _ := signal.Value()
	assert.Equal(t, core.ErrFailedToSaveId, id)
}

func TestQuitMessages(t *testing.T) {
	m, err := newApp(config.Defaults(), "")
	require.NoError(t, err)

	_, cmd := m.Update(editor.QuitMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWindowSize(t *testing.T) {
	m, err := newApp(config.Defaults(), "")
	require.NoError(t, err)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 6})
	m = updated.(app)

	assert.Len(t, strings.Split(m.View(), "\n"), 6)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	path, err := expandHome("~/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "notes.txt"), path)

	path, err = expandHome("notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", path)
}
