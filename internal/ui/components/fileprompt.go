// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"

	"github.com/jeranaias/abel-tui/internal/ui/styles"
	"github.com/jeranaias/abel-tui/internal/util"
)

// =============================================================================
// FILE PROMPT COMPONENT
// =============================================================================

// FilePrompt asks for the path of a file to attach.
type FilePrompt struct {
	input  textinput.Model
	err    string
	width  int
	height int
	theme  *styles.Theme
}

// NewFilePrompt creates a FilePrompt.
func NewFilePrompt(theme *styles.Theme) *FilePrompt {
	ti := textinput.New()
	ti.Placeholder = "path/to/file"
	ti.Prompt = "Attach: "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(styles.Amber).Bold(true)

	return &FilePrompt{input: ti, width: 80, height: 20, theme: theme}
}

// Open resets and focuses the prompt.
func (f *FilePrompt) Open() tea.Cmd {
	f.input.Reset()
	f.err = ""
	return f.input.Focus()
}

// SetSize sets the space available to the prompt.
func (f *FilePrompt) SetSize(width, height int) {
	f.width = width
	f.height = height
	f.input.Width = maxInt(10, minInt(width-16, 60))
}

// Error returns the last validation error shown.
func (f *FilePrompt) Error() string {
	return f.err
}

// HandleKey processes a key. done is true when the prompt should close;
// path is non-empty when a file was chosen.
func (f *FilePrompt) HandleKey(msg tea.KeyMsg) (path string, done bool, cmd tea.Cmd) {
	switch msg.String() {
	case "esc":
		return "", true, nil
	case "enter":
		p, err := ResolveAttachment(f.input.Value())
		if err != nil {
			f.err = err.Error()
			return "", false, nil
		}
		return p, true, nil
	}
	f.input, cmd = f.input.Update(msg)
	return "", false, cmd
}

// ResolveAttachment checks that raw names a readable regular file and
// returns the expanded path.
func ResolveAttachment(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("enter a file path")
	}
	path, err := util.ExpandHome(raw)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", errors.Wrap(err, "cannot attach")
	}
	if info.IsDir() {
		return "", errors.Errorf("%s is a directory", raw)
	}
	return path, nil
}

// View renders the prompt centered in its area.
func (f *FilePrompt) View() string {
	boxWidth := minInt(f.width-4, 76)
	parts := []string{
		f.theme.DialogTitle.Render("Attach a file"),
		f.input.View(),
	}
	if f.err != "" {
		parts = append(parts, f.theme.StatusError.Render(f.err))
	}
	parts = append(parts, f.theme.DialogHelp.Render("enter attach  esc cancel"))

	box := f.theme.DialogBox.Width(boxWidth).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
	return lipgloss.Place(f.width, f.height, lipgloss.Center, lipgloss.Center, box)
}
