// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/jeranaias/abel-tui/internal/session"
)

// Run starts the full-screen program and blocks until it exits. Manager
// notifications are forwarded into the event loop as StateChangedMsg.
func Run(ctx context.Context, m Model, mgr *session.Manager) error {
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	// Send blocks until the loop reads the message, and the manager may
	// notify from inside Update, so forward from a new goroutine.
	unsubscribe := mgr.Subscribe(func(snap session.Snapshot) {
		go p.Send(StateChangedMsg{Snapshot: snap})
	})
	defer unsubscribe()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
