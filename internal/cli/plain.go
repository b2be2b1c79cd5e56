// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jeranaias/abel-tui/internal/model"
	"github.com/jeranaias/abel-tui/internal/session"
	"github.com/jeranaias/abel-tui/internal/ui/components"
)

// =============================================================================
// PLAIN REPL
// =============================================================================

// Plain is a line-oriented chat session over a session.Manager.
type Plain struct {
	mgr    *session.Manager
	in     Prompter
	out    io.Writer
	logger zerolog.Logger
	now    func() time.Time

	md      *components.MarkdownRenderer
	mdStyle string
	width   int

	attachment string
	exportDir  string
}

// PlainOption configures a Plain session.
type PlainOption func(*Plain)

// WithPlainLogger sets the logger.
func WithPlainLogger(logger zerolog.Logger) PlainOption {
	return func(p *Plain) {
		p.logger = logger
	}
}

// WithMarkdownStyle renders replies as Markdown with the named glamour
// style. Without it replies are printed as-is.
func WithMarkdownStyle(style string) PlainOption {
	return func(p *Plain) {
		p.mdStyle = style
	}
}

// WithWidth sets the wrap width.
func WithWidth(width int) PlainOption {
	return func(p *Plain) {
		if width > 0 {
			p.width = width
		}
	}
}

// WithExportDir sets where /export writes files.
func WithExportDir(dir string) PlainOption {
	return func(p *Plain) {
		p.exportDir = dir
	}
}

// WithPlainClock replaces time.Now for history labels.
func WithPlainClock(now func() time.Time) PlainOption {
	return func(p *Plain) {
		p.now = now
	}
}

// NewPlain creates a REPL reading from in and writing to out.
func NewPlain(mgr *session.Manager, in Prompter, out io.Writer, opts ...PlainOption) *Plain {
	p := &Plain{
		mgr:    mgr,
		in:     in,
		out:    out,
		logger: zerolog.Nop(),
		now:    time.Now,
		md:     components.NewMarkdownRenderer(),
		width:  DefaultTerminalWidth,

		exportDir: ".",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run prints the banner and reads lines until the user quits or input ends.
func (p *Plain) Run(ctx context.Context) error {
	p.logger.Info().Msg("plain session started")
	p.printWelcome()

	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := p.in.Prompt(p.prompt())
		if err != nil {
			if isEndOfInput(err) {
				fmt.Fprintln(p.out)
				return nil
			}
			return err
		}

		quit, err := p.Handle(ctx, line)
		if err != nil {
			p.logger.Debug().Err(err).Msg("input rejected")
			fmt.Fprintln(p.out, ErrorStyle.Render("Error: ")+err.Error())
		}
		if quit {
			return nil
		}
	}
}

func (p *Plain) prompt() string {
	if p.attachment != "" {
		return fmt.Sprintf("you [%s]> ", p.attachment)
	}
	return "you> "
}

func (p *Plain) printWelcome() {
	title := "no conversation"
	if conv, ok := p.mgr.Active(); ok {
		title = conv.Title
	}
	fmt.Fprintln(p.out, WelcomeStyle.Render(components.Brand)+" "+InfoStyle.Render("- "+title))
	fmt.Fprintln(p.out, InfoStyle.Render("Type a message, or /help for commands."))
	fmt.Fprintln(p.out)
}

// Handle processes one input line and reports whether the session should
// end.
func (p *Plain) Handle(ctx context.Context, line string) (bool, error) {
	text := strings.TrimSpace(line)
	if strings.HasPrefix(text, "/") {
		return p.command(text)
	}
	if text == "" && p.attachment == "" {
		return false, nil
	}
	return false, p.send(ctx, text)
}

// =============================================================================
// SENDING
// =============================================================================

func (p *Plain) send(ctx context.Context, text string) error {
	id := p.mgr.Snapshot().ActiveID

	var file *session.Attachment
	if p.attachment != "" {
		file = &session.Attachment{Name: p.attachment}
	}

	if id != "" {
		fmt.Fprintln(p.out, InfoStyle.Render(components.TypingText))
	}
	if err := p.mgr.SendMessage(ctx, id, text, file); err != nil {
		return err
	}
	p.attachment = ""

	if id == "" {
		conv, _ := p.mgr.Active()
		fmt.Fprintln(p.out, InfoStyle.Render("Started "+conv.Title))
		return nil
	}

	snap := p.mgr.Snapshot()
	if i := model.FindConversation(snap.Conversations, id); i >= 0 {
		if reply, ok := snap.Conversations[i].LastAssistantMessage(); ok {
			p.printMessage(reply)
		}
	}
	return nil
}

func (p *Plain) printMessage(msg model.Message) {
	if msg.IsUser {
		fmt.Fprintln(p.out, UserStyle.Render(components.UserLabel+":")+" "+msg.Text)
		return
	}
	body := msg.Text
	if p.mdStyle != "" {
		body = p.md.Render(msg.Text, p.mdStyle, p.width)
	}
	fmt.Fprintln(p.out, AssistantStyle.Render(components.AssistantLabel+":"))
	fmt.Fprintln(p.out, body)
	fmt.Fprintln(p.out)
}

func (p *Plain) printTranscript() {
	conv, ok := p.mgr.Active()
	if !ok {
		fmt.Fprintln(p.out, InfoStyle.Render("No active conversation."))
		return
	}
	fmt.Fprintln(p.out, HeaderStyle.Render(conv.Title))
	if len(conv.Messages) == 0 {
		fmt.Fprintln(p.out, InfoStyle.Render(components.EmptyConversationText))
		return
	}
	for _, msg := range conv.Messages {
		p.printMessage(msg)
	}
}

// =============================================================================
// COMMANDS
// =============================================================================

// plainCommands lists the REPL commands for /help.
var plainCommands = []struct {
	name string
	desc string
}{
	{"/new", "start a new conversation"},
	{"/history", "list past conversations"},
	{"/open N", "switch to conversation N"},
	{"/show", "print the active conversation"},
	{"/delete N", "delete conversation N"},
	{"/clear", "delete all conversations"},
	{"/attach PATH", "attach a file to the next message"},
	{"/detach", "remove the attachment"},
	{"/export [md|json]", "save the active conversation to a file"},
	{"/quit", "exit"},
}

func (p *Plain) command(text string) (bool, error) {
	name, arg, _ := strings.Cut(text, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "/help", "/h", "/?":
		p.printHelp()

	case "/quit", "/q", "/exit":
		return true, nil

	case "/new", "/n":
		conv := p.mgr.CreateConversation("")
		fmt.Fprintln(p.out, InfoStyle.Render("Started "+conv.Title))

	case "/history", "/hist":
		fmt.Fprint(p.out, FormatHistory(p.mgr.History(p.now()), p.width))

	case "/open", "/o":
		id, err := RowID(p.mgr.History(p.now()), arg)
		if err != nil {
			return false, err
		}
		p.mgr.SelectConversation(id)
		p.printTranscript()

	case "/show":
		p.printTranscript()

	case "/delete", "/d":
		id, err := RowID(p.mgr.History(p.now()), arg)
		if err != nil {
			return false, err
		}
		if !p.confirm(ConfirmDeleteQuestion) {
			fmt.Fprintln(p.out, InfoStyle.Render("Cancelled."))
			return false, nil
		}
		if p.mgr.DeleteConversation(id) {
			fmt.Fprintln(p.out, InfoStyle.Render("Deleted."))
		}

	case "/clear":
		if !p.confirm(ConfirmDeleteAllQuestion) {
			fmt.Fprintln(p.out, InfoStyle.Render("Cancelled."))
			return false, nil
		}
		if err := p.mgr.ClearAll(); err != nil {
			return false, err
		}
		fmt.Fprintln(p.out, InfoStyle.Render("All conversations deleted."))

	case "/attach", "/a":
		path, err := components.ResolveAttachment(arg)
		if err != nil {
			return false, err
		}
		p.attachment = filepath.Base(path)
		fmt.Fprintln(p.out, InfoStyle.Render("Attached "+p.attachment))

	case "/detach":
		p.attachment = ""

	case "/export":
		conv, ok := p.mgr.Active()
		if !ok {
			return false, errors.New("no active conversation")
		}
		path, err := ExportConversation(conv, arg, p.exportDir, p.now)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(p.out, InfoStyle.Render("Saved "+path))

	default:
		return false, errors.Errorf("unknown command %s (try /help)", name)
	}

	return false, nil
}

func (p *Plain) printHelp() {
	for _, c := range plainCommands {
		fmt.Fprintf(p.out, "  %s  %s\n", CommandStyle.Render(fmt.Sprintf("%-17s", c.name)), InfoStyle.Render(c.desc))
	}
}

// confirm asks question on the REPL's own input. Read errors count as no.
func (p *Plain) confirm(question string) bool {
	answer, err := p.in.Prompt(question + " [y/N]: ")
	if err != nil {
		return false
	}
	return IsYes(answer)
}
