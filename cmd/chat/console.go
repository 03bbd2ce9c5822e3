package main

import (
	"avatar-chat/domain/avatar"
	"avatar-chat/domain/chat"
	"avatar-chat/facade"
	"avatar-chat/screens"
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gookit/color"
	"github.com/samber/lo"
)

var catalog = []avatar.Avatar{
	{AvatarID: "zorg", Name: lo.ToPtr("Zorg"), CharacterOption: lo.ToPtr(avatar.Alien), CharacterAction: lo.ToPtr("exploring"), CharacterLocation: lo.ToPtr("space")},
	{AvatarID: "rex", Name: lo.ToPtr("Rex"), CharacterOption: lo.ToPtr(avatar.Dog), CharacterAction: lo.ToPtr("running"), CharacterLocation: lo.ToPtr("park")},
	{AvatarID: "mia", Name: lo.ToPtr("Mia"), CharacterOption: lo.ToPtr(avatar.Woman), CharacterAction: lo.ToPtr("drinking coffee"), CharacterLocation: lo.ToPtr("city")},
}

var (
	userStyle   = color.New(color.FgCyan, color.OpBold)
	avatarStyle = color.New(color.FgGreen)
	infoStyle   = color.New(color.FgGray)
	errorStyle  = color.New(color.FgRed)
)

// console is a line based front end: plain lines are messages, lines starting
// with a slash are commands.
type console struct {
	log        *slog.Logger
	interactor *facade.CoreInteractor
	in         *bufio.Scanner
	out        io.Writer
	screen     *screens.ChatScreen
	unwatch    context.CancelFunc
}

func newConsole(log *slog.Logger, interactor *facade.CoreInteractor, in io.Reader, out io.Writer) *console {
	return &console{log: log, interactor: interactor, in: bufio.NewScanner(in), out: out}
}

func (c *console) Run(ctx context.Context) error {
	defer c.close()
	c.help()
	lines := make(chan string)
	go func() {
		defer close(lines)
		for c.in.Scan() {
			lines <- c.in.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return c.in.Err()
			}
			if quit := c.handle(ctx, strings.TrimSpace(line)); quit {
				return nil
			}
		}
	}
}

func (c *console) handle(ctx context.Context, line string) bool {
	command, arg, _ := strings.Cut(line, " ")
	var err error
	switch command {
	case "":
	case "/quit":
		return true
	case "/help":
		c.help()
	case "/avatars":
		c.avatars()
	case "/chats":
		err = c.chats(ctx)
	case "/open":
		err = c.open(ctx, arg)
	case "/report":
		err = c.report(ctx)
	case "/delete":
		err = c.delete(ctx)
	default:
		err = c.send(ctx, line)
	}
	if err != nil {
		c.printf(errorStyle, "error: %v\n", err)
	}
	return false
}

func (c *console) help() {
	c.printf(infoStyle, "/avatars  /chats  /open <avatar>  /report  /delete  /quit\n")
}

func (c *console) avatars() {
	for _, a := range catalog {
		c.printf(infoStyle, "%-6s %s the %s, %s in the %s\n", a.AvatarID, *a.Name, *a.CharacterOption, *a.CharacterAction, *a.CharacterLocation)
	}
}

func (c *console) chats(ctx context.Context) error {
	state, err := screens.NewChats(c.log, c.interactor).Load(ctx)
	if err != nil {
		return err
	}
	row := screens.NewChatRow(c.interactor)
	for _, conversation := range state.Conversations {
		r, err := row.Load(ctx, conversation)
		if err != nil {
			return err
		}
		marker := " "
		if r.HasNewChat {
			marker = "*"
		}
		preview := ""
		if r.LastMessage != nil {
			preview = lo.FromPtr(r.LastMessage.Content)
		}
		c.printf(infoStyle, "%s %-6s %s  %s\n", marker, conversation.AvatarID, conversation.DateModified.Format("2006-01-02 15:04"), preview)
	}
	names := lo.Map(state.Recents, func(a avatar.Avatar, _ int) string { return a.AvatarID })
	c.printf(infoStyle, "recent: %s\n", strings.Join(names, ", "))
	return nil
}

func (c *console) open(ctx context.Context, avatarID string) error {
	a, ok := lo.Find(catalog, func(a avatar.Avatar) bool { return a.AvatarID == avatarID })
	if !ok {
		return fmt.Errorf("unknown avatar %q, see /avatars", avatarID)
	}
	c.stopWatching()
	screen := screens.NewChatScreen(c.log, c.interactor)
	if err := screen.Open(ctx, a); err != nil {
		return err
	}
	c.screen = screen
	c.printf(infoStyle, "talking to %s\n", *a.Name)
	c.watch(ctx)
	return nil
}

func (c *console) send(ctx context.Context, text string) error {
	if c.screen == nil {
		return fmt.Errorf("no conversation opened, use /open <avatar>")
	}
	watching := c.screen.Conversation() != nil
	if _, err := c.screen.Send(ctx, text); err != nil {
		return err
	}
	if !watching {
		c.watch(ctx)
	}
	return nil
}

func (c *console) report(ctx context.Context) error {
	if c.screen == nil {
		return fmt.Errorf("no conversation opened")
	}
	report, err := c.screen.Report(ctx)
	if err != nil {
		return err
	}
	c.printf(infoStyle, "reported (%s)\n", report.ID)
	return nil
}

func (c *console) delete(ctx context.Context) error {
	if c.screen == nil {
		return fmt.Errorf("no conversation opened")
	}
	c.stopWatching()
	if err := c.screen.Delete(ctx); err != nil {
		return err
	}
	c.printf(infoStyle, "conversation deleted\n")
	return nil
}

// watch prints every new message of the opened conversation.
func (c *console) watch(ctx context.Context) {
	if c.screen == nil || c.screen.Conversation() == nil {
		return
	}
	watchCtx, cancel := context.WithCancel(ctx)
	c.unwatch = cancel
	userID, _ := c.interactor.GetAuthID()
	printed := make(map[string]struct{})
	screen := c.screen
	go func() {
		err := screen.Watch(watchCtx, func(messages []chat.Message) {
			for _, m := range messages {
				if _, ok := printed[m.ID]; ok {
					continue
				}
				printed[m.ID] = struct{}{}
				style := avatarStyle
				if m.IsAuthoredBy(userID) {
					style = userStyle
				}
				c.printf(style, "%s: %s\n", lo.FromPtr(m.AuthorID), lo.FromPtr(m.Content))
			}
		})
		if err != nil {
			c.log.Warn("Watch stopped", "error", err)
		}
	}()
}

func (c *console) stopWatching() {
	if c.unwatch != nil {
		c.unwatch()
		c.unwatch = nil
	}
}

func (c *console) close() {
	c.stopWatching()
}

func (c *console) printf(style color.Style, format string, args ...any) {
	_, _ = fmt.Fprint(c.out, style.Sprintf(format, args...))
}
