// Package command routes "/" prefixed input to chat management commands
// shared by the TUI and the Telegram transport.
package command

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ladobot/lado/internal/core"
)

type Router struct {
	commands map[string]core.Command
}

var _ core.CmdRouter = (*Router)(nil)

func New(commands []core.Command) *Router {
	c := &Router{
		commands: make(map[string]core.Command),
	}
	for _, cmd := range commands {
		c.commands[cmd.Name()] = cmd
	}
	return c
}

// Execute runs the command named by input. The bool reports whether the
// input was a command at all; plain messages fall through to the model.
func (c *Router) Execute(ctx context.Context, chatID int64, input string) (string, bool) {
	if !strings.HasPrefix(input, "/") {
		return "", false
	}

	parts := strings.Fields(input)
	name := strings.TrimPrefix(parts[0], "/")
	args := parts[1:]

	if name == "help" {
		return c.help(), true
	}

	cmd, ok := c.commands[name]
	if !ok {
		return fmt.Sprintf("Неизвестная команда: /%s", name), true
	}

	result, err := cmd.Execute(ctx, chatID, args)
	if err != nil {
		return fmt.Sprintf("Ошибка: %v", err), true
	}
	return result, true
}

func (c *Router) help() string {
	var sb strings.Builder
	sb.WriteString("Команды:\n")
	for _, cmd := range c.ListCommands() {
		sb.WriteString(fmt.Sprintf("  /%s — %s\n", cmd.Name(), cmd.Description()))
	}
	return sb.String()
}

func (c *Router) ListCommands() []core.Command {
	res := make([]core.Command, 0, len(c.commands))
	for _, cmd := range c.commands {
		res = append(res, cmd)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name() < res[j].Name() })
	return res
}
