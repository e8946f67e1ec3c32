package command

import (
	"github.com/ladobot/lado/internal/core"
)

func NewCommands(
	chats core.ChatRepository,
	contexts core.ContextMemoryRepository,
	provider ModelSwitcher,
) []core.Command {
	return []core.Command{
		NewNewChatCommand(chats),
		NewChatsCommand(chats),
		NewSwitchCommand(chats),
		NewClearCommand(chats),
		NewDeleteCommand(chats),
		NewForgetCommand(contexts),
		NewModelCommand(provider),
	}
}
