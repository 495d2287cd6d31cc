package models

import "strings"

// CommandType enumerates the ledger queries the manager can send over WhatsApp.
type CommandType string

const (
	CommandSummary   CommandType = "summary"
	CommandRooms     CommandType = "rooms"
	CommandAvailable CommandType = "available"
	CommandHelp      CommandType = "help"
	CommandUnknown   CommandType = "unknown"
)

// Command represents a parsed manager query extracted from WhatsApp text.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// ParseCommand derives a Command from free-form text. Only the command word
// is case-insensitive; arguments keep their case since room names do.
func ParseCommand(message string) Command {
	cmd := Command{Type: CommandUnknown, Raw: message}

	tokens := strings.Fields(message)
	if len(tokens) == 0 {
		return cmd
	}

	head := strings.ToLower(strings.TrimPrefix(tokens[0], "/"))
	switch CommandType(head) {
	case CommandSummary, CommandRooms, CommandAvailable, CommandHelp:
		cmd.Type = CommandType(head)
	}

	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}
	return cmd
}
