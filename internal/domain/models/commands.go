package models

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CommandType enumerates supported chat command categories.
type CommandType string

const (
	CommandCalc    CommandType = "calc"
	CommandCatalog CommandType = "catalog"
	CommandHelp    CommandType = "help"
	CommandUnknown CommandType = "unknown"
)

// Command represents a parsed instruction extracted from a chat message.
type Command struct {
	Type CommandType
	Raw  string
	// Args keeps the original case: reagent names are case-sensitive.
	Args string
}

// ParseCommand derives a Command instance from free-form text messages.
func ParseCommand(message string) Command {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return Command{Type: CommandUnknown, Raw: message}
	}

	head := trimmed
	rest := ""
	if idx := strings.IndexFunc(trimmed, unicode.IsSpace); idx >= 0 {
		head = trimmed[:idx]
		rest = strings.TrimSpace(trimmed[idx:])
	}

	cmd := Command{Raw: message, Args: rest}
	switch strings.ToLower(strings.TrimPrefix(head, "/")) {
	case string(CommandCalc):
		cmd.Type = CommandCalc
	case string(CommandCatalog):
		cmd.Type = CommandCatalog
	case string(CommandHelp):
		cmd.Type = CommandHelp
	default:
		cmd.Type = CommandUnknown
	}

	return cmd
}

// SplitCalcArgs separates "<volume>: <recipe>" arguments. Both the ASCII and
// the full-width colon are accepted.
func SplitCalcArgs(args string) (volume, formula string, ok bool) {
	idx := strings.IndexAny(args, ":：")
	if idx < 0 {
		return "", "", false
	}
	volume = strings.TrimSpace(args[:idx])
	_, size := utf8.DecodeRuneInString(args[idx:])
	formula = strings.TrimSpace(args[idx+size:])
	return volume, formula, volume != "" && formula != ""
}
