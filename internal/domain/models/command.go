package models

import (
	"strings"
	"unicode"
)

type CommandType string

const (
	CommandHelp         CommandType = "#help"
	CommandTimezone     CommandType = "#timezone"
	CommandAlarm        CommandType = "#alarm"
	CommandStrictAlarm  CommandType = "#alarm!"
	CommandList         CommandType = "#list"
	CommandDisalarm     CommandType = "#disalarm"
	CommandDisable      CommandType = "#disable"
	CommandEnable       CommandType = "#enable"
	CommandStrict       CommandType = "#strict"
	CommandNext         CommandType = "#next"
	CommandPurge        CommandType = "#purge"
	CommandSleep        CommandType = "#sleep"
	CommandSleepConfirm CommandType = "#sleep!"
	CommandUnknown      CommandType = "unknown"
)

type Command struct {
	Type      CommandType
	ChatID    int64
	UserID    int64
	MessageID int
	Args      string
}

// ParseCommand разбирает текст сообщения на имя команды и аргументы.
func ParseCommand(text string) (CommandType, string) {
	text = strings.TrimSpace(text)

	name := text
	args := ""

	if idx := strings.IndexFunc(text, unicode.IsSpace); idx >= 0 {
		name = text[:idx]
		args = strings.TrimSpace(text[idx+1:])
	}

	switch CommandType(name) {
	case CommandHelp, CommandTimezone, CommandAlarm, CommandStrictAlarm,
		CommandList, CommandDisalarm, CommandDisable, CommandEnable,
		CommandStrict, CommandNext, CommandPurge, CommandSleep, CommandSleepConfirm:
		return CommandType(name), args
	default:
		return CommandUnknown, args
	}
}
