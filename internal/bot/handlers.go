package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Reporter renders the league reports the bot serves.
type Reporter interface {
	ScoresReport() (string, error)
	StandingsReport() (string, error)
	TeamReport(query string) (string, error)
	PlayoffsReport() (string, error)
	NotesReport() (string, error)
}

type Handler struct {
	reporter Reporter
}

func NewHandler(reporter Reporter) *Handler {
	return &Handler{reporter: reporter}
}

type command struct {
	name        string
	usage       string
	description string
}

// commands backs both /help and the menu registered with Telegram.
var commands = []command{
	{name: "scores", description: "Latest week's scores"},
	{name: "standings", description: "Season standings"},
	{name: "team", usage: "<team>", description: "A team's roster and points"},
	{name: "playoffs", description: "Playoff bracket and placements"},
	{name: "notes", description: "Data notes from the last scoring run"},
}

func helpText() string {
	var sb strings.Builder
	sb.WriteString("Available commands:")
	for _, c := range commands {
		sb.WriteString("\n/" + c.name)
		if c.usage != "" {
			sb.WriteString(" " + c.usage)
		}
		sb.WriteString(" - " + c.description)
	}
	return sb.String()
}

func botCommands() []tgbotapi.BotCommand {
	out := make([]tgbotapi.BotCommand, len(commands))
	for i, c := range commands {
		out[i] = tgbotapi.BotCommand{Command: c.name, Description: c.description}
	}
	return out
}

func (h *Handler) HandleCommand(update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := strings.TrimSpace(update.Message.CommandArguments())
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome to the league autoscorer! Use /help to see available commands."
	case "help":
		msg.Text = helpText()
	case "scores":
		h.reply(&msg, "scores", h.reporter.ScoresReport)
	case "standings":
		h.reply(&msg, "standings", h.reporter.StandingsReport)
	case "playoffs":
		h.reply(&msg, "playoff picture", h.reporter.PlayoffsReport)
	case "notes":
		h.reply(&msg, "data notes", h.reporter.NotesReport)
	case "team":
		h.handleTeam(&msg, args)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) reply(msg *tgbotapi.MessageConfig, what string, report func() (string, error)) {
	text, err := report()
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching %s: %v", what, err)
		msg.ParseMode = ""
		return
	}
	msg.Text = text
}

func (h *Handler) handleTeam(msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a team name. Usage: /team <team name>"
		return
	}
	h.reply(msg, "team roster", func() (string, error) {
		return h.reporter.TeamReport(args)
	})
}
