package telegram

import (
	"strconv"
	"strings"
)

// Update is the subset of the Bot API update object the webhook reads.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

type Message struct {
	MessageID int64  `json:"message_id"`
	From      *User  `json:"from,omitempty"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text,omitempty"`
}

type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

type Chat struct {
	ID        int64  `json:"id"`
	Type      string `json:"type,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// IsStart reports whether the update carries the /start command, with or
// without a bot mention or deep-link payload.
func (u Update) IsStart() bool {
	if u.Message == nil {
		return false
	}
	fields := strings.Fields(u.Message.Text)
	if len(fields) == 0 {
		return false
	}
	cmd := fields[0]
	return cmd == "/start" || strings.HasPrefix(cmd, "/start@")
}

// ChatID returns the chat identifier as the string stored in settings.
func (u Update) ChatID() string {
	if u.Message == nil {
		return ""
	}
	return strconv.FormatInt(u.Message.Chat.ID, 10)
}

// SenderName prefers the first name, then the username.
func (u Update) SenderName() string {
	if u.Message == nil {
		return ""
	}
	if from := u.Message.From; from != nil {
		if from.FirstName != "" {
			return from.FirstName
		}
		if from.Username != "" {
			return from.Username
		}
	}
	if u.Message.Chat.FirstName != "" {
		return u.Message.Chat.FirstName
	}
	return u.Message.Chat.Username
}
