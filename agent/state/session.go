package state

import (
	"strings"
	"time"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one entry in a session's append-only conversation log.
type Turn struct {
	Role Role      `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

func UserTurn(text string, now time.Time) Turn {
	return Turn{Role: RoleUser, Text: text, At: now.UTC()}
}

func AssistantTurn(text string, now time.Time) Turn {
	return Turn{Role: RoleAssistant, Text: text, At: now.UTC()}
}

// Transcript renders a turn log as the chat_history block fed into prompts.
func Transcript(turns []Turn) string {
	if len(turns) == 0 {
		return ""
	}
	var b strings.Builder
	for i, t := range turns {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(t.Role))
		b.WriteString(": ")
		b.WriteString(t.Text)
	}
	return b.String()
}
