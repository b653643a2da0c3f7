package conversation

import (
	"time"

	"github.com/google/uuid"
)

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser    Sender = "user"
	SenderChatbot Sender = "chatbot"
)

// Message is one entry of the transcript.
type Message struct {
	ID        string
	Sender    Sender
	Text      string
	CreatedAt time.Time
}

func newMessage(sender Sender, text string, now time.Time) Message {
	return Message{
		ID:        uuid.NewString(),
		Sender:    sender,
		Text:      text,
		CreatedAt: now,
	}
}

// IsUser reports whether the user authored the message.
func (m Message) IsUser() bool {
	return m.Sender == SenderUser
}
