package domain

import "time"

type Message struct {
	ID               uint      `json:"message_id"`
	FestivalID       uint      `json:"festival_id"`
	UserFrom         uint      `json:"user_from"`
	UserFromUsername string    `json:"user_from_username"`
	UserFromRole     string    `json:"user_from_role"`
	UserTo           uint      `json:"user_to"`
	Msg              string    `json:"msg"`
	IsRead           bool      `json:"is_read"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewMessages stamps a message from sender to every recipient.
func NewMessages(sender User, festivalID uint, recipients []uint, text string) []Message {
	messages := make([]Message, 0, len(recipients))
	for _, to := range recipients {
		messages = append(messages, Message{
			FestivalID:       festivalID,
			UserFrom:         sender.ID,
			UserFromUsername: sender.Username,
			UserFromRole:     sender.SenderRole(),
			UserTo:           to,
			Msg:              text,
		})
	}

	return messages
}
