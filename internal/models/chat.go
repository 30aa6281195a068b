package models

import "time"

// Chat is a conversation about a single item between its owner and an
// interested renter. At most one chat exists per (item, initiator) pair.
type Chat struct {
	ID           string    `json:"id" yaml:"id"`
	ItemID       string    `json:"item_id" yaml:"item_id"`
	Participants []User    `json:"participants" yaml:"participants"`
	Messages     []Message `json:"messages" yaml:"messages"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
}

// HasParticipant reports whether the user is one of the two chat parties.
func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p.ID == userID {
			return true
		}
	}
	return false
}

type Message struct {
	ID        string    `json:"id" yaml:"id"`
	ChatID    string    `json:"chat_id" yaml:"chat_id"`
	Sender    User      `json:"sender" yaml:"sender"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Read      bool      `json:"read" yaml:"read"`
}
