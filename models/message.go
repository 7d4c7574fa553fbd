package models

import (
	"time"

	"github.com/Angelb777/done-backend/constants"
)

type Message struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	ChatID      string         `gorm:"size:36;index" json:"chatId"`
	SenderID    string         `gorm:"size:36;index" json:"senderId"`
	SenderName  string         `json:"senderName"`
	Type        string         `gorm:"size:16" json:"type"`
	Text        string         `json:"text,omitempty"`
	Attachments AttachmentList `gorm:"type:text" json:"attachments"`

	// Scheduling: a scheduled message has no publishedAt until the sweep
	// publishes it.
	IsScheduled  bool       `gorm:"index" json:"isScheduled"`
	ScheduledFor *time.Time `gorm:"index" json:"scheduledFor,omitempty"`
	PublishedAt  *time.Time `gorm:"index" json:"publishedAt,omitempty"`

	// Link to the task spawned by a TASK message. Set once, never reassigned.
	TaskID *string `gorm:"size:36" json:"taskId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Preview is the short text shown as the chat's last-message line.
func (m *Message) Preview() string {
	if m.Type == constants.MessageTypeTask {
		if m.Text != "" {
			return "🧩 " + m.Text
		}
		return "🧩 Tarea"
	}
	if m.Text != "" {
		return m.Text
	}
	return "Mensaje"
}
