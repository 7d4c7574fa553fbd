package models

import "time"

type TaskSubtask struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	TaskID    string     `gorm:"size:36;index" json:"taskId"`
	ChatID    string     `gorm:"size:36;index" json:"chatId"`
	CreatorID string     `gorm:"size:36;index" json:"creatorId"`
	Text      string     `json:"text"`
	Done      bool       `json:"done"`
	DoneAt    *time.Time `json:"doneAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
