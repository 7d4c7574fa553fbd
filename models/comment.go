package models

import "time"

// TaskComment is append-only: no edit or delete is exposed, it only goes away
// when its task is deleted.
type TaskComment struct {
	ID          string         `gorm:"primaryKey;size:36" json:"id"`
	TaskID      string         `gorm:"size:36;index" json:"taskId"`
	ChatID      string         `gorm:"size:36;index" json:"chatId"`
	SenderID    string         `gorm:"size:36;index" json:"senderId"`
	Text        string         `json:"text"`
	Attachments AttachmentList `gorm:"type:text" json:"attachments"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}
