package models

import "time"

type Chat struct {
	ID                 string     `gorm:"primaryKey;size:36" json:"id"`
	Type               string     `gorm:"size:16" json:"type"`
	Title              string     `json:"title,omitempty"`
	PhotoURL           string     `json:"photoUrl,omitempty"`
	LastMessageAt      *time.Time `json:"lastMessageAt,omitempty"`
	LastMessagePreview string     `json:"lastMessagePreview,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

type ChatMember struct {
	ChatID string `gorm:"primaryKey;size:36" json:"chatId"`
	UserID string `gorm:"primaryKey;size:36;index" json:"userId"`
}
