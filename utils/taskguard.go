package utils

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Angelb777/done-backend/models"
)

// IsChatMember checks membership of a single user in a chat. A missing chat
// reports gorm.ErrRecordNotFound so callers can answer 404 instead of 403.
func IsChatMember(db *gorm.DB, chatID, userID string) (bool, error) {
	var chat models.Chat
	if err := db.Select("id").First(&chat, "id = ?", chatID).Error; err != nil {
		return false, err
	}
	var count int64
	err := db.Model(&models.ChatMember{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ChatMemberIDs returns the member ids of a chat.
func ChatMemberIDs(db *gorm.DB, chatID string) ([]string, error) {
	var chat models.Chat
	if err := db.Select("id").First(&chat, "id = ?", chatID).Error; err != nil {
		return nil, err
	}
	var ids []string
	err := db.Model(&models.ChatMember{}).
		Where("chat_id = ?", chatID).
		Order("user_id").
		Pluck("user_id", &ids).Error
	return ids, err
}

// NonMembers returns the subset of ids that are not members of the chat.
func NonMembers(db *gorm.DB, chatID string, ids []string) ([]string, error) {
	members, err := ChatMemberIDs(db, chatID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(members))
	for _, m := range members {
		set[m] = true
	}
	var bad []string
	for _, id := range ids {
		if !set[id] {
			bad = append(bad, id)
		}
	}
	return bad, nil
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
