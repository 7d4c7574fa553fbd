package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Angelb777/done-backend/constants"
	"github.com/Angelb777/done-backend/middleware"
	"github.com/Angelb777/done-backend/models"
	"github.com/Angelb777/done-backend/utils"
)

type ChatController struct {
	DB *gorm.DB
}

func (cc *ChatController) CreateChat(c *gin.Context) {
	userID := middleware.UserID(c)

	var input struct {
		Type      string   `json:"type"`
		Title     string   `json:"title"`
		MemberIDs []string `json:"memberIds"`
	}
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch input.Type {
	case constants.ChatTypeDM, constants.ChatTypeGroup, constants.ChatTypePersonal:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat type"})
		return
	}

	// Creator is always a member.
	memberIDs := models.UniqueIDs(append([]string{userID}, input.MemberIDs...))

	var count int64
	if err := cc.DB.Model(&models.User{}).Where("id IN ?", memberIDs).Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if count != int64(len(memberIDs)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Some members do not exist"})
		return
	}

	chat := models.Chat{
		ID:    models.NewID(),
		Type:  input.Type,
		Title: input.Title,
	}

	err := cc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&chat).Error; err != nil {
			return err
		}
		rows := make([]models.ChatMember, 0, len(memberIDs))
		for _, id := range memberIDs {
			rows = append(rows, models.ChatMember{ChatID: chat.ID, UserID: id})
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"chat": chat, "memberIds": memberIDs})
}

func (cc *ChatController) GetChats(c *gin.Context) {
	userID := middleware.UserID(c)

	var chats []models.Chat
	err := cc.DB.
		Joins("JOIN chat_members cm ON cm.chat_id = chats.id").
		Where("cm.user_id = ?", userID).
		Order("last_message_at DESC").
		Find(&chats).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

func (cc *ChatController) GetChatMembers(c *gin.Context) {
	userID := middleware.UserID(c)
	chatID := c.Param("chatId")

	ok, err := utils.IsChatMember(cc.DB, chatID, userID)
	if err != nil {
		if utils.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	ids, err := utils.ChatMemberIDs(cc.DB, chatID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	var users []models.User
	if err := cc.DB.Where("id IN ?", ids).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	members := make([]models.PublicUser, 0, len(users))
	for _, u := range users {
		members = append(members, u.Public())
	}

	c.JSON(http.StatusOK, gin.H{"members": members})
}
