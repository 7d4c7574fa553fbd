package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Angelb777/done-backend/constants"
	"github.com/Angelb777/done-backend/middleware"
	"github.com/Angelb777/done-backend/models"
	"github.com/Angelb777/done-backend/utils"
)

type MessageController struct {
	DB *gorm.DB
}

type taskPayload struct {
	Title       string              `json:"title"`
	Color       string              `json:"color"`
	DueDate     string              `json:"dueDate"`
	AssigneeIDs []string            `json:"assigneeIds"`
	Attachments []models.Attachment `json:"attachments"`
}

// SendMessage creates a NORMAL or TASK message. TASK messages spawn a task in
// a two-phase sequence: message first, then the task, then the back-link. If
// the task insert fails the message stays behind as an orphan TASK message;
// the window is kept as small as possible but not closed with a transaction.
func (mc *MessageController) SendMessage(c *gin.Context) {
	userID := middleware.UserID(c)

	var input struct {
		ChatID       string              `json:"chatId"`
		Type         string              `json:"type"`
		Text         string              `json:"text"`
		ScheduledFor *time.Time          `json:"scheduledFor"`
		Attachments  []models.Attachment `json:"attachments"`
		Task         *taskPayload        `json:"task"`
	}
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Type == "" {
		input.Type = constants.MessageTypeNormal
	}
	if !constants.IsMessageType(input.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message type"})
		return
	}

	member, err := utils.IsChatMember(mc.DB, input.ChatID, userID)
	if err != nil {
		if utils.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	var task *models.Task
	var assigneeIDs []string
	var dueDate *time.Time

	if input.Type == constants.MessageTypeTask {
		if input.Task == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "task payload required for TASK messages"})
			return
		}
		title := strings.TrimSpace(input.Task.Title)
		if title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "task title required"})
			return
		}
		color := input.Task.Color
		if color == "" {
			color = constants.DefaultTaskColor
		}
		if !constants.IsTaskColor(color) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid color"})
			return
		}
		if input.Task.DueDate != "" {
			t, err := time.Parse(time.RFC3339, input.Task.DueDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dueDate"})
				return
			}
			t = t.UTC()
			dueDate = &t
		}

		assigneeIDs, err = mc.resolveAssignees(input.ChatID, userID, input.Task.AssigneeIDs)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Message text mirrors the task title at creation time.
		input.Text = title

		task = &models.Task{
			ID:          models.NewID(),
			ChatID:      input.ChatID,
			CreatorID:   userID,
			Title:       title,
			Color:       color,
			AssigneeID:  assigneeIDs[0],
			DueDate:     dueDate,
			Status:      constants.TaskStatusPending,
			Attachments: input.Task.Attachments,
		}
	}

	var sender models.User
	if err := mc.DB.Select("id", "name", "email").First(&sender, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	senderName := sender.Name
	if senderName == "" {
		senderName = sender.Email
	}

	now := time.Now().UTC()
	scheduled := input.ScheduledFor != nil && input.ScheduledFor.After(now)

	msg := models.Message{
		ID:          models.NewID(),
		ChatID:      input.ChatID,
		SenderID:    userID,
		SenderName:  senderName,
		Type:        input.Type,
		Text:        input.Text,
		Attachments: input.Attachments,
		IsScheduled: scheduled,
	}
	if scheduled {
		s := input.ScheduledFor.UTC()
		msg.ScheduledFor = &s
	} else {
		msg.PublishedAt = &now
	}

	if err := mc.DB.Create(&msg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	if task != nil {
		task.MessageID = msg.ID
		if err := mc.DB.Create(task).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}
		if err := task.ReplaceAssignees(mc.DB, assigneeIDs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}
		if err := mc.DB.Model(&models.Message{}).Where("id = ?", msg.ID).
			Update("task_id", task.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}
		msg.TaskID = &task.ID
	}

	if !scheduled {
		mc.DB.Model(&models.Chat{}).Where("id = ?", input.ChatID).
			Updates(map[string]interface{}{
				"last_message_at":      msg.PublishedAt,
				"last_message_preview": msg.Preview(),
			})
	}

	resp := gin.H{"message": msg}
	if task != nil {
		resp["task"] = task
		resp["assigneeIds"] = assigneeIDs
	}
	c.JSON(http.StatusOK, resp)
}

// resolveAssignees applies the defaulting policy: explicit ids must all be
// chat members; with none given, a two-member chat defaults to the other
// member and a bigger chat to all members.
func (mc *MessageController) resolveAssignees(chatID, creatorID string, explicit []string) ([]string, error) {
	explicit = models.UniqueIDs(explicit)
	if len(explicit) > 0 {
		bad, err := utils.NonMembers(mc.DB, chatID, explicit)
		if err != nil {
			return nil, err
		}
		if len(bad) > 0 {
			return nil, errAssigneesNotMembers(bad)
		}
		return explicit, nil
	}

	members, err := utils.ChatMemberIDs(mc.DB, chatID)
	if err != nil {
		return nil, err
	}
	if len(members) == 2 {
		for _, id := range members {
			if id != creatorID {
				return []string{id}, nil
			}
		}
	}
	if len(members) == 0 {
		return []string{creatorID}, nil
	}
	return members, nil
}

func (mc *MessageController) GetMessages(c *gin.Context) {
	userID := middleware.UserID(c)
	chatID := c.Query("chatId")

	member, err := utils.IsChatMember(mc.DB, chatID, userID)
	if err != nil {
		if utils.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		if n, err := parsePositiveInt(v); err == nil && n <= 200 {
			limit = n
		}
	}

	var msgs []models.Message
	err = mc.DB.
		Where("chat_id = ? AND published_at IS NOT NULL", chatID).
		Order("published_at DESC").
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	// Oldest first for rendering.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}

	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}
