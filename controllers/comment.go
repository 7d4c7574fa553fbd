package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Angelb777/done-backend/middleware"
	"github.com/Angelb777/done-backend/models"
	"github.com/Angelb777/done-backend/utils"
)

type CommentController struct {
	DB *gorm.DB
}

// ListComments pages backwards with ?limit= and ?before=RFC3339. Posting and
// reading comments only requires chat membership, not edit permission.
func (cc *CommentController) ListComments(c *gin.Context) {
	userID := middleware.UserID(c)

	task, ok := loadTaskForActor(c, cc.DB, c.Param("taskId"), userID)
	if !ok {
		return
	}

	limit := 30
	if v := c.Query("limit"); v != "" {
		if n, err := parsePositiveInt(v); err == nil {
			if n > 100 {
				n = 100
			}
			limit = n
		}
	}

	q := cc.DB.Where("task_id = ?", task.ID)
	if v := c.Query("before"); v != "" {
		before, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid before"})
			return
		}
		q = q.Where("created_at < ?", before.UTC())
	}

	var comments []models.TaskComment
	if err := q.Order("created_at DESC").Limit(limit).Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	// Oldest first for rendering.
	for i, j := 0, len(comments)-1; i < j; i, j = i+1, j-1 {
		comments[i], comments[j] = comments[j], comments[i]
	}

	senderIDs := make([]string, 0, len(comments))
	for _, cm := range comments {
		senderIDs = append(senderIDs, cm.SenderID)
	}
	senders := loadUsers(cc.DB, senderIDs)

	out := make([]gin.H, 0, len(comments))
	for _, cm := range comments {
		out = append(out, gin.H{
			"id":          cm.ID,
			"taskId":      cm.TaskID,
			"chatId":      cm.ChatID,
			"text":        cm.Text,
			"attachments": cm.Attachments,
			"sender":      senders[cm.SenderID],
			"createdAt":   cm.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"comments": out})
}

// CreateComment accepts JSON {text, attachments[]} or a multipart form with
// a text field and files, which are stored and turned into attachment refs.
func (cc *CommentController) CreateComment(c *gin.Context) {
	userID := middleware.UserID(c)

	var text string
	var attachments []models.Attachment

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		form, err := c.MultipartForm()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		text = strings.TrimSpace(c.PostForm("text"))
		files := form.File["files"]
		if len(files) > 10 {
			files = files[:10]
		}
		attachments, err = utils.SaveUploadedFiles(c, files)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}
	} else {
		var input struct {
			Text        string              `json:"text"`
			Attachments []models.Attachment `json:"attachments"`
		}
		if err := c.BindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		text = strings.TrimSpace(input.Text)
		attachments = input.Attachments
	}

	if text == "" && len(attachments) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text or files required"})
		return
	}

	task, ok := loadTaskForActor(c, cc.DB, c.Param("taskId"), userID)
	if !ok {
		return
	}

	comment := models.TaskComment{
		ID:          models.NewID(),
		TaskID:      task.ID,
		ChatID:      task.ChatID,
		SenderID:    userID,
		Text:        text,
		Attachments: attachments,
	}
	if err := cc.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	senders := loadUsers(cc.DB, []string{userID})

	c.JSON(http.StatusOK, gin.H{
		"comment": gin.H{
			"id":          comment.ID,
			"taskId":      comment.TaskID,
			"chatId":      comment.ChatID,
			"text":        comment.Text,
			"attachments": comment.Attachments,
			"sender":      senders[userID],
			"createdAt":   comment.CreatedAt,
		},
	})
}
