package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Angelb777/done-backend/middleware"
	"github.com/Angelb777/done-backend/models"
)

type SubtaskController struct {
	DB *gorm.DB
}

func (sc *SubtaskController) ListSubtasks(c *gin.Context) {
	userID := middleware.UserID(c)

	task, ok := loadTaskForActor(c, sc.DB, c.Param("taskId"), userID)
	if !ok {
		return
	}

	var subtasks []models.TaskSubtask
	err := sc.DB.Where("task_id = ?", task.ID).
		Order("created_at ASC").
		Find(&subtasks).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subtasks": subtasks})
}

func (sc *SubtaskController) CreateSubtask(c *gin.Context) {
	userID := middleware.UserID(c)

	var input struct {
		Text string `json:"text"`
	}
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	text := strings.TrimSpace(input.Text)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text required"})
		return
	}

	task, ok := loadTaskForActor(c, sc.DB, c.Param("taskId"), userID)
	if !ok {
		return
	}
	if !requireEditPermission(c, sc.DB, &task, userID) {
		return
	}

	sub := models.TaskSubtask{
		ID:        models.NewID(),
		TaskID:    task.ID,
		ChatID:    task.ChatID,
		CreatorID: userID,
		Text:      text,
	}
	if err := sc.DB.Create(&sub).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subtask": sub})
}

func (sc *SubtaskController) ToggleSubtask(c *gin.Context) {
	userID := middleware.UserID(c)

	task, ok := loadTaskForActor(c, sc.DB, c.Param("taskId"), userID)
	if !ok {
		return
	}
	if !requireEditPermission(c, sc.DB, &task, userID) {
		return
	}

	var sub models.TaskSubtask
	err := sc.DB.First(&sub, "id = ? AND task_id = ?", c.Param("subtaskId"), task.ID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subtask not found"})
		return
	}

	sub.Done = !sub.Done
	if sub.Done {
		now := time.Now().UTC()
		sub.DoneAt = &now
	} else {
		sub.DoneAt = nil
	}

	err = sc.DB.Model(&models.TaskSubtask{}).Where("id = ?", sub.ID).
		Updates(map[string]interface{}{"done": sub.Done, "done_at": sub.DoneAt}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subtask": sub})
}

func (sc *SubtaskController) DeleteSubtask(c *gin.Context) {
	userID := middleware.UserID(c)

	task, ok := loadTaskForActor(c, sc.DB, c.Param("taskId"), userID)
	if !ok {
		return
	}
	if !requireEditPermission(c, sc.DB, &task, userID) {
		return
	}

	res := sc.DB.Where("id = ? AND task_id = ?", c.Param("subtaskId"), task.ID).
		Delete(&models.TaskSubtask{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if res.RowsAffected != 1 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subtask not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "deletedSubtaskId": c.Param("subtaskId")})
}
