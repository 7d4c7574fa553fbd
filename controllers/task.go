package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Angelb777/done-backend/constants"
	"github.com/Angelb777/done-backend/middleware"
	"github.com/Angelb777/done-backend/models"
	"github.com/Angelb777/done-backend/utils"
)

type TaskController struct {
	DB *gorm.DB
}

// ToggleTask flips PENDING<->DONE. Completing sets completedAt and clears
// archivedAt (the task stays in the active view for the retention window);
// un-completing clears both. The three fields are written in one UPDATE.
func (tc *TaskController) ToggleTask(c *gin.Context) {
	userID := middleware.UserID(c)

	task, ok := loadTaskForActor(c, tc.DB, c.Param("taskId"), userID)
	if !ok {
		return
	}
	if !requireEditPermission(c, tc.DB, &task, userID) {
		return
	}

	now := time.Now().UTC()
	if task.Status == constants.TaskStatusPending {
		task.Status = constants.TaskStatusDone
		task.CompletedAt = &now
		task.ArchivedAt = nil
	} else {
		task.Status = constants.TaskStatusPending
		task.CompletedAt = nil
		task.ArchivedAt = nil
	}

	err := tc.DB.Model(&models.Task{}).Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"status":       task.Status,
			"completed_at": task.CompletedAt,
			"archived_at":  task.ArchivedAt,
		}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"task": gin.H{
			"id":          task.ID,
			"status":      task.Status,
			"completedAt": task.CompletedAt,
			"archivedAt":  task.ArchivedAt,
		},
	})
}

// ArchiveTask moves a DONE task to history immediately.
func (tc *TaskController) ArchiveTask(c *gin.Context) {
	userID := middleware.UserID(c)

	task, ok := loadTaskForActor(c, tc.DB, c.Param("taskId"), userID)
	if !ok {
		return
	}
	if !requireEditPermission(c, tc.DB, &task, userID) {
		return
	}

	if task.Status != constants.TaskStatusDone {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only DONE tasks can be archived"})
		return
	}

	now := time.Now().UTC()
	err := tc.DB.Model(&models.Task{}).Where("id = ?", task.ID).
		Update("archived_at", now).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"task": gin.H{"id": task.ID, "archivedAt": now},
	})
}

// DeleteTask removes a history task with its subtasks and comments. Only the
// creator or an admin may do it, and only once the task is history.
func (tc *TaskController) DeleteTask(c *gin.Context) {
	userID := middleware.UserID(c)

	task, ok := loadTaskForActor(c, tc.DB, c.Param("taskId"), userID)
	if !ok {
		return
	}

	if !task.IsHistory(time.Now().UTC()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only history tasks can be deleted"})
		return
	}

	if task.CreatorID != userID && !utils.IsAdmin(tc.DB, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	err := tc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.TaskComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.TaskSubtask{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", task.ID).Delete(&models.TaskAssignee{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Task{}, "id = ?", task.ID).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "deletedTaskId": task.ID})
}

// GetTask returns the full task for any chat member.
func (tc *TaskController) GetTask(c *gin.Context) {
	userID := middleware.UserID(c)

	task, ok := loadTaskForActor(c, tc.DB, c.Param("taskId"), userID)
	if !ok {
		return
	}

	assignees, err := task.AssigneeIDs(tc.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	var chat models.Chat
	tc.DB.First(&chat, "id = ?", task.ChatID)

	users := loadUsers(tc.DB, append([]string{task.CreatorID, task.AssigneeID}, assignees...))

	assigneeUsers := make([]models.PublicUser, 0, len(assignees))
	for _, id := range assignees {
		if u, ok := users[id]; ok {
			assigneeUsers = append(assigneeUsers, u)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"task": gin.H{
			"id":          task.ID,
			"title":       task.Title,
			"status":      task.Status,
			"color":       task.Color,
			"dueDate":     task.DueDate,
			"createdAt":   task.CreatedAt,
			"completedAt": task.CompletedAt,
			"archivedAt":  task.ArchivedAt,
			"attachments": task.Attachments,
			"messageId":   task.MessageID,
			"chat":        gin.H{"id": chat.ID, "type": chat.Type, "title": chat.Title},
			"creator":     users[task.CreatorID],
			"assignee":    users[task.AssigneeID],
			"assignees":   assigneeUsers,
		},
	})
}

// UpdateTask edits the task's cosmetic/meta fields: dueDate (empty string
// clears it) and color.
func (tc *TaskController) UpdateTask(c *gin.Context) {
	userID := middleware.UserID(c)

	task, ok := loadTaskForActor(c, tc.DB, c.Param("taskId"), userID)
	if !ok {
		return
	}
	if !requireEditPermission(c, tc.DB, &task, userID) {
		return
	}

	var input struct {
		DueDate *string `json:"dueDate"`
		Color   *string `json:"color"`
	}
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}

	if input.DueDate != nil {
		if *input.DueDate == "" {
			task.DueDate = nil
			updates["due_date"] = nil
		} else {
			t, err := time.Parse(time.RFC3339, *input.DueDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dueDate"})
				return
			}
			t = t.UTC()
			task.DueDate = &t
			updates["due_date"] = &t
		}
	}

	if input.Color != nil {
		if !constants.IsTaskColor(*input.Color) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid color"})
			return
		}
		task.Color = *input.Color
		updates["color"] = task.Color
	}

	if len(updates) > 0 {
		if err := tc.DB.Model(&models.Task{}).Where("id = ?", task.ID).
			Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "task": task})
}

// UpdateAssignees edits the assignee set. "set" replaces it wholesale,
// otherwise add/remove apply as union/difference. The result must be
// non-empty and all members of the task's chat.
func (tc *TaskController) UpdateAssignees(c *gin.Context) {
	userID := middleware.UserID(c)

	task, ok := loadTaskForActor(c, tc.DB, c.Param("taskId"), userID)
	if !ok {
		return
	}
	if !requireEditPermission(c, tc.DB, &task, userID) {
		return
	}

	var input struct {
		Add    []string  `json:"add"`
		Remove []string  `json:"remove"`
		Set    *[]string `json:"set"`
	}
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var next []string
	if input.Set != nil {
		next = models.UniqueIDs(*input.Set)
	} else {
		current, err := task.AssigneeIDs(tc.DB)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}
		removed := make(map[string]bool, len(input.Remove))
		for _, id := range input.Remove {
			removed[id] = true
		}
		for _, id := range append(current, input.Add...) {
			if !removed[id] {
				next = append(next, id)
			}
		}
		next = models.UniqueIDs(next)
	}

	if len(next) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Task must have at least 1 assignee"})
		return
	}

	bad, err := utils.NonMembers(tc.DB, task.ChatID, next)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if len(bad) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Some users are not chat members",
			"badUserIds": bad,
		})
		return
	}

	if err := task.ReplaceAssignees(tc.DB, next); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok": true,
		"task": gin.H{
			"id":        task.ID,
			"assignee":  task.AssigneeID,
			"assignees": next,
		},
	})
}

func loadUsers(db *gorm.DB, ids []string) map[string]models.PublicUser {
	out := make(map[string]models.PublicUser)
	ids = models.UniqueIDs(ids)
	if len(ids) == 0 {
		return out
	}
	var users []models.User
	if err := db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return out
	}
	for _, u := range users {
		out[u.ID] = u.Public()
	}
	return out
}
