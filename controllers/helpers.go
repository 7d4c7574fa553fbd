package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Angelb777/done-backend/models"
	"github.com/Angelb777/done-backend/utils"
)

func errAssigneesNotMembers(bad []string) error {
	return fmt.Errorf("Some users are not chat members: %s", strings.Join(bad, ", "))
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, errors.New("must be positive")
	}
	return n, nil
}

// loadTaskForActor loads a task and runs the chat-membership check every
// mutating operation requires. Writes the error response itself and returns
// ok=false when the caller should bail out.
func loadTaskForActor(c *gin.Context, db *gorm.DB, taskID, userID string) (models.Task, bool) {
	var task models.Task
	if err := db.First(&task, "id = ?", taskID).Error; err != nil {
		if utils.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		}
		return task, false
	}

	member, err := utils.IsChatMember(db, task.ChatID, userID)
	if err != nil {
		if utils.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Chat not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		}
		return task, false
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return task, false
	}
	return task, true
}

// requireEditPermission checks the creator/assignee edit rule and writes the
// 403 itself when it fails.
func requireEditPermission(c *gin.Context, db *gorm.DB, task *models.Task, userID string) bool {
	assignees, err := task.AssigneeIDs(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return false
	}
	if !task.CanEdit(userID, assignees) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return false
	}
	return true
}
