package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Angelb777/done-backend/constants"
	"github.com/Angelb777/done-backend/middleware"
	"github.com/Angelb777/done-backend/models"
)

// TaskOrderController stores the per-user manual dashboard orderings. The
// lists are opaque: nothing validates them against visible tasks.
type TaskOrderController struct {
	DB *gorm.DB
}

func (tc *TaskOrderController) GetTaskOrder(c *gin.Context) {
	userID := middleware.UserID(c)

	var user models.User
	if err := tc.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	pending := user.OrderFor(constants.OrderSectionPending)
	if pending == nil {
		pending = []string{}
	}
	requested := user.OrderFor(constants.OrderSectionRequested)
	if requested == nil {
		requested = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"taskOrder": gin.H{
			"pending":   pending,
			"requested": requested,
		},
	})
}

func (tc *TaskOrderController) UpdateTaskOrder(c *gin.Context) {
	userID := middleware.UserID(c)

	var input struct {
		Section string   `json:"section"`
		IDs     []string `json:"ids"`
	}
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Section != constants.OrderSectionPending &&
		input.Section != constants.OrderSectionRequested {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid section"})
		return
	}

	var user models.User
	if err := tc.DB.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	user.SetOrderFor(input.Section, input.IDs)
	err := tc.DB.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"task_order_pending":   user.TaskOrderPending,
			"task_order_requested": user.TaskOrderRequested,
		}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
