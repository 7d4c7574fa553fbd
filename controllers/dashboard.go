package controllers

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Angelb777/done-backend/constants"
	"github.com/Angelb777/done-backend/middleware"
	"github.com/Angelb777/done-backend/models"
)

type DashboardController struct {
	DB *gorm.DB
}

const (
	tabActive  = "TAREAS"
	tabHistory = "HISTORIAL"
)

// subtaskProgress is the {total, done} summary attached to dashboard tasks.
type subtaskProgress struct {
	Total int64 `json:"total"`
	Done  int64 `json:"done"`
}

// GetDashboard returns the caller's two task lists for a tab:
//
//	mine:         tasks where the caller is in the assignee set
//	assignedByMe: tasks the caller created for others
//
// Each list is sorted by the caller's stored manual order with a stable
// createdAt/id fallback, and annotated with subtask progress.
func (dc *DashboardController) GetDashboard(c *gin.Context) {
	userID := middleware.UserID(c)

	tab := strings.ToUpper(c.DefaultQuery("tab", tabActive))
	if tab != tabHistory {
		tab = tabActive
	}

	now := time.Now().UTC()
	since := now.Add(-constants.HistoryWindow)

	var me models.User
	if err := dc.DB.First(&me, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	tabFilter := func(q *gorm.DB) *gorm.DB {
		if tab == tabHistory {
			return q.Where("status = ?", constants.TaskStatusDone).
				Where("archived_at IS NOT NULL OR completed_at < ?", since)
		}
		return q.Where("archived_at IS NULL").
			Where("status = ? OR (status = ? AND completed_at >= ?)",
				constants.TaskStatusPending, constants.TaskStatusDone, since)
	}

	inAssignees := "EXISTS (SELECT 1 FROM task_assignees ta WHERE ta.task_id = tasks.id AND ta.user_id = ?)"

	var mine []models.Task
	err := tabFilter(dc.DB.Model(&models.Task{})).
		Where("assignee_id = ? OR "+inAssignees, userID, userID).
		Find(&mine).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	var assignedByMe []models.Task
	err = tabFilter(dc.DB.Model(&models.Task{})).
		Where("creator_id = ?", userID).
		Where("assignee_id <> ?", userID).
		Where("NOT "+inAssignees, userID).
		Find(&assignedByMe).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	mine = orderTasks(mine, me.OrderFor(constants.OrderSectionPending))
	assignedByMe = orderTasks(assignedByMe, me.OrderFor(constants.OrderSectionRequested))

	allIDs := make([]string, 0, len(mine)+len(assignedByMe))
	userIDs := make([]string, 0, len(allIDs)*2)
	chatIDs := make([]string, 0, len(allIDs))
	for _, t := range append(append([]models.Task{}, mine...), assignedByMe...) {
		allIDs = append(allIDs, t.ID)
		userIDs = append(userIDs, t.CreatorID, t.AssigneeID)
		chatIDs = append(chatIDs, t.ChatID)
	}

	progress, err := dc.subtaskProgressByTask(allIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	users := loadUsers(dc.DB, userIDs)
	chats := dc.loadChats(chatIDs)

	shape := func(tasks []models.Task) []gin.H {
		out := make([]gin.H, 0, len(tasks))
		for _, t := range tasks {
			var st *subtaskProgress
			if p, ok := progress[t.ID]; ok && p.Total > 0 {
				st = &p
			}
			var chatOut gin.H
			if ch, ok := chats[t.ChatID]; ok {
				var title interface{}
				if ch.Type == constants.ChatTypeGroup {
					title = ch.Title
				}
				chatOut = gin.H{"id": ch.ID, "type": ch.Type, "title": title}
			}
			out = append(out, gin.H{
				"id":          t.ID,
				"title":       t.Title,
				"color":       t.Color,
				"status":      t.Status,
				"dueDate":     t.DueDate,
				"createdAt":   t.CreatedAt,
				"completedAt": t.CompletedAt,
				"archivedAt":  t.ArchivedAt,
				"subtasks":    st,
				"attachments": t.Attachments,
				"chat":        chatOut,
				"creator":     users[t.CreatorID],
				"assignee":    users[t.AssigneeID],
				"messageId":   t.MessageID,
			})
		}
		return out
	}

	c.JSON(http.StatusOK, gin.H{
		"tab":          tab,
		"mine":         shape(mine),
		"assignedByMe": shape(assignedByMe),
	})
}

// orderTasks sorts tasks by their index in the user's manual order list,
// then by createdAt, then by id. Tasks absent from the list always come
// after tasks present in it, and the sort is fully deterministic so repeated
// renders never reshuffle ties.
func orderTasks(tasks []models.Task, orderIDs []string) []models.Task {
	idx := make(map[string]int, len(orderIDs))
	for i, id := range orderIDs {
		if _, seen := idx[id]; !seen {
			idx[id] = i
		}
	}
	const absent = int(^uint(0) >> 1)

	sorted := append([]models.Task{}, tasks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		ai, ok := idx[a.ID]
		if !ok {
			ai = absent
		}
		bi, ok := idx[b.ID]
		if !ok {
			bi = absent
		}
		if ai != bi {
			return ai < bi
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	return sorted
}

func (dc *DashboardController) subtaskProgressByTask(taskIDs []string) (map[string]subtaskProgress, error) {
	out := make(map[string]subtaskProgress)
	if len(taskIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		TaskID string
		Total  int64
		Done   int64
	}
	err := dc.DB.Model(&models.TaskSubtask{}).
		Select("task_id, COUNT(*) AS total, SUM(CASE WHEN done THEN 1 ELSE 0 END) AS done").
		Where("task_id IN ?", taskIDs).
		Group("task_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		out[r.TaskID] = subtaskProgress{Total: r.Total, Done: r.Done}
	}
	return out, nil
}

func (dc *DashboardController) loadChats(ids []string) map[string]models.Chat {
	out := make(map[string]models.Chat)
	ids = models.UniqueIDs(ids)
	if len(ids) == 0 {
		return out
	}
	var chats []models.Chat
	if err := dc.DB.Where("id IN ?", ids).Find(&chats).Error; err != nil {
		return out
	}
	for _, ch := range chats {
		out[ch.ID] = ch
	}
	return out
}
