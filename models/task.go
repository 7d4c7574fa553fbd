package models

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Angelb777/done-backend/constants"
)

var ErrNoAssignees = errors.New("task must have at least 1 assignee")

type Task struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	ChatID    string `gorm:"size:36;index" json:"chatId"`
	MessageID string `gorm:"size:36;uniqueIndex" json:"messageId"`
	CreatorID string `gorm:"size:36;index" json:"creatorId"`

	Title string `json:"title"`
	Color string `gorm:"size:16;default:gray" json:"color"`

	// AssigneeID is the cached primary assignee, always the first element of
	// the assignee set. Kept for compatibility with older clients that only
	// know a single responsible user.
	AssigneeID string `gorm:"size:36;index" json:"assigneeId"`

	DueDate     *time.Time     `json:"dueDate,omitempty"`
	Status      string         `gorm:"size:16;index;default:PENDING" json:"status"`
	CompletedAt *time.Time     `gorm:"index" json:"completedAt,omitempty"`
	ArchivedAt  *time.Time     `gorm:"index" json:"archivedAt,omitempty"`
	Attachments AttachmentList `gorm:"type:text" json:"attachments"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TaskAssignee is one row of the task's assignee set.
type TaskAssignee struct {
	TaskID string `gorm:"primaryKey;size:36" json:"taskId"`
	UserID string `gorm:"primaryKey;size:36;index" json:"userId"`
}

// UniqueIDs drops empty and duplicate ids, preserving order.
func UniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// ReplaceAssignees replaces the task's assignee set and re-syncs the cached
// primary assignee. Every mutation path goes through here so the invariant
// (assignee == assignees[0], assignees never empty) holds after any write.
func (t *Task) ReplaceAssignees(db *gorm.DB, ids []string) error {
	ids = UniqueIDs(ids)
	if len(ids) == 0 {
		return ErrNoAssignees
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", t.ID).Delete(&TaskAssignee{}).Error; err != nil {
			return err
		}
		rows := make([]TaskAssignee, 0, len(ids))
		for _, id := range ids {
			rows = append(rows, TaskAssignee{TaskID: t.ID, UserID: id})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		t.AssigneeID = ids[0]
		return tx.Model(&Task{}).Where("id = ?", t.ID).
			Update("assignee_id", t.AssigneeID).Error
	})
}

// AssigneeIDs loads the task's assignee set, falling back to the cached
// primary assignee for rows written before the set existed.
func (t *Task) AssigneeIDs(db *gorm.DB) ([]string, error) {
	var ids []string
	err := db.Model(&TaskAssignee{}).Where("task_id = ?", t.ID).
		Order("user_id").Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 && t.AssigneeID != "" {
		ids = []string{t.AssigneeID}
	}
	return ids, nil
}

// CanEdit reports whether userID may mutate the task: creator, member of the
// assignee set, or the (legacy) cached primary assignee.
func (t *Task) CanEdit(userID string, assignees []string) bool {
	if t.CreatorID == userID || t.AssigneeID == userID {
		return true
	}
	for _, id := range assignees {
		if id == userID {
			return true
		}
	}
	return false
}

// IsHistory reports whether the task belongs to the history view: DONE and
// either archived or completed more than the retention window ago. The delete
// guard, the dashboard HISTORY tab and the archiver all rely on this.
func (t *Task) IsHistory(now time.Time) bool {
	if t.Status != constants.TaskStatusDone {
		return false
	}
	if t.ArchivedAt != nil {
		return true
	}
	return t.CompletedAt != nil && t.CompletedAt.Before(now.Add(-constants.HistoryWindow))
}
