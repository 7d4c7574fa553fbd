package models

import (
	"encoding/json"
	"time"

	"github.com/Angelb777/done-backend/constants"
)

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:190" json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `gorm:"size:50" json:"name"`
	PhotoURL     string    `json:"photoUrl"`
	Status       string    `gorm:"size:80" json:"status"`
	Role         string    `gorm:"size:20;default:user" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Manually curated dashboard orderings, one JSON id list per section.
	// Opaque to the task core: stale ids simply match nothing.
	TaskOrderPending   string `gorm:"type:text" json:"-"`
	TaskOrderRequested string `gorm:"type:text" json:"-"`
}

// OrderFor returns the stored id list for a dashboard section.
func (u *User) OrderFor(section string) []string {
	raw := u.TaskOrderPending
	if section == constants.OrderSectionRequested {
		raw = u.TaskOrderRequested
	}
	if raw == "" {
		return nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil
	}
	return ids
}

// SetOrderFor replaces the stored id list for a dashboard section.
func (u *User) SetOrderFor(section string, ids []string) {
	if ids == nil {
		ids = []string{}
	}
	b, _ := json.Marshal(ids)
	if section == constants.OrderSectionRequested {
		u.TaskOrderRequested = string(b)
		return
	}
	u.TaskOrderPending = string(b)
}

// PublicUser is the user shape returned to clients (never the password hash).
type PublicUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoUrl,omitempty"`
	Status   string `json:"status,omitempty"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		PhotoURL: u.PhotoURL,
		Status:   u.Status,
	}
}
