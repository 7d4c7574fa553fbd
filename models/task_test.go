package models

import (
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Angelb777/done-backend/constants"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "models.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&Task{}, &TaskAssignee{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestUniqueIDs(t *testing.T) {
	got := UniqueIDs([]string{"u1", "", "u2", "u1", "u3", "u2"})
	want := []string{"u1", "u2", "u3"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestReplaceAssigneesKeepsPrimaryInSync(t *testing.T) {
	db := testDB(t)

	task := Task{ID: NewID(), ChatID: NewID(), CreatorID: "creator", Title: "t", AssigneeID: "u1", Status: constants.TaskStatusPending}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("create task: %v", err)
	}
	if err := task.ReplaceAssignees(db, []string{"u1"}); err != nil {
		t.Fatalf("seed assignees: %v", err)
	}

	if err := task.ReplaceAssignees(db, []string{"u2", "u3", "u2"}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if task.AssigneeID != "u2" {
		t.Fatalf("primary = %s, want u2", task.AssigneeID)
	}

	var stored Task
	db.First(&stored, "id = ?", task.ID)
	if stored.AssigneeID != "u2" {
		t.Fatalf("stored primary = %s, want u2", stored.AssigneeID)
	}

	ids, err := stored.AssigneeIDs(db)
	if err != nil {
		t.Fatalf("assignee ids: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("assignees = %v, want 2 deduped", ids)
	}
	inSet := false
	for _, id := range ids {
		if id == stored.AssigneeID {
			inSet = true
		}
	}
	if !inSet {
		t.Fatal("primary assignee not in assignee set")
	}
}

func TestReplaceAssigneesRejectsEmpty(t *testing.T) {
	db := testDB(t)
	task := Task{ID: NewID(), ChatID: NewID(), CreatorID: "creator", Title: "t", AssigneeID: "u1"}
	if err := db.Create(&task).Error; err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := task.ReplaceAssignees(db, nil); err != ErrNoAssignees {
		t.Fatalf("err = %v, want ErrNoAssignees", err)
	}
	if err := task.ReplaceAssignees(db, []string{"", ""}); err != ErrNoAssignees {
		t.Fatalf("err = %v, want ErrNoAssignees", err)
	}
}

func TestIsHistory(t *testing.T) {
	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	old := now.Add(-25 * time.Hour)
	recent := now.Add(-time.Hour)

	cases := []struct {
		name string
		task Task
		want bool
	}{
		{"pending", Task{Status: constants.TaskStatusPending}, false},
		{"pending with stale completedAt", Task{Status: constants.TaskStatusPending, CompletedAt: &old}, false},
		{"done recent", Task{Status: constants.TaskStatusDone, CompletedAt: &recent}, false},
		{"done old", Task{Status: constants.TaskStatusDone, CompletedAt: &old}, true},
		{"done archived", Task{Status: constants.TaskStatusDone, CompletedAt: &recent, ArchivedAt: &recent}, true},
	}
	for _, tc := range cases {
		if got := tc.task.IsHistory(now); got != tc.want {
			t.Errorf("%s: IsHistory = %v, want %v", tc.name, got, tc.want)
		}
	}
}
