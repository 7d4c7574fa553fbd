package controllers

import (
	"testing"
	"time"

	"github.com/Angelb777/done-backend/models"
)

func TestOrderTasksManualThenCreatedAtThenID(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	a := models.Task{ID: "task-a", CreatedAt: base.Add(3 * time.Hour)}
	b := models.Task{ID: "task-b", CreatedAt: base.Add(2 * time.Hour)}
	c := models.Task{ID: "task-c", CreatedAt: base.Add(time.Hour)}
	d := models.Task{ID: "task-d", CreatedAt: base}

	order := []string{"task-a", "task-b"}
	want := []string{"task-a", "task-b", "task-d", "task-c"}

	inputs := [][]models.Task{
		{a, b, c, d},
		{d, c, b, a},
		{c, a, d, b},
	}
	for _, input := range inputs {
		got := orderTasks(input, order)
		for i, task := range got {
			if task.ID != want[i] {
				t.Fatalf("position %d = %s, want %s", i, task.ID, want[i])
			}
		}
	}
}

func TestOrderTasksTieBreaksOnID(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	x := models.Task{ID: "bbb", CreatedAt: at}
	y := models.Task{ID: "aaa", CreatedAt: at}

	got := orderTasks([]models.Task{x, y}, nil)
	if got[0].ID != "aaa" || got[1].ID != "bbb" {
		t.Fatalf("tie not broken by id: %s, %s", got[0].ID, got[1].ID)
	}

	// Same result from the opposite input order.
	got = orderTasks([]models.Task{y, x}, nil)
	if got[0].ID != "aaa" || got[1].ID != "bbb" {
		t.Fatalf("tie break depends on input order: %s, %s", got[0].ID, got[1].ID)
	}
}

func TestOrderTasksListedBeforeUnlisted(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	listed := models.Task{ID: "listed", CreatedAt: base.Add(time.Hour)}
	unlisted := models.Task{ID: "unlisted", CreatedAt: base}

	got := orderTasks([]models.Task{unlisted, listed}, []string{"listed"})
	if got[0].ID != "listed" {
		t.Fatal("task in the stored order must sort before tasks absent from it")
	}
}
