package constants

import "time"

const (
	TaskStatusPending = "PENDING"
	TaskStatusDone    = "DONE"
)

// HistoryWindow is how long a DONE task stays in the active view before it
// counts as history (and becomes eligible for auto-archival).
const HistoryWindow = 24 * time.Hour

var TaskColors = []string{
	"gray",
	"yellow",
	"orange",
	"red",
	"pink",
	"purple",
	"blue",
	"teal",
	"green",
	"brown",
}

const DefaultTaskColor = "gray"

func IsTaskColor(c string) bool {
	for _, v := range TaskColors {
		if v == c {
			return true
		}
	}
	return false
}
