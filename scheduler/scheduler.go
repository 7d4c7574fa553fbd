// Package scheduler runs the periodic background sweep: publishing due
// scheduled messages and auto-archiving stale DONE tasks.
package scheduler

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Angelb777/done-backend/constants"
	"github.com/Angelb777/done-backend/models"
)

const publishBatchSize = 50

// Scheduler owns the sweep goroutine. A single timer is re-armed after each
// tick completes, so a slow tick delays the next one instead of overlapping
// it. Tick errors are logged and the next tick retries.
type Scheduler struct {
	db       *gorm.DB
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func New(db *gorm.DB, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Scheduler{
		db:       db,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	go s.run()
	log.Printf("Scheduler started (interval %s)", s.interval)
}

func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Scheduler) run() {
	defer close(s.done)
	timer := time.NewTimer(s.interval)
	defer timer.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-timer.C:
			s.Tick(time.Now().UTC())
			timer.Reset(s.interval)
		}
	}
}

// Tick runs the two sweep jobs. They are independent and order-insensitive;
// a failure in one never blocks the other.
func (s *Scheduler) Tick(now time.Time) {
	if err := PublishDueMessages(s.db, now); err != nil {
		log.Printf("Scheduler error: publish due messages: %v", err)
	}
	if err := ArchiveOldDoneTasks(s.db, now); err != nil {
		log.Printf("Scheduler error: archive done tasks: %v", err)
	}
}

// PublishDueMessages publishes up to a bounded batch of scheduled messages
// whose time has come, oldest first. Each message is updated independently
// so a failure on one does not halt the rest of the batch; a published
// message no longer matches the selection, which makes re-runs harmless.
func PublishDueMessages(db *gorm.DB, now time.Time) error {
	var due []models.Message
	err := db.
		Where("is_scheduled = ? AND published_at IS NULL AND scheduled_for <= ?", true, now).
		Order("scheduled_for ASC").
		Limit(publishBatchSize).
		Find(&due).Error
	if err != nil {
		return err
	}

	for i := range due {
		msg := &due[i]
		publishedAt := time.Now().UTC()
		err := db.Model(&models.Message{}).Where("id = ?", msg.ID).
			Updates(map[string]interface{}{
				"is_scheduled": false,
				"published_at": publishedAt,
			}).Error
		if err != nil {
			log.Printf("Scheduler error: publish message %s: %v", msg.ID, err)
			continue
		}
		msg.IsScheduled = false
		msg.PublishedAt = &publishedAt

		err = db.Model(&models.Chat{}).Where("id = ?", msg.ChatID).
			Updates(map[string]interface{}{
				"last_message_at":      publishedAt,
				"last_message_preview": msg.Preview(),
			}).Error
		if err != nil {
			log.Printf("Scheduler error: update chat %s preview: %v", msg.ChatID, err)
		}
	}
	return nil
}

// ArchiveOldDoneTasks bulk-archives tasks that have been DONE for longer
// than the retention window. This is what moves a completed task into the
// history view without user action.
func ArchiveOldDoneTasks(db *gorm.DB, now time.Time) error {
	limit := now.Add(-constants.HistoryWindow)
	return db.Model(&models.Task{}).
		Where("status = ? AND archived_at IS NULL AND completed_at IS NOT NULL AND completed_at <= ?",
			constants.TaskStatusDone, limit).
		Update("archived_at", now).Error
}
