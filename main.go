package main

import (
	"time"

	"github.com/joho/godotenv"

	"github.com/Angelb777/done-backend/config"
	"github.com/Angelb777/done-backend/models"
	"github.com/Angelb777/done-backend/routes"
	"github.com/Angelb777/done-backend/scheduler"
)

func main() {
	_ = godotenv.Load()

	db := config.ConnectDB()
	db.AutoMigrate(
		&models.User{},
		&models.Chat{},
		&models.ChatMember{},
		&models.Message{},
		&models.Task{},
		&models.TaskAssignee{},
		&models.TaskSubtask{},
		&models.TaskComment{},
	)

	intervalMs, _ := time.ParseDuration(config.Getenv("SCHEDULER_INTERVAL_MS", "2000") + "ms")
	sched := scheduler.New(db, intervalMs)
	sched.Start()
	defer sched.Stop()

	r := routes.SetupRouter(db)
	r.Run(config.Getenv("HTTP_ADDR", ":8000"))
}
