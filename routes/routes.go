package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Angelb777/done-backend/controllers"
	"github.com/Angelb777/done-backend/middleware"
	"github.com/Angelb777/done-backend/utils"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	authController := controllers.AuthController{DB: db}
	chatController := controllers.ChatController{DB: db}
	messageController := controllers.MessageController{DB: db}
	taskController := controllers.TaskController{DB: db}
	subtaskController := controllers.SubtaskController{DB: db}
	commentController := controllers.CommentController{DB: db}
	dashboardController := controllers.DashboardController{DB: db}
	taskOrderController := controllers.TaskOrderController{DB: db}
	fileController := controllers.FileController{}

	r.Static("/uploads", utils.UploadDir())

	r.POST("/auth/register", authController.Register)
	r.POST("/auth/login", authController.Login)

	authorized := r.Group("/", middleware.AuthMiddleware())

	authorized.POST("/chats", chatController.CreateChat)
	authorized.GET("/chats", chatController.GetChats)
	authorized.GET("/chats/:chatId/members", chatController.GetChatMembers)

	authorized.POST("/messages/send", messageController.SendMessage)
	authorized.GET("/messages", messageController.GetMessages)

	authorized.PATCH("/tasks/:taskId/toggle", taskController.ToggleTask)
	authorized.POST("/tasks/:taskId/toggle", taskController.ToggleTask)
	authorized.PATCH("/tasks/:taskId/archive", taskController.ArchiveTask)
	authorized.POST("/tasks/:taskId/archive", taskController.ArchiveTask)
	authorized.PATCH("/tasks/:taskId/assignees", taskController.UpdateAssignees)
	authorized.GET("/tasks/:taskId", taskController.GetTask)
	authorized.PATCH("/tasks/:taskId", taskController.UpdateTask)
	authorized.DELETE("/tasks/:taskId", taskController.DeleteTask)

	authorized.GET("/tasks/:taskId/subtasks", subtaskController.ListSubtasks)
	authorized.POST("/tasks/:taskId/subtasks", subtaskController.CreateSubtask)
	authorized.PATCH("/tasks/:taskId/subtasks/:subtaskId/toggle", subtaskController.ToggleSubtask)
	authorized.DELETE("/tasks/:taskId/subtasks/:subtaskId", subtaskController.DeleteSubtask)

	authorized.GET("/tasks/:taskId/comments", commentController.ListComments)
	authorized.POST("/tasks/:taskId/comments", commentController.CreateComment)

	authorized.GET("/dashboard", dashboardController.GetDashboard)

	authorized.GET("/me/task-order", taskOrderController.GetTaskOrder)
	authorized.PATCH("/me/task-order", taskOrderController.UpdateTaskOrder)

	authorized.POST("/files", fileController.UploadFiles)

	return r
}
