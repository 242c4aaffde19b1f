package routes

import (
	"github.com/akzmtmaos/prodactivity-sub000/config"
	"github.com/akzmtmaos/prodactivity-sub000/controllers"
	"github.com/akzmtmaos/prodactivity-sub000/middleware"
	"github.com/akzmtmaos/prodactivity-sub000/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, conf config.Config, prodService *services.ProductivityService) {
	authController := controllers.AuthController{}
	userController := controllers.UserController{}
	taskController := controllers.TaskController{}
	noteController := controllers.NoteController{}
	deckController := controllers.DeckController{}
	eventController := controllers.EventController{}
	productivityController := controllers.NewProductivityController(prodService)

	// 公开路由（无需认证）
	public := r.Group("/api/v1")
	{
		public.POST("/auth/register", authController.Register)
		public.POST("/auth/login", authController.Login)
	}

	// 需要认证的路由
	private := r.Group("/api/v1")
	private.Use(middleware.AuthMiddleware()) // 应用认证中间件
	{
		private.GET("/user", userController.GetUser)

		// 任务相关接口
		private.GET("/tasks", taskController.ListTasks)
		private.POST("/tasks", taskController.CreateTask)
		private.GET("/tasks/:id", taskController.GetTask)
		private.PUT("/tasks/:id", taskController.UpdateTask)
		private.DELETE("/tasks/:id", taskController.DeleteTask)
		private.POST("/tasks/:id/complete", taskController.CompleteTask)
		private.POST("/tasks/:id/uncomplete", taskController.UncompleteTask)

		// 效率统计接口
		private.GET("/productivity", productivityController.GetProductivity)
		private.GET("/productivity/logs", productivityController.GetProductivityLogs)

		// 笔记相关接口
		private.GET("/notebooks", noteController.ListNotebooks)
		private.POST("/notebooks", noteController.CreateNotebook)
		private.GET("/notes", noteController.ListNotes)
		private.POST("/notes", noteController.CreateNote)
		private.PUT("/notes/:id", noteController.UpdateNote)
		private.DELETE("/notes/:id", noteController.DeleteNote)

		// 闪卡相关接口
		private.GET("/decks", deckController.ListDecks)
		private.POST("/decks", deckController.CreateDeck)
		private.GET("/decks/:id/flashcards", deckController.ListFlashcards)
		private.POST("/flashcards", deckController.CreateFlashcard)
		private.DELETE("/flashcards/:id", deckController.DeleteFlashcard)

		// 日程相关接口
		private.GET("/events", eventController.ListEvents)
		private.POST("/events", eventController.CreateEvent)
		private.DELETE("/events/:id", eventController.DeleteEvent)
	}

	// 内部路由组（仅限服务器内部调用）
	internal := r.Group("/internal")
	internal.Use(middleware.InternalAuthMiddleware(conf.InternalAuthToken))
	{
		internal.POST("/productivity/backfill", productivityController.Backfill)
	}

	// 测试路由
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}
