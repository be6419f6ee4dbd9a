package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/CauaGLS/Projeto-de-TCC/internal/handlers"
	"github.com/CauaGLS/Projeto-de-TCC/internal/middleware"
	"github.com/CauaGLS/Projeto-de-TCC/internal/types"
)

func SetupRouter(uploadsDir string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Static("/uploads", uploadsDir)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.RegisterUser)
			auth.POST("/login", handlers.LoginUser)
			auth.POST("/logout", handlers.LogoutUser)

			me := auth.Group("/me", middleware.AuthMiddleware())
			{
				me.GET("", handlers.GetCurrentUser)
				me.PATCH("", handlers.UpdateCurrentUser)
				me.DELETE("", handlers.DeleteCurrentUser)
				me.POST("/photo", handlers.UploadProfilePhoto)
			}
		}

		authorized := api.Group("", middleware.AuthMiddleware())
		{
			authorized.GET("/finances", handlers.GetFinances)
			authorized.POST("/finances", handlers.CreateFinance)
			authorized.GET("/finances/:finance_id", handlers.GetFinance)
			authorized.PATCH("/finances/:finance_id", handlers.UpdateFinance)
			authorized.DELETE("/finances/:finance_id", handlers.DeleteFinance)
			authorized.POST("/finances/:finance_id/attachments", handlers.UploadFinanceAttachments)
			authorized.DELETE("/attachments/:attachment_id", handlers.DeleteFinanceAttachment)

			authorized.GET("/spending-limit", handlers.GetSpendingLimit)
			authorized.POST("/spending-limit", handlers.SetSpendingLimit)
			authorized.DELETE("/spending-limit", handlers.DeleteSpendingLimit)

			authorized.GET("/goals", handlers.GetGoals)
			authorized.POST("/goals", handlers.CreateGoal)
			authorized.GET("/goals/:goal_id", handlers.GetGoal)
			authorized.PATCH("/goals/:goal_id", handlers.UpdateGoal)
			authorized.DELETE("/goals/:goal_id", handlers.DeleteGoal)
			authorized.POST("/goals/:goal_id/records", handlers.AddGoalRecord)

			authorized.GET("/family", handlers.GetFamily)
			authorized.GET("/family/users", handlers.GetFamilyUsers)
			authorized.POST("/family", handlers.CreateFamily)
			authorized.POST("/family/join", handlers.JoinFamily)
			authorized.POST("/family/leave", handlers.LeaveFamily)
			authorized.DELETE("/family/users/:user_id", handlers.RemoveFamilyMember)

			authorized.GET("/ws", handlers.WebSocketHandler)
		}
	}

	return r
}
