package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Cavista-Hackathon-2025/carepulse/controllers"
	"github.com/Cavista-Hackathon-2025/carepulse/middlewares"
)

// Controllers bundles everything the router mounts.
type Controllers struct {
	Auth          *controllers.AuthController
	User          *controllers.UserController
	Scan          *controllers.ScanController
	MealPlans     *controllers.MealPlanController
	Summaries     *controllers.SummaryController
	Notifications *controllers.NotificationController
	Realtime      *controllers.RealtimeController
	Uploads       *controllers.UploadController
}

func SetupRouter(ctrl Controllers, jwtSecret []byte, db *gorm.DB) *gin.Engine {
	r := gin.Default()

	auth := r.Group("/auth")
	{
		auth.POST("/register", ctrl.Auth.Register)
		auth.POST("/login", ctrl.Auth.Login)
	}

	protected := r.Group("/")
	protected.Use(middlewares.AuthMiddleware(jwtSecret, db))
	{
		protected.GET("/user/profile", ctrl.User.GetProfile)
		protected.PUT("/user/profile", ctrl.User.UpdateProfile)

		protected.POST("/scan/food", ctrl.Scan.ScanFood)
		protected.POST("/scan/label", ctrl.Scan.ScanLabel)
		protected.POST("/scan/report", ctrl.Scan.ScanReport)
		protected.GET("/scan/history", ctrl.Scan.History)

		protected.GET("/meal-plans", ctrl.MealPlans.List)
		protected.POST("/meal-plans", ctrl.MealPlans.Create)
		protected.GET("/meal-plans/:id", ctrl.MealPlans.Get)
		protected.PATCH("/meal-plans/:id", ctrl.MealPlans.Update)
		protected.DELETE("/meal-plans/:id", ctrl.MealPlans.Delete)
		protected.PATCH("/meal-plans/:id/meals/:mealId", ctrl.MealPlans.UpdateMeal)

		protected.POST("/summaries/daily", ctrl.Summaries.GenerateDaily)
		protected.POST("/summaries/weekly", ctrl.Summaries.GenerateWeekly)
		protected.GET("/summaries", ctrl.Summaries.List)

		protected.GET("/notifications", ctrl.Notifications.List)
		protected.POST("/devices", ctrl.Notifications.RegisterDevice)
		protected.GET("/ws/notifications", ctrl.Realtime.NotificationsWS)

		protected.POST("/upload", ctrl.Uploads.Upload)
		protected.POST("/upload/base64", ctrl.Uploads.UploadBase64)
	}

	return r
}
