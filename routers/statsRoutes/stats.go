package statsRoutes

import (
	statsControllers "lms/controllers/stats"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

func SetupStatsRoutes(app *fiber.App) {
	dashboardGroup := app.Group("/dashboard")

	dashboardGroup.Get("/student", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), statsControllers.StudentDashboard)
	dashboardGroup.Get("/trainer", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTrainer), statsControllers.TrainerDashboard)
	dashboardGroup.Get("/admin", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), statsControllers.AdminDashboard)
}
