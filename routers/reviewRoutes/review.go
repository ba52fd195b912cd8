package reviewRoutes

import (
	reviewControllers "lms/controllers/review"
	"lms/middleware"
	"lms/models"
	reviewValidators "lms/validators/review"

	"github.com/gofiber/fiber/v2"
)

func SetupReviewRoutes(app *fiber.App) {
	reviewGroup := app.Group("/courses/:id/reviews")

	reviewGroup.Get("/", reviewControllers.CourseReviews)
	reviewGroup.Post("/", reviewValidators.Submit(), middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), reviewControllers.SubmitReview)
	reviewGroup.Delete("/", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), reviewControllers.DeleteReview)
}
