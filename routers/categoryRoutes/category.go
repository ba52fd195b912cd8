package categoryRoutes

import (
	categoryControllers "lms/controllers/category"
	"lms/middleware"
	"lms/models"
	categoryValidators "lms/validators/category"

	"github.com/gofiber/fiber/v2"
)

func SetupCategoryRoutes(app *fiber.App) {
	categoryGroup := app.Group("/categories")

	categoryGroup.Get("/", categoryControllers.ListCategories)
	categoryGroup.Post("/", categoryValidators.Save(), middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), categoryControllers.CreateCategory)
	categoryGroup.Put("/:id", categoryValidators.Save(), middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), categoryControllers.UpdateCategory)
	categoryGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin), categoryControllers.DeleteCategory)
}
