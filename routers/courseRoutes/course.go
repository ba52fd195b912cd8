package courseRoutes

import (
	courseControllers "lms/controllers/course"
	"lms/middleware"
	"lms/models"
	courseValidators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses")

	// Static paths before the :id wildcard.
	courseGroup.Get("/", courseControllers.ListCourses)
	courseGroup.Get("/mine", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTrainer), courseControllers.TrainerCourses)

	courseGroup.Post("/", courseValidators.Save(), middleware.JWTMiddleware, middleware.RequireRole(models.RoleTrainer), courseControllers.CreateCourse)
	courseGroup.Put("/:id", courseValidators.Save(), middleware.JWTMiddleware, middleware.RequireRole(models.RoleTrainer), courseControllers.UpdateCourse)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTrainer, models.RoleAdmin), courseControllers.DeleteCourse)

	courseGroup.Get("/:id", middleware.JWTMiddleware, courseControllers.GetCourse)
	courseGroup.Get("/:id/edit", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTrainer), courseControllers.GetCourseForEdit)

	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), courseControllers.EnrollCourse)
	courseGroup.Get("/:id/enrollments", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTrainer), courseControllers.CourseEnrollments)
	courseGroup.Get("/:id/progress", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), courseControllers.CourseProgress)

	courseGroup.Get("/:id/quiz", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), courseControllers.GetQuiz)
	courseGroup.Post("/:id/quiz/submit", courseValidators.SubmitQuiz(), middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), courseControllers.SubmitQuiz)

	enrollmentGroup := app.Group("/enrollments")
	enrollmentGroup.Get("/", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), courseControllers.MyEnrollments)

	lessonGroup := app.Group("/lessons")
	lessonGroup.Post("/:id/toggle", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), courseControllers.ToggleLesson)

	resultGroup := app.Group("/results")
	resultGroup.Get("/", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), courseControllers.MyResults)
}
