package controllers

import (
	"log"
	"strconv"

	"lms/database"
	"lms/middleware"
	"lms/services"

	"github.com/gofiber/fiber/v2"
)

// ToggleLesson flips the completion state of a lesson for the authenticated
// student and returns the new state with refreshed course progress.
func ToggleLesson(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lessonId, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
	}

	db := database.Database.Db

	tx := db.Begin()
	if tx.Error != nil {
		log.Printf("Error starting transaction: %v", tx.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	completed, err := services.ToggleLessonCompletion(tx, userId, uint(lessonId))
	if err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, services.HTTPStatus(err), false, err.Error(), nil)
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing lesson toggle: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	message := "Lesson marked as incomplete!"
	if completed {
		message = "Lesson marked as completed!"
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"lessonId":  uint(lessonId),
		"completed": completed,
	})
}

// CourseProgress reports the authenticated student's progress in one course.
func CourseProgress(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseId, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	report, err := services.CourseProgress(database.Database.Db, userId, uint(courseId))
	if err != nil {
		return middleware.JsonResponse(c, services.HTTPStatus(err), false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", report)
}
