package controllers

import (
	"log"
	"strconv"

	"lms/database"
	"lms/middleware"
	"lms/services"

	"github.com/gofiber/fiber/v2"
)

// GetQuiz returns the quiz of a course for an enrolled student. Correct
// answer flags are stripped.
func GetQuiz(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseId, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	if _, err := services.GetCourse(db, uint(courseId)); err != nil {
		return middleware.JsonResponse(c, services.HTTPStatus(err), false, err.Error(), nil)
	}

	enrolled, err := services.IsEnrolled(db, userId, uint(courseId))
	if err != nil {
		log.Printf("Error checking enrollment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quiz!", nil)
	}
	if !enrolled {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	quiz, err := services.CourseQuiz(db, uint(courseId), false)
	if err != nil {
		log.Printf("Error loading quiz: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", quiz)
}

// SubmitQuiz grades the student's attempt and stores the result.
func SubmitQuiz(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseId, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	var reqData struct {
		Answers []services.AnswerSubmission `json:"answers"`
	}
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	tx := database.Database.Db.Begin()
	if tx.Error != nil {
		log.Printf("Error starting transaction: %v", tx.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
	}

	report, err := services.SubmitQuiz(tx, userId, uint(courseId), reqData.Answers)
	if err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, services.HTTPStatus(err), false, err.Error(), nil)
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing quiz result: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted successfully!", report)
}

// MyResults lists the authenticated student's quiz results.
func MyResults(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	results, err := services.StudentResults(database.Database.Db, userId)
	if err != nil {
		log.Printf("Error listing results: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch results!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Results fetched successfully!", results)
}
