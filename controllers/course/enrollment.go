package controllers

import (
	"log"
	"strconv"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

func EnrollCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseId, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	tx := db.Begin()
	if tx.Error != nil {
		log.Printf("Error starting transaction: %v", tx.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll!", nil)
	}

	enrollment, err := services.Enroll(tx, userId, uint(courseId))
	if err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, services.HTTPStatus(err), false, err.Error(), nil)
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing enrollment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll!", nil)
	}

	// Confirmation email goes out of band; a mail failure never fails the
	// enrollment.
	var student models.User
	if err := db.First(&student, userId).Error; err == nil {
		if crs, err := services.GetCourse(db, uint(courseId)); err == nil {
			go utils.SendEnrollmentEmail(student.Email, student.FullName, crs.Title)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled successfully!", enrollment)
}

func MyEnrollments(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	views, err := services.StudentEnrollments(database.Database.Db, userId)
	if err != nil {
		log.Printf("Error listing enrollments: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", views)
}

// CourseEnrollments lists the students of one of the trainer's courses.
func CourseEnrollments(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseId, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	if err := services.ValidateCourseOwnership(db, uint(courseId), userId); err != nil {
		return middleware.JsonResponse(c, services.HTTPStatus(err), false, err.Error(), nil)
	}

	views, err := services.CourseEnrollments(db, uint(courseId))
	if err != nil {
		return middleware.JsonResponse(c, services.HTTPStatus(err), false, err.Error(), nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", views)
}
