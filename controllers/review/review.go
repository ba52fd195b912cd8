package reviewController

import (
	"errors"
	"log"
	"strconv"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// SubmitReview creates or updates the student's review of a course. One
// review per student per course; resubmitting overwrites.
func SubmitReview(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseId, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	var reqData reviewRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	if _, err := services.GetCourse(db, uint(courseId)); err != nil {
		return middleware.JsonResponse(c, services.HTTPStatus(err), false, err.Error(), nil)
	}

	enrolled, err := services.IsEnrolled(db, userId, uint(courseId))
	if err != nil {
		log.Printf("Error checking enrollment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit review!", nil)
	}
	if !enrolled {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	var review models.Review
	err = db.Where("student_id = ? AND course_id = ?", userId, courseId).First(&review).Error
	switch {
	case err == nil:
		review.Rating = reqData.Rating
		review.Comment = reqData.Comment
		if err := db.Save(&review).Error; err != nil {
			log.Printf("Error updating review: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit review!", nil)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		review = models.Review{
			StudentID: userId,
			CourseID:  uint(courseId),
			Rating:    reqData.Rating,
			Comment:   reqData.Comment,
		}
		if err := db.Create(&review).Error; err != nil {
			log.Printf("Error creating review: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit review!", nil)
		}
	default:
		log.Printf("Error loading review: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review submitted successfully!", review)
}

func CourseReviews(c *fiber.Ctx) error {
	courseId, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	if _, err := services.GetCourse(db, uint(courseId)); err != nil {
		return middleware.JsonResponse(c, services.HTTPStatus(err), false, err.Error(), nil)
	}

	var reviews []models.Review
	if err := db.Where("course_id = ?", courseId).Order("created_at desc").Find(&reviews).Error; err != nil {
		log.Printf("Error listing reviews: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched successfully!", reviews)
}

func DeleteReview(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseId, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var review models.Review
	if err := db.Where("student_id = ? AND course_id = ?", userId, courseId).First(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
	}

	if err := db.Unscoped().Delete(&review).Error; err != nil {
		log.Printf("Error deleting review: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review deleted successfully!", nil)
}
