package controllers

import (
	"log"
	"strconv"
	"strings"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services"
	"lms/storage"

	"github.com/gofiber/fiber/v2"
)

// courseSummary is the list-page shape: course fields plus the joined names
// and aggregates the catalog needs.
type courseSummary struct {
	ID            uint    `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Level         string  `json:"level"`
	Duration      string  `json:"duration"`
	CoverImage    string  `json:"coverImage,omitempty"`
	CategoryID    uint    `json:"categoryId"`
	CategoryName  string  `json:"categoryName"`
	TrainerID     uint    `json:"trainerId"`
	TrainerName   string  `json:"trainerName"`
	AverageRating float64 `json:"averageRating"`
	Enrollments   int64   `json:"enrollments"`
}

func ListCourses(c *fiber.Ctx) error {
	db := database.Database.Db

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := db.Model(&courseModels.Course{}).Where("is_deleted = ?", false)
	if categoryId := c.Query("category_id"); categoryId != "" {
		query = query.Where("category_id = ?", categoryId)
	}
	if level := strings.ToUpper(c.Query("level")); level != "" {
		query = query.Where("level = ?", level)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.Printf("Error counting courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	var courses []courseModels.Course
	if err := query.Order("created_at desc").Offset((page - 1) * limit).Limit(limit).Find(&courses).Error; err != nil {
		log.Printf("Error listing courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	summaries := make([]courseSummary, 0, len(courses))
	for _, crs := range courses {
		summaries = append(summaries, buildSummary(crs))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": summaries,
		"page":    page,
		"limit":   limit,
		"total":   total,
	})
}

func buildSummary(crs courseModels.Course) courseSummary {
	db := database.Database.Db

	summary := courseSummary{
		ID:          crs.ID,
		Title:       crs.Title,
		Description: crs.Description,
		Level:       crs.Level,
		Duration:    crs.Duration,
		CategoryID:  crs.CategoryID,
		TrainerID:   crs.TrainerID,
	}
	if crs.CoverImage != "" {
		summary.CoverImage = storage.FileURL(crs.CoverImage)
	}

	var category models.Category
	if err := db.First(&category, crs.CategoryID).Error; err == nil {
		summary.CategoryName = category.Name
	}
	var trainer models.User
	if err := db.First(&trainer, crs.TrainerID).Error; err == nil {
		summary.TrainerName = trainer.FullName
	}

	db.Model(&models.Review{}).Where("course_id = ?", crs.ID).
		Select("COALESCE(AVG(rating), 0)").Scan(&summary.AverageRating)
	db.Model(&courseModels.Enrollment{}).Where("course_id = ?", crs.ID).Count(&summary.Enrollments)

	return summary
}

// GetCourse returns the public detail view. For authenticated students it
// carries per-lesson completion flags and the enrollment state; the quiz never
// exposes correct answers here.
func GetCourse(c *fiber.Ctx) error {
	courseId, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	crs, err := services.GetCourse(db, uint(courseId))
	if err != nil {
		return middleware.JsonResponse(c, services.HTTPStatus(err), false, err.Error(), nil)
	}

	var studentId uint
	if id, ok := c.Locals("userId").(uint); ok {
		studentId = id
	}

	modules, err := services.CourseContentTree(db, crs.ID, studentId)
	if err != nil {
		log.Printf("Error loading course tree: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	quiz, err := services.CourseQuiz(db, crs.ID, false)
	if err != nil {
		log.Printf("Error loading quiz: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	var reviews []models.Review
	if err := db.Where("course_id = ?", crs.ID).Order("created_at desc").Find(&reviews).Error; err != nil {
		log.Printf("Error loading reviews: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	isEnrolled := false
	if studentId != 0 {
		isEnrolled, _ = services.IsEnrolled(db, studentId, crs.ID)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":     buildSummary(*crs),
		"modules":    modules,
		"quiz":       quiz,
		"reviews":    reviews,
		"isEnrolled": isEnrolled,
	})
}

// GetCourseForEdit is the owning trainer's view: the full tree plus the quiz
// with correct answers marked.
func GetCourseForEdit(c *fiber.Ctx) error {
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

	crs, err := services.GetCourse(db, uint(courseId))
	if err != nil {
		return middleware.JsonResponse(c, services.HTTPStatus(err), false, err.Error(), nil)
	}

	modules, err := services.CourseContentTree(db, crs.ID, 0)
	if err != nil {
		log.Printf("Error loading course tree: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	quiz, err := services.CourseQuiz(db, crs.ID, true)
	if err != nil {
		log.Printf("Error loading quiz: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":  crs,
		"modules": modules,
		"quiz":    quiz,
	})
}

// TrainerCourses lists the courses owned by the authenticated trainer.
func TrainerCourses(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Where("trainer_id = ? AND is_deleted = ?", userId, false).Order("created_at desc").Find(&courses).Error; err != nil {
		log.Printf("Error listing trainer courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	summaries := make([]courseSummary, 0, len(courses))
	for _, crs := range courses {
		summaries = append(summaries, buildSummary(crs))
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", summaries)
}
