package statsController

import (
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services"

	"github.com/gofiber/fiber/v2"
)

// StudentDashboard aggregates the student's enrollments, lesson progress and
// quiz results into one payload.
func StudentDashboard(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	reports, err := services.StudentProgressAllCourses(db, userId)
	if err != nil {
		log.Printf("Error computing student progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard!", nil)
	}

	results, err := services.StudentResults(db, userId)
	if err != nil {
		log.Printf("Error loading results: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard!", nil)
	}

	completedCourses := 0
	for _, r := range reports {
		if r.TotalLessons > 0 && r.CompletedLessons == r.TotalLessons {
			completedCourses++
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"enrolledCourses":  len(reports),
		"completedCourses": completedCourses,
		"progress":         reports,
		"results":          results,
	})
}

// TrainerDashboard aggregates the trainer's catalog: per-course enrollment
// counts, average ratings and the per-student progress table.
func TrainerDashboard(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var courses []courseModels.Course
	if err := db.Where("trainer_id = ? AND is_deleted = ?", userId, false).Find(&courses).Error; err != nil {
		log.Printf("Error listing trainer courses: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard!", nil)
	}

	type courseStats struct {
		CourseID      uint    `json:"courseId"`
		Title         string  `json:"title"`
		Enrollments   int64   `json:"enrollments"`
		AverageRating float64 `json:"averageRating"`
	}

	var totalEnrollments int64
	stats := make([]courseStats, 0, len(courses))
	for _, crs := range courses {
		cs := courseStats{CourseID: crs.ID, Title: crs.Title}

		if err := db.Model(&courseModels.Enrollment{}).Where("course_id = ?", crs.ID).Count(&cs.Enrollments).Error; err != nil {
			log.Printf("Error counting enrollments: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard!", nil)
		}
		totalEnrollments += cs.Enrollments

		if err := db.Model(&models.Review{}).Where("course_id = ?", crs.ID).
			Select("COALESCE(AVG(rating), 0)").Scan(&cs.AverageRating).Error; err != nil {
			log.Printf("Error averaging ratings: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard!", nil)
		}

		stats = append(stats, cs)
	}

	students, err := services.TrainerStudentsProgress(db, userId)
	if err != nil {
		log.Printf("Error computing students progress: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"totalCourses":     len(courses),
		"totalEnrollments": totalEnrollments,
		"courses":          stats,
		"students":         students,
	})
}

// AdminDashboard gives platform-wide counts.
func AdminDashboard(c *fiber.Ctx) error {
	db := database.Database.Db

	var users, trainers, students, courses, enrollments int64
	if err := db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&users).Error; err != nil {
		log.Printf("Error counting users: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard!", nil)
	}
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleTrainer, false).Count(&trainers)
	db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleStudent, false).Count(&students)
	db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&courses)
	db.Model(&courseModels.Enrollment{}).Count(&enrollments)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"totalUsers":       users,
		"totalTrainers":    trainers,
		"totalStudents":    students,
		"totalCourses":     courses,
		"totalEnrollments": enrollments,
	})
}
