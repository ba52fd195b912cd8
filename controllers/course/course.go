package controllers

import (
	"log"
	"mime/multipart"
	"strconv"
	"strings"

	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services"
	"lms/storage"

	"github.com/gofiber/fiber/v2"
)

var contentService *services.ContentService

// Init wires the asset store into the course controllers. Called once from
// main before routes are registered.
func Init(store storage.FileStore) {
	contentService = services.NewContentService(store)
}

// collectUploads opens every file part of the form and hands the streams to
// the service layer keyed by field name. The returned closer must run after
// the service call.
func collectUploads(form *multipart.Form) (services.Uploads, func(), error) {
	uploads := services.Uploads{}
	var opened []multipart.File

	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	for field, headers := range form.File {
		if len(headers) == 0 {
			continue
		}
		if field != "cover_image" && !strings.HasPrefix(field, "video_") {
			continue
		}
		f, err := headers[0].Open()
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		opened = append(opened, f)
		uploads[field] = services.Upload{Filename: headers[0].Filename, Content: f}
	}

	return uploads, closeAll, nil
}

func parseCourseForm(c *fiber.Ctx) (services.CourseInput, []services.ModuleInput, *services.QuizInput, error) {
	var in services.CourseInput
	in.Title = strings.TrimSpace(c.FormValue("title"))
	in.Description = strings.TrimSpace(c.FormValue("description"))
	in.Level = strings.ToUpper(strings.TrimSpace(c.FormValue("level")))
	in.Duration = strings.TrimSpace(c.FormValue("duration"))

	categoryId, err := strconv.ParseUint(c.FormValue("category_id"), 10, 32)
	if err != nil {
		return in, nil, nil, services.NewBadRequest("invalid category_id")
	}
	in.CategoryID = uint(categoryId)

	modules, err := services.ParseModules(c.FormValue("modules"))
	if err != nil {
		return in, nil, nil, err
	}

	quiz, err := services.ParseQuiz(c.FormValue("quiz"))
	if err != nil {
		return in, nil, nil, err
	}

	return in, modules, quiz, nil
}

func CreateCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid multipart form!", nil)
	}

	in, modules, quiz, err := parseCourseForm(c)
	if err != nil {
		return middleware.JsonResponse(c, services.HTTPStatus(err), false, err.Error(), nil)
	}

	uploads, closeUploads, err := collectUploads(form)
	if err != nil {
		log.Printf("Error reading uploaded files: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read uploaded files!", nil)
	}
	defer closeUploads()

	tx := database.Database.Db.Begin()
	if tx.Error != nil {
		log.Printf("Error starting transaction: %v", tx.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	created, synced, err := contentService.CreateCourse(tx, userId, in, modules, quiz, uploads)
	if err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, services.HTTPStatus(err), false, err.Error(), nil)
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing course create: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", fiber.Map{
		"course":  created,
		"modules": synced,
	})
}

func UpdateCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseId, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid multipart form!", nil)
	}

	in, modules, quiz, err := parseCourseForm(c)
	if err != nil {
		return middleware.JsonResponse(c, services.HTTPStatus(err), false, err.Error(), nil)
	}

	uploads, closeUploads, err := collectUploads(form)
	if err != nil {
		log.Printf("Error reading uploaded files: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to read uploaded files!", nil)
	}
	defer closeUploads()

	tx := database.Database.Db.Begin()
	if tx.Error != nil {
		log.Printf("Error starting transaction: %v", tx.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	updated, synced, err := contentService.UpdateCourse(tx, uint(courseId), userId, in, modules, quiz, uploads)
	if err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, services.HTTPStatus(err), false, err.Error(), nil)
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing course update: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", fiber.Map{
		"course":  updated,
		"modules": synced,
	})
}

func DeleteCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	role, _ := c.Locals("role").(string)

	courseId, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	tx := database.Database.Db.Begin()
	if tx.Error != nil {
		log.Printf("Error starting transaction: %v", tx.Error)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	if err := contentService.DeleteCourse(tx, uint(courseId), userId, role == models.RoleAdmin); err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, services.HTTPStatus(err), false, err.Error(), nil)
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing course delete: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
