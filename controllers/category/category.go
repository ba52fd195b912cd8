package categoryController

import (
	"log"
	"strconv"

	"lms/database"
	"lms/middleware"
	"lms/models"
	course "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func CreateCategory(c *fiber.Ctx) error {
	var reqData categoryRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	if err := db.Where("name = ? AND is_deleted = ?", reqData.Name, false).First(&models.Category{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Category already exists!", nil)
	}

	category := models.Category{
		Name:        reqData.Name,
		Description: reqData.Description,
	}
	if err := db.Create(&category).Error; err != nil {
		log.Printf("Error creating category: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully!", category)
}

func ListCategories(c *fiber.Ctx) error {
	db := database.Database.Db

	var categories []models.Category
	if err := db.Where("is_deleted = ?", false).Order("name asc").Find(&categories).Error; err != nil {
		log.Printf("Error listing categories: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", categories)
}

func UpdateCategory(c *fiber.Ctx) error {
	categoryId, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category id!", nil)
	}

	var reqData categoryRequest
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	var category models.Category
	if err := db.Where("id = ? AND is_deleted = ?", categoryId, false).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	category.Name = reqData.Name
	category.Description = reqData.Description
	if err := db.Save(&category).Error; err != nil {
		log.Printf("Error updating category: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category updated successfully!", category)
}

func DeleteCategory(c *fiber.Ctx) error {
	categoryId, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid category id!", nil)
	}

	db := database.Database.Db

	var category models.Category
	if err := db.Where("id = ? AND is_deleted = ?", categoryId, false).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	// A category with live courses cannot go away.
	var count int64
	if err := db.Model(&course.Course{}).Where("category_id = ? AND is_deleted = ?", category.ID, false).Count(&count).Error; err != nil {
		log.Printf("Error counting courses for category: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete category!", nil)
	}
	if count > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Category has courses and cannot be deleted!", nil)
	}

	category.IsDeleted = true
	if err := db.Save(&category).Error; err != nil {
		log.Printf("Error deleting category: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Category deleted successfully!", nil)
}
