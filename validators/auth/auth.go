package authValidator

import (
	"regexp"
	"strings"

	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// Helper to validate email format
func isValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

// Helper to validate username format
func isValidUsername(username string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,30}$`)
	return re.MatchString(username)
}

// Signup validator middleware
func Signup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Username string `json:"username"`
			FullName string `json:"fullName"`
			Email    string `json:"email"`
			Password string `json:"password"`
			Role     string `json:"role"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if !isValidUsername(strings.TrimSpace(reqData.Username)) {
			errors["username"] = "Username must be 3-30 characters (letters, digits, _ . -)!"
		}

		if len(strings.TrimSpace(reqData.FullName)) < 3 {
			errors["fullName"] = "Full name must be at least 3 characters long!"
		}

		if reqData.Email == "" || !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}

		if len(strings.TrimSpace(reqData.Password)) < 8 {
			errors["password"] = "Password must be at least 8 characters long!"
		}

		// Admin accounts are seeded, never self-registered.
		if reqData.Role != "" && reqData.Role != models.RoleStudent && reqData.Role != models.RoleTrainer {
			errors["role"] = "Role must be STUDENT or TRAINER!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// Login validator middleware
func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Email == "" && reqData.Username == "" {
			errors["credentials"] = "Either email or username is required!"
		} else if reqData.Email != "" && !isValidEmail(reqData.Email) {
			errors["email"] = "Invalid email!"
		}

		if strings.TrimSpace(reqData.Password) == "" {
			errors["password"] = "Password is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// UpdateProfile validator middleware
func UpdateProfile() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			FullName string `json:"fullName"`
			Bio      string `json:"bio"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.FullName)) < 3 {
			errors["fullName"] = "Full name must be at least 3 characters long!"
		}

		if len(reqData.Bio) > 1000 {
			errors["bio"] = "Bio must be at most 1000 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
