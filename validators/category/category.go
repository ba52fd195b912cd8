package categoryValidator

import (
	"regexp"
	"strings"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

var unsafeChars = regexp.MustCompile(`[<>{}]`)

// Save validates category create and update payloads.
func Save() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		name := strings.TrimSpace(reqData.Name)
		if len(name) < 2 || len(name) > 100 {
			errors["name"] = "Name must be between 2 and 100 characters!"
		}
		if unsafeChars.MatchString(name) {
			errors["name"] = "Name contains invalid characters!"
		}

		if len(reqData.Description) > 500 {
			errors["description"] = "Description must be at most 500 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
