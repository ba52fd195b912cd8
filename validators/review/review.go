package reviewValidator

import (
	"regexp"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

var unsafeChars = regexp.MustCompile(`[<>{}]`)

// Submit validates a review payload.
func Submit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Rating  int    `json:"rating"`
			Comment string `json:"comment"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Rating < 1 || reqData.Rating > 5 {
			errors["rating"] = "Rating must be between 1 and 5!"
		}

		if len(reqData.Comment) > 2000 {
			errors["comment"] = "Comment must be at most 2000 characters long!"
		}
		if unsafeChars.MatchString(reqData.Comment) {
			errors["comment"] = "Comment contains invalid characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
