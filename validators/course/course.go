package courseValidator

import (
	"regexp"
	"strconv"
	"strings"

	"lms/middleware"
	course "lms/models/course"
	"lms/services"

	"github.com/gofiber/fiber/v2"
)

var unsafeChars = regexp.MustCompile(`[<>{}]`)

// Save validates the multipart course form shared by create and update. The
// modules and quiz JSON blobs are parsed here once so a malformed tree never
// reaches the transaction.
func Save() fiber.Handler {
	return func(c *fiber.Ctx) error {
		errors := make(map[string]string)

		title := strings.TrimSpace(c.FormValue("title"))
		if len(title) < 3 || len(title) > 200 {
			errors["title"] = "Title must be between 3 and 200 characters!"
		}
		if unsafeChars.MatchString(title) {
			errors["title"] = "Title contains invalid characters!"
		}

		if len(c.FormValue("description")) > 5000 {
			errors["description"] = "Description must be at most 5000 characters long!"
		}

		level := strings.ToUpper(strings.TrimSpace(c.FormValue("level")))
		if !course.ValidLevel(level) {
			errors["level"] = "Level must be BEGINNER, INTERMEDIATE or ADVANCED!"
		}

		if _, err := strconv.ParseUint(c.FormValue("category_id"), 10, 32); err != nil {
			errors["category_id"] = "Valid category id is required!"
		}

		modules, err := services.ParseModules(c.FormValue("modules"))
		if err != nil {
			errors["modules"] = "Modules must be a valid JSON array!"
		} else {
			for i, m := range modules {
				if strings.TrimSpace(m.Title) == "" {
					errors["modules"] = "Module " + strconv.Itoa(i+1) + " is missing a title!"
					break
				}
				for j, l := range m.Lessons {
					if strings.TrimSpace(l.Title) == "" {
						errors["modules"] = "Lesson " + strconv.Itoa(j+1) + " of module " + strconv.Itoa(i+1) + " is missing a title!"
						break
					}
				}
			}
		}

		quiz, err := services.ParseQuiz(c.FormValue("quiz"))
		if err != nil {
			errors["quiz"] = "Quiz must be a valid JSON object!"
		} else if quiz != nil {
			for i, q := range quiz.Questions {
				if strings.TrimSpace(q.Question) == "" {
					errors["quiz"] = "Question " + strconv.Itoa(i+1) + " is missing its text!"
					break
				}
				if len(q.Answers) < 2 {
					errors["quiz"] = "Question " + strconv.Itoa(i+1) + " needs at least 2 answers!"
					break
				}
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// SubmitQuiz validates a quiz submission body.
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Answers []struct {
				QuestionID uint `json:"questionId"`
				AnswerID   uint `json:"answerId"`
			} `json:"answers"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.Answers) == 0 {
			errors["answers"] = "At least one answer is required!"
		}
		for _, a := range reqData.Answers {
			if a.QuestionID == 0 || a.AnswerID == 0 {
				errors["answers"] = "Every answer needs a questionId and an answerId!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}
