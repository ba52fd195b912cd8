package services

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Wire shapes parsed out of the multipart course-edit request. A nil ID marks a
// node as new; an ID present means "this is the persisted node, update it".

type LessonInput struct {
	ID       *uint  `json:"id"`
	Title    string `json:"title"`
	Duration string `json:"duration"`
}

type ModuleInput struct {
	ID      *uint         `json:"id"`
	Title   string        `json:"title"`
	Lessons []LessonInput `json:"lessons"`
}

type AnswerInput struct {
	ID      *uint  `json:"id"`
	Answer  string `json:"answer"`
	Correct bool   `json:"correct"`
}

type QuestionInput struct {
	ID       *uint         `json:"id"`
	Question string        `json:"question"`
	Answers  []AnswerInput `json:"answers"`
}

type QuizInput struct {
	Questions []QuestionInput `json:"questions"`
}

// CourseInput carries the scalar course fields of a create/update request.
type CourseInput struct {
	Title       string
	Description string
	Level       string
	Duration    string
	CategoryID  uint
}

// Upload is one binary part of the request, keyed in Uploads by its multipart
// field name.
type Upload struct {
	Filename string
	Content  io.Reader
}

// Uploads maps multipart field names (cover_image, video_<m>_<l>) to payloads.
type Uploads map[string]Upload

// VideoKey returns the positional multipart field name binding a video payload
// to the lesson at lessonIndex inside the module at moduleIndex of the incoming
// tree. Both indexes are 0-based list positions, never database ids.
func VideoKey(moduleIndex, lessonIndex int) string {
	return fmt.Sprintf("video_%d_%d", moduleIndex, lessonIndex)
}

// ParseModules decodes the "modules" form field (a JSON array) of a course-edit
// request. A malformed payload aborts the whole operation as a bad request.
func ParseModules(raw string) ([]ModuleInput, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var modules []ModuleInput
	if err := json.Unmarshal([]byte(raw), &modules); err != nil {
		return nil, NewBadRequest("malformed modules payload: %v", err)
	}
	return modules, nil
}

// ParseQuiz decodes the "quiz" form field. An absent quiz returns nil, which
// the reconciler treats as "delete the quiz" on update.
func ParseQuiz(raw string) (*QuizInput, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var quiz QuizInput
	if err := json.Unmarshal([]byte(raw), &quiz); err != nil {
		return nil, NewBadRequest("malformed quiz payload: %v", err)
	}
	return &quiz, nil
}
