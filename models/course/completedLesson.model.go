package course

import (
	"lms/models"

	"gorm.io/gorm"
)

// CompletedLesson marks a lesson as completed by a student. Presence of the row
// encodes "completed"; deleting it marks the lesson incomplete again. The unique
// index doubles as the backstop against a duplicate-insert race on concurrent
// toggles of the same pair.
type CompletedLesson struct {
	gorm.Model
	StudentID uint        `json:"student_id" gorm:"index;not null;uniqueIndex:idx_completed_student_lesson"`
	LessonID  uint        `json:"lesson_id" gorm:"index;not null;uniqueIndex:idx_completed_student_lesson"`
	Student   models.User `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Lesson    Lesson      `json:"-" gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE"`
}
