package course

import (
	"time"

	"lms/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Result stores a student's quiz score for a course. At most one row exists per
// (student, course) pair; resubmissions overwrite score and breakdown in place.
type Result struct {
	gorm.Model
	StudentID   uint           `json:"student_id" gorm:"index;not null;uniqueIndex:idx_result_student_course"`
	CourseID    uint           `json:"course_id" gorm:"index;not null;uniqueIndex:idx_result_student_course"`
	Score       int            `json:"score"` // 0-100
	CompletedAt time.Time      `json:"completed_at"`
	Breakdown   datatypes.JSON `json:"breakdown"` // per-question grading detail
	Student     models.User    `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Course      Course         `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
