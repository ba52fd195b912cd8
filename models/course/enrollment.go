package course

import (
	"lms/models"

	"gorm.io/gorm"
)

// Enrollment records a student joining a course. A student may not enroll twice.
type Enrollment struct {
	gorm.Model
	StudentID uint        `json:"student_id" gorm:"index;not null;uniqueIndex:idx_enroll_student_course"`
	CourseID  uint        `json:"course_id" gorm:"index;not null;uniqueIndex:idx_enroll_student_course"`
	Student   models.User `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Course    Course      `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
