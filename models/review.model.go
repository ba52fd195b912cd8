package models

import "gorm.io/gorm"

// Review is a student's rating of a course. One review per student per course.
type Review struct {
	gorm.Model
	StudentID uint   `json:"student_id" gorm:"index;not null;uniqueIndex:idx_review_student_course"`
	CourseID  uint   `json:"course_id" gorm:"index;not null;uniqueIndex:idx_review_student_course"`
	Rating    int    `json:"rating" gorm:"not null"` // 1-5
	Comment   string `json:"comment"`
	Student   User   `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
}
