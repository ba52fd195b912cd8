package course

import "gorm.io/gorm"

// Question is a quiz question owned by a course
type Question struct {
	gorm.Model
	CourseID uint   `json:"course_id" gorm:"index;not null"`
	Question string `json:"question" gorm:"not null"`
	Course   Course `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

// Answer is a quiz answer option; at least one per question carries Correct=true
type Answer struct {
	gorm.Model
	QuestionID  uint     `json:"question_id" gorm:"index;not null"`
	Answer      string   `json:"answer" gorm:"not null"`
	Correct     bool     `json:"correct" gorm:"default:false"`
	QuestionRef Question `json:"-" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}
