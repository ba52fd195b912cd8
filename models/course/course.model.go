package course

import "gorm.io/gorm"

// Course levels
const (
	LevelBeginner     = "BEGINNER"
	LevelIntermediate = "INTERMEDIATE"
	LevelAdvanced     = "ADVANCED"
)

// Course represents a marketplace course owned by a trainer
type Course struct {
	gorm.Model
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description"`
	Level       string `json:"level" gorm:"not null"` // BEGINNER, INTERMEDIATE, ADVANCED
	Duration    string `json:"duration"`
	CoverImage  string `json:"cover_image"` // asset reference, optional
	CategoryID  uint   `json:"category_id" gorm:"index;not null"`
	TrainerID   uint   `json:"trainer_id" gorm:"index;not null"`
	IsDeleted   bool   `gorm:"default:false"`
}

// ValidLevel reports whether s is one of the course level values.
func ValidLevel(s string) bool {
	return s == LevelBeginner || s == LevelIntermediate || s == LevelAdvanced
}
