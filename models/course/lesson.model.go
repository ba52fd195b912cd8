package course

import "gorm.io/gorm"

// Lesson belongs to exactly one module; Video holds an opaque asset reference
type Lesson struct {
	gorm.Model
	ModuleID   uint   `json:"module_id" gorm:"index;not null"`
	Title      string `json:"title" gorm:"not null"`
	Duration   string `json:"duration"`
	Video      string `json:"video"` // asset reference, optional
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	ModuleRef  Module `json:"-" gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE"`
}
