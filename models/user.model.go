package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleStudent = "STUDENT"
	RoleTrainer = "TRAINER"
	RoleAdmin   = "ADMIN"
)

type User struct {
	gorm.Model
	Username     string     `json:"username" gorm:"unique;not null"`
	FullName     string     `json:"full_name" gorm:"default:''"`
	Email        string     `json:"email" gorm:"unique;not null"`
	Password     string     `json:"-" gorm:"not null"`
	Role         string     `json:"role" gorm:"default:'STUDENT'"` // STUDENT, TRAINER, ADMIN
	Bio          string     `json:"bio" gorm:"default:''"`
	ProfileImage string     `json:"profile_image" gorm:"default:''"`
	LastLogin    *time.Time `json:"last_login"`
	IsDeleted    bool       `gorm:"default:false"`
}
