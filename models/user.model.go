package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleStudent    = "STUDENT"
	RoleInstructor = "INSTRUCTOR"
)

type User struct {
	gorm.Model
	FirstName string    `json:"first_name" gorm:"default:''"`
	LastName  string    `json:"last_name" gorm:"default:''"`
	Email     string    `json:"email" gorm:"unique;not null"`
	Role      string    `json:"role" gorm:"default:'STUDENT'"` // STUDENT, INSTRUCTOR
	Password  string    `json:"-" gorm:"not null"`
	LastLogin time.Time `json:"last_login" gorm:"default:NULL"`
	IsDeleted bool      `gorm:"default:false"`
}
