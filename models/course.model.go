package models

import "gorm.io/gorm"

// Course represents a learning course owned by one instructor
type Course struct {
	gorm.Model
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	InstructorID uint      `json:"instructor_id" gorm:"index;not null"`
	Lectures     []Lecture `json:"lectures,omitempty" gorm:"foreignKey:CourseID"`
	IsDeleted    bool      `gorm:"default:false"`
}
