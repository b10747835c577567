package models

import (
	"time"

	"gorm.io/gorm"
)

// StudentProgress is the per-student-per-lecture completion record. The
// composite unique index is what guarantees at most one row per pair even
// under concurrent first-time writes.
type StudentProgress struct {
	gorm.Model
	StudentID    uint       `json:"student_id" gorm:"uniqueIndex:idx_student_lecture;not null"`
	LectureID    uint       `json:"lecture_id" gorm:"uniqueIndex:idx_student_lecture;not null"`
	IsCompleted  bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt  *time.Time `json:"completed_at"`
	QuizScore    *float64   `json:"quiz_score"` // 0..100, quiz lectures only
	QuizAttempts int        `json:"quiz_attempts" gorm:"default:0"`
}
