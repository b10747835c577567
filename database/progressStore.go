package database

import (
	"context"
	"errors"

	"learncraft/models"
	"learncraft/progress"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// progressStore is the gorm-backed implementation of progress.Store.
type progressStore struct {
	db *gorm.DB
}

// NewProgressStore wraps a gorm handle as a progress.Store.
func NewProgressStore(db *gorm.DB) progress.Store {
	return &progressStore{db: db}
}

func (s *progressStore) FindLectureByID(ctx context.Context, lectureID uint) (*models.Lecture, error) {
	var lecture models.Lecture
	err := s.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", lectureID, false).
		First(&lecture).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, progress.ErrLectureNotFound
		}
		return nil, err
	}
	return &lecture, nil
}

func (s *progressStore) FindQuestionsByLecture(ctx context.Context, lectureID uint) ([]models.QuizQuestion, error) {
	var questions []models.QuizQuestion
	err := s.db.WithContext(ctx).
		Where("lecture_id = ? AND is_deleted = ?", lectureID, false).
		Order("id asc").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *progressStore) FindCoursesWithLectures(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	err := s.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Preload("Lectures", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("order_index asc, id asc")
		}).
		Order("created_at desc").
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

func (s *progressStore) FindProgress(ctx context.Context, studentID, lectureID uint) (*models.StudentProgress, error) {
	var row models.StudentProgress
	err := s.db.WithContext(ctx).
		Where("student_id = ? AND lecture_id = ?", studentID, lectureID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (s *progressStore) FindProgressByStudent(ctx context.Context, studentID uint) ([]models.StudentProgress, error) {
	var rows []models.StudentProgress
	err := s.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpsertProgress inserts the row, or updates it in place when another writer
// already created one for the same (student, lecture) pair. The conflict
// clause on the composite unique index is what keeps a concurrent first-time
// write from failing with a constraint violation.
func (s *progressStore) UpsertProgress(ctx context.Context, row *models.StudentProgress) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "student_id"}, {Name: "lecture_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"is_completed", "completed_at", "quiz_score", "quiz_attempts", "updated_at", "deleted_at",
			}),
		}).
		Create(row).Error
}
