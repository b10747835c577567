// Package progress is the write authority for student progress rows and the
// read side that rolls them up into per-course views. It talks to storage
// only through the Store interface so tests can substitute an in-memory
// fake for the gorm-backed implementation.
package progress

import (
	"context"
	"errors"
	"fmt"

	"learncraft/models"
)

var (
	ErrLectureNotFound = errors.New("lecture not found")
	ErrCourseNotFound  = errors.New("course not found")

	// ErrNotReadingLecture rejects completion calls against quiz lectures;
	// those complete through quiz attempts only.
	ErrNotReadingLecture = errors.New("lecture is not a reading lecture")

	// ErrNotQuizLecture rejects quiz attempts against reading lectures.
	ErrNotQuizLecture = errors.New("lecture is not a quiz lecture")
)

// StorageError wraps a failure from the underlying store. The ledger never
// retries; the caller layer decides on retry/backoff.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("progress: storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}

// Store is the entity access the ledger and aggregator depend on. Lookups
// return the respective sentinel error when an id does not resolve;
// FindProgress returns (nil, nil) when no row exists for the pair.
// UpsertProgress must be atomic at the row level: a unique-constraint
// conflict on insert becomes an update in place, never an error.
type Store interface {
	FindLectureByID(ctx context.Context, lectureID uint) (*models.Lecture, error)
	FindQuestionsByLecture(ctx context.Context, lectureID uint) ([]models.QuizQuestion, error)
	FindCoursesWithLectures(ctx context.Context) ([]models.Course, error)
	FindProgress(ctx context.Context, studentID, lectureID uint) (*models.StudentProgress, error)
	FindProgressByStudent(ctx context.Context, studentID uint) ([]models.StudentProgress, error)
	UpsertProgress(ctx context.Context, row *models.StudentProgress) error
}
