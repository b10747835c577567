package progress

import (
	"context"
	"sync"

	"learncraft/models"

	"gorm.io/gorm"
)

func gormModel(id uint) gorm.Model {
	return gorm.Model{ID: id}
}

type pairKey struct {
	studentID uint
	lectureID uint
}

// fakeStore is an in-memory Store for ledger and aggregator tests.
type fakeStore struct {
	mu sync.Mutex

	lectures  map[uint]models.Lecture
	questions map[uint][]models.QuizQuestion
	courses   []models.Course
	rows      map[pairKey]models.StudentProgress

	upsertCalls int
	upsertErr   error
	findErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		lectures:  make(map[uint]models.Lecture),
		questions: make(map[uint][]models.QuizQuestion),
		rows:      make(map[pairKey]models.StudentProgress),
	}
}

func (f *fakeStore) addLecture(id uint, lectureType models.LectureType) {
	f.lectures[id] = models.Lecture{Model: gormModel(id), Type: lectureType}
}

func (f *fakeStore) FindLectureByID(_ context.Context, lectureID uint) (*models.Lecture, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lecture, ok := f.lectures[lectureID]
	if !ok {
		return nil, ErrLectureNotFound
	}
	return &lecture, nil
}

func (f *fakeStore) FindQuestionsByLecture(_ context.Context, lectureID uint) ([]models.QuizQuestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.questions[lectureID], nil
}

func (f *fakeStore) FindCoursesWithLectures(_ context.Context) ([]models.Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.courses, nil
}

func (f *fakeStore) FindProgress(_ context.Context, studentID, lectureID uint) (*models.StudentProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	row, ok := f.rows[pairKey{studentID, lectureID}]
	if !ok {
		return nil, nil
	}
	copied := row
	return &copied, nil
}

func (f *fakeStore) FindProgressByStudent(_ context.Context, studentID uint) ([]models.StudentProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	var rows []models.StudentProgress
	for key, row := range f.rows {
		if key.studentID == studentID {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (f *fakeStore) UpsertProgress(_ context.Context, row *models.StudentProgress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upsertCalls++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.rows[pairKey{row.StudentID, row.LectureID}] = *row
	return nil
}
