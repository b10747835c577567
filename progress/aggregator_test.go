package progress

import (
	"context"
	"testing"
	"time"

	"learncraft/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lecture(id, courseID uint, order int, lectureType models.LectureType) models.Lecture {
	return models.Lecture{
		Model:      gormModel(id),
		CourseID:   courseID,
		Type:       lectureType,
		OrderIndex: order,
	}
}

func completedRow(studentID, lectureID uint) models.StudentProgress {
	now := time.Now()
	return models.StudentProgress{
		StudentID:   studentID,
		LectureID:   lectureID,
		IsCompleted: true,
		CompletedAt: &now,
	}
}

func TestBuildProgressViewCountsAndDefaults(t *testing.T) {
	store := newFakeStore()
	store.courses = []models.Course{
		{
			Model:       gormModel(1),
			Title:       "Go Basics",
			Description: "An introduction",
			Lectures: []models.Lecture{
				lecture(1, 1, 0, models.LectureTypeReading),
				lecture(2, 1, 1, models.LectureTypeReading),
				lecture(3, 1, 2, models.LectureTypeQuiz),
				lecture(4, 1, 3, models.LectureTypeReading),
				lecture(5, 1, 4, models.LectureTypeQuiz),
			},
		},
	}
	store.rows[pairKey{7, 1}] = completedRow(7, 1)
	store.rows[pairKey{7, 3}] = completedRow(7, 3)
	// another student's rows must not leak into the view
	store.rows[pairKey{8, 2}] = completedRow(8, 2)

	aggregator := NewAggregator(store)

	views, err := aggregator.BuildProgressView(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, views, 1)

	view := views[0]
	assert.Equal(t, uint(1), view.Course.ID)
	assert.Equal(t, "Go Basics", view.Course.Title)
	assert.Equal(t, 2, view.CompletedCount)
	assert.Equal(t, 5, view.TotalCount)
	assert.Equal(t, 40, view.Percentage)
	require.Len(t, view.Lectures, 5)

	// lectures without a stored row report the zero snapshot
	second := view.Lectures[1]
	assert.False(t, second.Progress.IsCompleted)
	assert.Nil(t, second.Progress.QuizScore)
	assert.Equal(t, 0, second.Progress.QuizAttempts)
}

func TestBuildProgressViewOrdersLectures(t *testing.T) {
	store := newFakeStore()
	store.courses = []models.Course{
		{
			Model: gormModel(1),
			Lectures: []models.Lecture{
				lecture(4, 1, 2, models.LectureTypeReading),
				lecture(1, 1, 5, models.LectureTypeReading),
				lecture(2, 1, 2, models.LectureTypeQuiz),
				lecture(3, 1, 0, models.LectureTypeReading),
			},
		},
	}
	aggregator := NewAggregator(store)

	views, err := aggregator.BuildProgressView(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, views, 1)

	var got []uint
	for _, paired := range views[0].Lectures {
		got = append(got, paired.Lecture.ID)
	}
	// order ascending; equal orders fall back to insertion (id) order
	assert.Equal(t, []uint{3, 2, 4, 1}, got)
}

func TestBuildProgressViewPercentageRounding(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		completed int
		want      int
	}{
		{name: "empty course", total: 0, completed: 0, want: 0},
		{name: "one third", total: 3, completed: 1, want: 33},
		{name: "two thirds", total: 3, completed: 2, want: 67},
		{name: "all done", total: 4, completed: 4, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			course := models.Course{Model: gormModel(1)}
			for i := 0; i < tt.total; i++ {
				lectureID := uint(i + 1)
				course.Lectures = append(course.Lectures, lecture(lectureID, 1, i, models.LectureTypeReading))
				if i < tt.completed {
					store.rows[pairKey{1, lectureID}] = completedRow(1, lectureID)
				}
			}
			store.courses = []models.Course{course}
			aggregator := NewAggregator(store)

			views, err := aggregator.BuildProgressView(context.Background(), 1)
			require.NoError(t, err)
			require.Len(t, views, 1)
			assert.Equal(t, tt.completed, views[0].CompletedCount)
			assert.Equal(t, tt.total, views[0].TotalCount)
			assert.Equal(t, tt.want, views[0].Percentage)
		})
	}
}

func TestBuildCourseProgressView(t *testing.T) {
	store := newFakeStore()
	store.courses = []models.Course{
		{Model: gormModel(1), Title: "First"},
		{
			Model: gormModel(2),
			Title: "Second",
			Lectures: []models.Lecture{
				lecture(1, 2, 0, models.LectureTypeReading),
				lecture(2, 2, 1, models.LectureTypeQuiz),
			},
		},
	}
	score := 85.0
	store.rows[pairKey{3, 2}] = models.StudentProgress{
		StudentID:    3,
		LectureID:    2,
		IsCompleted:  true,
		QuizScore:    &score,
		QuizAttempts: 2,
	}
	aggregator := NewAggregator(store)

	view, err := aggregator.BuildCourseProgressView(context.Background(), 3, 2)
	require.NoError(t, err)
	assert.Equal(t, "Second", view.Course.Title)
	assert.Equal(t, 1, view.CompletedCount)
	assert.Equal(t, 2, view.TotalCount)
	assert.Equal(t, 50, view.Percentage)

	quizProgress := view.Lectures[1].Progress
	require.NotNil(t, quizProgress.QuizScore)
	assert.Equal(t, 85.0, *quizProgress.QuizScore)
	assert.Equal(t, 2, quizProgress.QuizAttempts)
}

func TestBuildCourseProgressViewNotFound(t *testing.T) {
	store := newFakeStore()
	aggregator := NewAggregator(store)

	view, err := aggregator.BuildCourseProgressView(context.Background(), 1, 42)
	assert.Nil(t, view)
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestBuildProgressViewWrapsStorageFailures(t *testing.T) {
	store := newFakeStore()
	store.findErr = assert.AnError
	aggregator := NewAggregator(store)

	_, err := aggregator.BuildProgressView(context.Background(), 1)
	require.Error(t, err)

	var storageErr *StorageError
	assert.ErrorAs(t, err, &storageErr)
}
