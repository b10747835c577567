package progress

import (
	"context"
	"math"
	"sort"
	"time"

	"learncraft/models"
)

// Snapshot is the progress state reported for one lecture. Lectures with no
// stored row report the zero state: not completed, no score, zero attempts.
type Snapshot struct {
	IsCompleted  bool       `json:"is_completed"`
	CompletedAt  *time.Time `json:"completed_at"`
	QuizScore    *float64   `json:"quiz_score"`
	QuizAttempts int        `json:"quiz_attempts"`
}

// SnapshotOf converts a stored row into a Snapshot, defaulting to the zero
// state when no row exists.
func SnapshotOf(row *models.StudentProgress) Snapshot {
	if row == nil {
		return Snapshot{}
	}
	return Snapshot{
		IsCompleted:  row.IsCompleted,
		CompletedAt:  row.CompletedAt,
		QuizScore:    row.QuizScore,
		QuizAttempts: row.QuizAttempts,
	}
}

// LectureProgress pairs one lecture with the student's progress snapshot.
type LectureProgress struct {
	Lecture  models.Lecture `json:"lecture"`
	Progress Snapshot       `json:"progress"`
}

// CourseSummary carries the course identity part of a progress view.
type CourseSummary struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CourseProgress is the rolled-up view of one course for one student.
type CourseProgress struct {
	Course         CourseSummary     `json:"course"`
	Lectures       []LectureProgress `json:"lectures"`
	CompletedCount int               `json:"completed_count"`
	TotalCount     int               `json:"total_count"`
	Percentage     int               `json:"percentage"`
}

// Aggregator builds per-course progress views from the entity store. Its
// reads are plain snapshots: they are not transactionally consistent with
// concurrent ledger writes, which is acceptable for dashboard views.
type Aggregator struct {
	store Store
}

func NewAggregator(store Store) *Aggregator {
	return &Aggregator{store: store}
}

// BuildProgressView returns a progress summary for every course in the
// system. The platform has no enrollment concept: all courses are visible
// to all students.
func (a *Aggregator) BuildProgressView(ctx context.Context, studentID uint) ([]CourseProgress, error) {
	courses, err := a.store.FindCoursesWithLectures(ctx)
	if err != nil {
		return nil, storageErr("find courses", err)
	}

	byLecture, err := a.progressByLecture(ctx, studentID)
	if err != nil {
		return nil, err
	}

	views := make([]CourseProgress, len(courses))
	for i, course := range courses {
		views[i] = buildCourseView(course, byLecture)
	}
	return views, nil
}

// BuildCourseProgressView is the one-course variant of BuildProgressView.
func (a *Aggregator) BuildCourseProgressView(ctx context.Context, studentID, courseID uint) (*CourseProgress, error) {
	courses, err := a.store.FindCoursesWithLectures(ctx)
	if err != nil {
		return nil, storageErr("find courses", err)
	}

	var course *models.Course
	for i := range courses {
		if courses[i].ID == courseID {
			course = &courses[i]
			break
		}
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	byLecture, err := a.progressByLecture(ctx, studentID)
	if err != nil {
		return nil, err
	}

	view := buildCourseView(*course, byLecture)
	return &view, nil
}

func (a *Aggregator) progressByLecture(ctx context.Context, studentID uint) (map[uint]models.StudentProgress, error) {
	rows, err := a.store.FindProgressByStudent(ctx, studentID)
	if err != nil {
		return nil, storageErr("find progress", err)
	}
	byLecture := make(map[uint]models.StudentProgress, len(rows))
	for _, row := range rows {
		byLecture[row.LectureID] = row
	}
	return byLecture, nil
}

func buildCourseView(course models.Course, byLecture map[uint]models.StudentProgress) CourseProgress {
	lectures := make([]models.Lecture, len(course.Lectures))
	copy(lectures, course.Lectures)
	// order ascending, insertion order (id) breaking ties
	sort.SliceStable(lectures, func(i, j int) bool {
		if lectures[i].OrderIndex != lectures[j].OrderIndex {
			return lectures[i].OrderIndex < lectures[j].OrderIndex
		}
		return lectures[i].ID < lectures[j].ID
	})

	completed := 0
	paired := make([]LectureProgress, len(lectures))
	for i, lecture := range lectures {
		snapshot := Snapshot{}
		if row, ok := byLecture[lecture.ID]; ok {
			snapshot = SnapshotOf(&row)
		}
		if snapshot.IsCompleted {
			completed++
		}
		paired[i] = LectureProgress{Lecture: lecture, Progress: snapshot}
	}

	percentage := 0
	if len(lectures) > 0 {
		percentage = int(math.Round(float64(completed) / float64(len(lectures)) * 100))
	}

	return CourseProgress{
		Course: CourseSummary{
			ID:          course.ID,
			Title:       course.Title,
			Description: course.Description,
		},
		Lectures:       paired,
		CompletedCount: completed,
		TotalCount:     len(lectures),
		Percentage:     percentage,
	}
}
