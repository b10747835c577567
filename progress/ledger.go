package progress

import (
	"context"
	"errors"
	"sync"
	"time"

	"learncraft/grading"
	"learncraft/models"
)

type progressKey struct {
	studentID uint
	lectureID uint
}

// Ledger creates and updates StudentProgress rows. Writes for a given
// (student, lecture) pair are serialized through a per-key mutex so
// concurrent submissions cannot lose an attempt increment; the storage
// upsert handles the cross-process insert race on top of that.
type Ledger struct {
	store Store

	mu    sync.Mutex
	locks map[progressKey]*sync.Mutex

	now func() time.Time
}

func NewLedger(store Store) *Ledger {
	return &Ledger{
		store: store,
		locks: make(map[progressKey]*sync.Mutex),
		now:   time.Now,
	}
}

// keyLock returns the mutex serializing writes for one pair. Locks are kept
// for the life of the process; the key space is bounded by active
// student/lecture pairs.
func (l *Ledger) keyLock(key progressKey) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	return m
}

func (l *Ledger) findLecture(ctx context.Context, lectureID uint) (*models.Lecture, error) {
	lecture, err := l.store.FindLectureByID(ctx, lectureID)
	if err != nil {
		if errors.Is(err, ErrLectureNotFound) {
			return nil, err
		}
		return nil, storageErr("find lecture", err)
	}
	return lecture, nil
}

// RecordCompletion marks a reading lecture completed for a student.
// Idempotent: an already-completed row is returned unchanged, with its
// original CompletedAt. A row that exists but is not completed flips to
// completed now.
func (l *Ledger) RecordCompletion(ctx context.Context, studentID, lectureID uint) (*models.StudentProgress, error) {
	lecture, err := l.findLecture(ctx, lectureID)
	if err != nil {
		return nil, err
	}
	if lecture.Type == models.LectureTypeQuiz {
		return nil, ErrNotReadingLecture
	}

	lock := l.keyLock(progressKey{studentID, lectureID})
	lock.Lock()
	defer lock.Unlock()

	row, err := l.store.FindProgress(ctx, studentID, lectureID)
	if err != nil {
		return nil, storageErr("find progress", err)
	}
	if row != nil && row.IsCompleted {
		// re-completing is a no-op, not an error
		return row, nil
	}

	if row == nil {
		row = &models.StudentProgress{StudentID: studentID, LectureID: lectureID}
	}
	now := l.now()
	row.IsCompleted = true
	row.CompletedAt = &now

	if err := l.store.UpsertProgress(ctx, row); err != nil {
		return nil, storageErr("upsert progress", err)
	}
	return row, nil
}

// RecordQuizAttempt applies one graded quiz submission. The score always
// overwrites the stored one, even when lower; QuizAttempts increments from
// the prior stored value; IsCompleted is monotonic, so a failing attempt
// after a pass never revokes completion. CompletedAt is set only on the
// transition into the completed state.
func (l *Ledger) RecordQuizAttempt(ctx context.Context, studentID, lectureID uint, result *grading.Result) (*models.StudentProgress, error) {
	lecture, err := l.findLecture(ctx, lectureID)
	if err != nil {
		return nil, err
	}
	if lecture.Type != models.LectureTypeQuiz {
		return nil, ErrNotQuizLecture
	}

	lock := l.keyLock(progressKey{studentID, lectureID})
	lock.Lock()
	defer lock.Unlock()

	row, err := l.store.FindProgress(ctx, studentID, lectureID)
	if err != nil {
		return nil, storageErr("find progress", err)
	}
	if row == nil {
		row = &models.StudentProgress{StudentID: studentID, LectureID: lectureID}
	}

	score := result.Score
	row.QuizScore = &score
	row.QuizAttempts++

	if result.Passed && !row.IsCompleted {
		now := l.now()
		row.IsCompleted = true
		row.CompletedAt = &now
	}

	if err := l.store.UpsertProgress(ctx, row); err != nil {
		return nil, storageErr("upsert progress", err)
	}
	return row, nil
}
