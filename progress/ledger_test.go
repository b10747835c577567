package progress

import (
	"context"
	"sync"
	"testing"
	"time"

	"learncraft/grading"
	"learncraft/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(store Store, now time.Time) *Ledger {
	ledger := NewLedger(store)
	ledger.now = func() time.Time { return now }
	return ledger
}

func passedResult(score float64) *grading.Result {
	return &grading.Result{Score: score, Passed: score >= grading.PassingScore}
}

func TestRecordCompletionCreatesRow(t *testing.T) {
	store := newFakeStore()
	store.addLecture(10, models.LectureTypeReading)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ledger := newTestLedger(store, now)

	row, err := ledger.RecordCompletion(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.True(t, row.IsCompleted)
	require.NotNil(t, row.CompletedAt)
	assert.Equal(t, now, *row.CompletedAt)
	assert.Equal(t, 0, row.QuizAttempts)
	assert.Nil(t, row.QuizScore)
	assert.Equal(t, 1, store.upsertCalls)
}

func TestRecordCompletionIsIdempotent(t *testing.T) {
	store := newFakeStore()
	store.addLecture(10, models.LectureTypeReading)
	firstNow := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ledger := newTestLedger(store, firstNow)

	first, err := ledger.RecordCompletion(context.Background(), 1, 10)
	require.NoError(t, err)

	// a later re-completion must not move CompletedAt or write anything
	ledger.now = func() time.Time { return firstNow.Add(48 * time.Hour) }
	second, err := ledger.RecordCompletion(context.Background(), 1, 10)
	require.NoError(t, err)

	assert.True(t, second.IsCompleted)
	require.NotNil(t, second.CompletedAt)
	assert.Equal(t, *first.CompletedAt, *second.CompletedAt)
	assert.Equal(t, 1, store.upsertCalls)
}

func TestRecordCompletionFlipsIncompleteRow(t *testing.T) {
	store := newFakeStore()
	store.addLecture(10, models.LectureTypeReading)
	store.rows[pairKey{1, 10}] = models.StudentProgress{StudentID: 1, LectureID: 10}
	now := time.Date(2025, 3, 2, 8, 0, 0, 0, time.UTC)
	ledger := newTestLedger(store, now)

	row, err := ledger.RecordCompletion(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.True(t, row.IsCompleted)
	require.NotNil(t, row.CompletedAt)
	assert.Equal(t, now, *row.CompletedAt)
}

func TestRecordCompletionRejectsQuizLecture(t *testing.T) {
	store := newFakeStore()
	store.addLecture(20, models.LectureTypeQuiz)
	ledger := newTestLedger(store, time.Now())

	row, err := ledger.RecordCompletion(context.Background(), 1, 20)
	assert.Nil(t, row)
	assert.ErrorIs(t, err, ErrNotReadingLecture)
	assert.Equal(t, 0, store.upsertCalls)
}

func TestRecordCompletionLectureNotFound(t *testing.T) {
	store := newFakeStore()
	ledger := newTestLedger(store, time.Now())

	_, err := ledger.RecordCompletion(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrLectureNotFound)
}

func TestRecordQuizAttemptFirstAttempt(t *testing.T) {
	store := newFakeStore()
	store.addLecture(20, models.LectureTypeQuiz)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ledger := newTestLedger(store, now)

	row, err := ledger.RecordQuizAttempt(context.Background(), 1, 20, passedResult(75))
	require.NoError(t, err)

	assert.True(t, row.IsCompleted)
	require.NotNil(t, row.CompletedAt)
	assert.Equal(t, now, *row.CompletedAt)
	require.NotNil(t, row.QuizScore)
	assert.Equal(t, 75.0, *row.QuizScore)
	assert.Equal(t, 1, row.QuizAttempts)
}

func TestRecordQuizAttemptCompletionIsMonotonic(t *testing.T) {
	store := newFakeStore()
	store.addLecture(20, models.LectureTypeQuiz)
	firstNow := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ledger := newTestLedger(store, firstNow)

	first, err := ledger.RecordQuizAttempt(context.Background(), 1, 20, passedResult(80))
	require.NoError(t, err)
	require.True(t, first.IsCompleted)

	// a failing attempt afterwards overwrites the score but never the
	// completed state or its timestamp
	ledger.now = func() time.Time { return firstNow.Add(time.Hour) }
	second, err := ledger.RecordQuizAttempt(context.Background(), 1, 20, passedResult(25))
	require.NoError(t, err)

	assert.True(t, second.IsCompleted)
	require.NotNil(t, second.CompletedAt)
	assert.Equal(t, *first.CompletedAt, *second.CompletedAt)
	require.NotNil(t, second.QuizScore)
	assert.Equal(t, 25.0, *second.QuizScore)
	assert.Equal(t, 2, second.QuizAttempts)
}

func TestRecordQuizAttemptFailingAttemptsOnly(t *testing.T) {
	store := newFakeStore()
	store.addLecture(20, models.LectureTypeQuiz)
	ledger := newTestLedger(store, time.Now())

	for i := 0; i < 3; i++ {
		row, err := ledger.RecordQuizAttempt(context.Background(), 1, 20, passedResult(40))
		require.NoError(t, err)
		assert.False(t, row.IsCompleted)
		assert.Nil(t, row.CompletedAt)
		assert.Equal(t, i+1, row.QuizAttempts)
	}
}

func TestRecordQuizAttemptRejectsReadingLecture(t *testing.T) {
	store := newFakeStore()
	store.addLecture(10, models.LectureTypeReading)
	ledger := newTestLedger(store, time.Now())

	row, err := ledger.RecordQuizAttempt(context.Background(), 1, 10, passedResult(100))
	assert.Nil(t, row)
	assert.ErrorIs(t, err, ErrNotQuizLecture)
	assert.Equal(t, 0, store.upsertCalls)
}

func TestRecordQuizAttemptWrapsStorageFailures(t *testing.T) {
	store := newFakeStore()
	store.addLecture(20, models.LectureTypeQuiz)
	store.upsertErr = assert.AnError
	ledger := newTestLedger(store, time.Now())

	_, err := ledger.RecordQuizAttempt(context.Background(), 1, 20, passedResult(90))
	require.Error(t, err)

	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestRecordQuizAttemptSerializesPerPair(t *testing.T) {
	store := newFakeStore()
	store.addLecture(20, models.LectureTypeQuiz)
	ledger := newTestLedger(store, time.Now())

	const attempts = 50
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			_, err := ledger.RecordQuizAttempt(context.Background(), 1, 20, passedResult(50))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	row, err := store.FindProgress(context.Background(), 1, 20)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, attempts, row.QuizAttempts)
}
