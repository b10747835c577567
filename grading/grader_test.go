package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourQuestions() []Question {
	return []Question{
		{ID: 1, CorrectAnswer: 0, OptionCount: 4},
		{ID: 2, CorrectAnswer: 1, OptionCount: 4},
		{ID: 3, CorrectAnswer: 2, OptionCount: 4},
		{ID: 4, CorrectAnswer: 3, OptionCount: 4},
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		name        string
		questions   []Question
		answers     []int
		wantCorrect int
		wantScore   float64
		wantPassed  bool
	}{
		{
			name:        "three of four correct passes",
			questions:   fourQuestions(),
			answers:     []int{0, 1, 2, 0},
			wantCorrect: 3,
			wantScore:   75.0,
			wantPassed:  true,
		},
		{
			name:        "one of four correct fails",
			questions:   fourQuestions(),
			answers:     []int{1, 1, 1, 1},
			wantCorrect: 1,
			wantScore:   25.0,
			wantPassed:  false,
		},
		{
			name: "exactly at the passing threshold",
			questions: []Question{
				{ID: 1, CorrectAnswer: 0, OptionCount: 2},
				{ID: 2, CorrectAnswer: 0, OptionCount: 2},
				{ID: 3, CorrectAnswer: 0, OptionCount: 2},
				{ID: 4, CorrectAnswer: 0, OptionCount: 2},
				{ID: 5, CorrectAnswer: 0, OptionCount: 2},
				{ID: 6, CorrectAnswer: 0, OptionCount: 2},
				{ID: 7, CorrectAnswer: 0, OptionCount: 2},
				{ID: 8, CorrectAnswer: 1, OptionCount: 2},
				{ID: 9, CorrectAnswer: 1, OptionCount: 2},
				{ID: 10, CorrectAnswer: 1, OptionCount: 2},
			},
			answers:     []int{0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			wantCorrect: 7,
			wantScore:   70.0,
			wantPassed:  true,
		},
		{
			name:        "all correct",
			questions:   fourQuestions(),
			answers:     []int{0, 1, 2, 3},
			wantCorrect: 4,
			wantScore:   100.0,
			wantPassed:  true,
		},
		{
			name:        "all wrong",
			questions:   fourQuestions(),
			answers:     []int{3, 2, 1, 0},
			wantCorrect: 0,
			wantScore:   0.0,
			wantPassed:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Grade(tt.questions, tt.answers)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCorrect, result.CorrectCount)
			assert.Equal(t, len(tt.questions), result.TotalQuestions)
			assert.InDelta(t, tt.wantScore, result.Score, 1e-9)
			assert.Equal(t, tt.wantPassed, result.Passed)
			assert.Len(t, result.Results, len(tt.questions))
		})
	}
}

func TestGradeEmptyQuiz(t *testing.T) {
	result, err := Grade(nil, nil)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrEmptyQuiz)
}

func TestGradeAnswerCountMismatch(t *testing.T) {
	result, err := Grade(fourQuestions(), []int{0, 1, 2})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrAnswerCountMismatch)

	result, err = Grade(fourQuestions(), []int{0, 1, 2, 3, 0})
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrAnswerCountMismatch)
}

func TestGradeOutOfRangeAnswerNeverCorrect(t *testing.T) {
	questions := []Question{{ID: 1, CorrectAnswer: 7, OptionCount: 3}}

	// the stored answer itself is out of range here; even a matching
	// submission must not count
	result, err := Grade(questions, []int{7})
	require.NoError(t, err)
	assert.Equal(t, 0, result.CorrectCount)
	assert.False(t, result.Results[0].IsCorrect)

	result, err = Grade([]Question{{ID: 1, CorrectAnswer: 0, OptionCount: 3}}, []int{-1})
	require.NoError(t, err)
	assert.Equal(t, 0, result.CorrectCount)
}

func TestGradePerQuestionResultsAligned(t *testing.T) {
	result, err := Grade(fourQuestions(), []int{0, 3, 2, 1})
	require.NoError(t, err)

	require.Len(t, result.Results, 4)
	for i, questionResult := range result.Results {
		assert.Equal(t, uint(i+1), questionResult.QuestionID)
		assert.Equal(t, i, questionResult.CorrectAnswer)
	}
	assert.True(t, result.Results[0].IsCorrect)
	assert.False(t, result.Results[1].IsCorrect)
	assert.True(t, result.Results[2].IsCorrect)
	assert.False(t, result.Results[3].IsCorrect)
	assert.Equal(t, 3, result.Results[1].SubmittedAnswer)
}
