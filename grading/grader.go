// Package grading scores quiz submissions. Grading is a pure computation
// over the questions and the submitted answer indices; it touches no shared
// state and does no I/O.
package grading

import "errors"

// PassingScore is the fixed percentage a quiz score must reach for the
// attempt to complete its lecture.
const PassingScore = 70.0

var (
	ErrEmptyQuiz           = errors.New("quiz has no questions")
	ErrAnswerCountMismatch = errors.New("number of answers must match number of questions")
)

// Question is the grading view of a quiz question.
type Question struct {
	ID            uint
	CorrectAnswer int
	OptionCount   int
}

// QuestionResult reports the outcome for one question, position-aligned
// with the submitted answers.
type QuestionResult struct {
	QuestionID      uint `json:"question_id"`
	SubmittedAnswer int  `json:"submitted_answer"`
	CorrectAnswer   int  `json:"correct_answer"`
	IsCorrect       bool `json:"is_correct"`
}

// Result is the outcome of grading one submission.
type Result struct {
	CorrectCount   int              `json:"correct_count"`
	TotalQuestions int              `json:"total_questions"`
	Score          float64          `json:"score"`
	Passed         bool             `json:"passed"`
	Results        []QuestionResult `json:"results"`
}

// Grade scores answers against questions. Answers are zero-based option
// indices; an out-of-range index is never correct. Fails with ErrEmptyQuiz
// when there are no questions and ErrAnswerCountMismatch when the answer
// count differs from the question count.
func Grade(questions []Question, answers []int) (*Result, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyQuiz
	}
	if len(answers) != len(questions) {
		return nil, ErrAnswerCountMismatch
	}

	correct := 0
	results := make([]QuestionResult, len(questions))
	for i, q := range questions {
		answer := answers[i]
		isCorrect := answer >= 0 && answer < q.OptionCount && answer == q.CorrectAnswer
		if isCorrect {
			correct++
		}
		results[i] = QuestionResult{
			QuestionID:      q.ID,
			SubmittedAnswer: answer,
			CorrectAnswer:   q.CorrectAnswer,
			IsCorrect:       isCorrect,
		}
	}

	score := float64(correct) / float64(len(questions)) * 100

	return &Result{
		CorrectCount:   correct,
		TotalQuestions: len(questions),
		Score:          score,
		Passed:         score >= PassingScore,
		Results:        results,
	}, nil
}
