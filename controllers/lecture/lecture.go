package lectureController

import (
	"errors"

	"learncraft/database"
	"learncraft/grading"
	"learncraft/middleware"
	"learncraft/models"
	"learncraft/progress"

	"github.com/gofiber/fiber/v2"
)

func currentStudent(c *fiber.Ctx) (uint, error) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return 0, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return 0, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	return userID, nil
}

func sanitizeQuestions(questions []models.QuizQuestion) []fiber.Map {
	sanitized := make([]fiber.Map, len(questions))
	for i, question := range questions {
		sanitized[i] = fiber.Map{
			"id":            question.ID,
			"question_text": question.QuestionText,
			"options":       question.Options,
		}
	}
	return sanitized
}

// GetLecture returns a lecture with the student's progress, defaulted when
// no row exists yet. Quiz lectures include their questions without the
// correct answers.
func GetLecture(c *fiber.Ctx) error {
	studentID, err := currentStudent(c)
	if err != nil {
		return err
	}

	lectureID := c.Locals("lectureID").(int)

	var lecture models.Lecture
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lectureID, false).First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	var questions []fiber.Map
	if lecture.Type == models.LectureTypeQuiz {
		var stored []models.QuizQuestion
		database.Database.Db.
			Where("lecture_id = ? AND is_deleted = ?", lecture.ID, false).
			Order("id asc").
			Find(&stored)
		questions = sanitizeQuestions(stored)
	}

	var row *models.StudentProgress
	var storedRow models.StudentProgress
	if err := database.Database.Db.Where("student_id = ? AND lecture_id = ?", studentID, lecture.ID).First(&storedRow).Error; err == nil {
		row = &storedRow
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture fetched successfully!", fiber.Map{
		"lecture":   lecture,
		"questions": questions,
		"progress":  progress.SnapshotOf(row),
	})
}

// CompleteLecture marks a reading lecture completed. Completing an
// already-completed lecture is a no-op that returns the existing record.
func CompleteLecture(c *fiber.Ctx) error {
	studentID, err := currentStudent(c)
	if err != nil {
		return err
	}

	lectureID := c.Locals("lectureID").(int)

	row, err := database.Ledger.RecordCompletion(c.Context(), studentID, uint(lectureID))
	if err != nil {
		switch {
		case errors.Is(err, progress.ErrLectureNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
		case errors.Is(err, progress.ErrNotReadingLecture):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This endpoint is only for reading lectures!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record completion!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture marked as completed!", fiber.Map{
		"progress": row,
	})
}

// SubmitQuiz grades a quiz submission and records the attempt. A partial
// submission is rejected outright rather than graded with missing answers
// treated as wrong, so no attempt is recorded that the student did not
// intend to finalize.
func SubmitQuiz(c *fiber.Ctx) error {
	studentID, err := currentStudent(c)
	if err != nil {
		return err
	}

	lectureID := c.Locals("lectureID").(int)
	answers := c.Locals("validatedAnswers").([]int)

	var lecture models.Lecture
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lectureID, false).First(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}
	if lecture.Type != models.LectureTypeQuiz {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This endpoint is only for quiz lectures!", nil)
	}

	var stored []models.QuizQuestion
	if err := database.Database.Db.
		Where("lecture_id = ? AND is_deleted = ?", lecture.ID, false).
		Order("id asc").
		Find(&stored).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	questions := make([]grading.Question, len(stored))
	for i, question := range stored {
		questions[i] = grading.Question{
			ID:            question.ID,
			CorrectAnswer: question.CorrectAnswer,
			OptionCount:   len(question.OptionList()),
		}
	}

	result, err := grading.Grade(questions, answers)
	if err != nil {
		switch {
		case errors.Is(err, grading.ErrEmptyQuiz):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No questions found for this quiz!", nil)
		case errors.Is(err, grading.ErrAnswerCountMismatch):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Number of answers must match number of questions!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to grade quiz!", nil)
		}
	}

	row, err := database.Ledger.RecordQuizAttempt(c.Context(), studentID, uint(lectureID), result)
	if err != nil {
		switch {
		case errors.Is(err, progress.ErrLectureNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
		case errors.Is(err, progress.ErrNotQuizLecture):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This endpoint is only for quiz lectures!", nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record quiz attempt!", nil)
		}
	}

	message := "Quiz failed. Try again."
	if result.Passed {
		message = "Quiz passed!"
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"score":           result.Score,
		"passed":          result.Passed,
		"correct_answers": result.CorrectCount,
		"total_questions": result.TotalQuestions,
		"results":         result.Results,
		"progress":        row,
	})
}
