package lectureController

import (
	"learncraft/config"
	"learncraft/database"
	"learncraft/middleware"
	"learncraft/models"
	"learncraft/utils"
	lectureValidator "learncraft/validators/lecture"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// findOwnedLecture loads a lecture and verifies the calling instructor owns
// its course. Ownership failures report 403, missing lectures 404.
func findOwnedLecture(c *fiber.Ctx, instructorID uint, lectureID int) (*models.Lecture, error) {
	var lecture models.Lecture
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lectureID, false).First(&lecture).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lecture not found!", nil)
	}

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lecture.CourseID, false).First(&course).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if course.InstructorID != instructorID {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to modify this lecture!", nil)
	}
	return &lecture, nil
}

// UpdateLecture updates the title and, for reading lectures, the content.
// The lecture type never changes after creation.
func UpdateLecture(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lectureID := c.Locals("lectureID").(int)

	lecture, err := findOwnedLecture(c, userID, lectureID)
	if err != nil {
		return err
	}

	reqData, ok := c.Locals("validatedLectureUpdate").(*lectureValidator.LectureUpdateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lecture.Title = reqData.Title
	if lecture.Type == models.LectureTypeReading && reqData.Content != nil {
		lecture.Content = reqData.Content
	}

	if err := database.Database.Db.Save(lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lecture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture updated successfully!", lecture)
}

// ReplaceQuizQuestions swaps the whole question set of a quiz lecture.
func ReplaceQuizQuestions(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lectureID := c.Locals("lectureID").(int)

	lecture, err := findOwnedLecture(c, userID, lectureID)
	if err != nil {
		return err
	}
	if lecture.Type != models.LectureTypeQuiz {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This endpoint is only for quiz lectures!", nil)
	}

	reqData, ok := c.Locals("validatedQuestions").([]lectureValidator.QuizQuestionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var created []models.QuizQuestion
	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.QuizQuestion{}).
			Where("lecture_id = ? AND is_deleted = ?", lecture.ID, false).
			Update("is_deleted", true).Error; err != nil {
			return err
		}

		for _, question := range reqData {
			options, err := models.EncodeOptions(question.Options)
			if err != nil {
				return err
			}
			row := models.QuizQuestion{
				LectureID:     lecture.ID,
				QuestionText:  question.QuestionText,
				Options:       options,
				CorrectAnswer: question.CorrectAnswer,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			created = append(created, row)
		}
		return nil
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update quiz questions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz questions updated successfully!", fiber.Map{
		"questions": created,
	})
}

// UploadAttachment stores one uploaded file and appends its descriptor to
// the lecture's attachment list.
func UploadAttachment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lectureID := c.Locals("lectureID").(int)

	lecture, err := findOwnedLecture(c, userID, lectureID)
	if err != nil {
		return err
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "A file is required!", nil)
	}

	fileName, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store file!", nil)
	}

	attachment := models.Attachment{
		FileName:     fileName,
		OriginalName: file.Filename,
		MimeType:     file.Header.Get("Content-Type"),
		Size:         file.Size,
	}

	attachments, err := models.AppendAttachment(lecture.Attachments, attachment)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store attachment!", nil)
	}
	lecture.Attachments = attachments

	if err := database.Database.Db.Save(lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lecture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attachment uploaded successfully!", fiber.Map{
		"lecture": lecture,
		"url":     utils.GetFileURL(fileName),
	})
}

// DeleteLecture removes a lecture, cascading questions first, then progress
// rows, then the lecture itself.
func DeleteLecture(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	lectureID := c.Locals("lectureID").(int)

	lecture, err := findOwnedLecture(c, userID, lectureID)
	if err != nil {
		return err
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.QuizQuestion{}).
			Where("lecture_id = ?", lecture.ID).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		if err := tx.Where("lecture_id = ?", lecture.ID).
			Delete(&models.StudentProgress{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Lecture{}).
			Where("id = ?", lecture.ID).
			Update("is_deleted", true).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lecture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture deleted successfully!", nil)
}
