package courseController

import (
	"learncraft/database"
	"learncraft/middleware"
	"learncraft/models"
	courseValidator "learncraft/validators/course"
	lectureValidator "learncraft/validators/lecture"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetAllCourses lists every course with its ordered lectures. All courses
// are visible to all authenticated users; there is no enrollment concept.
func GetAllCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var courses []models.Course
	err := database.Database.Db.
		Where("is_deleted = ?", false).
		Preload("Lectures", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("order_index asc, id asc")
		}).
		Order("created_at desc").
		Find(&courses).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// GetCourseDetails returns one course with lectures and, for quiz lectures,
// their questions with the correct answers stripped.
func GetCourseDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course models.Course
	err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", courseID, false).
		Preload("Lectures", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("order_index asc, id asc")
		}).
		First(&course).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Attach questions without answers for quiz lectures
	questionsByLecture := make(map[uint][]fiber.Map)
	for _, lecture := range course.Lectures {
		if lecture.Type != models.LectureTypeQuiz {
			continue
		}
		var questions []models.QuizQuestion
		database.Database.Db.
			Where("lecture_id = ? AND is_deleted = ?", lecture.ID, false).
			Order("id asc").
			Find(&questions)
		sanitized := make([]fiber.Map, len(questions))
		for i, question := range questions {
			sanitized[i] = fiber.Map{
				"id":            question.ID,
				"question_text": question.QuestionText,
				"options":       question.Options,
			}
		}
		questionsByLecture[lecture.ID] = sanitized
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", fiber.Map{
		"course":               course,
		"questions_by_lecture": questionsByLecture,
	})
}

// CreateCourse creates a course owned by the calling instructor.
func CreateCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := models.Course{
		Title:        reqData.Title,
		Description:  reqData.Description,
		InstructorID: userID,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// GetMyCourses lists the calling instructor's own courses.
func GetMyCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var courses []models.Course
	err := database.Database.Db.
		Where("instructor_id = ? AND is_deleted = ?", userID, false).
		Preload("Lectures", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("order_index asc, id asc")
		}).
		Order("created_at desc").
		Find(&courses).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// CreateLecture adds a lecture to a course owned by the caller. The lecture
// type is fixed here and never changes afterwards.
func CreateLecture(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if course.InstructorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to modify this course!", nil)
	}

	reqData, ok := c.Locals("validatedLecture").(*lectureValidator.LectureRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	order := 0
	if reqData.Order != nil {
		order = *reqData.Order
	}

	lecture := models.Lecture{
		CourseID:    uint(courseID),
		Title:       reqData.Title,
		Type:        reqData.LectureType,
		Description: reqData.Description,
		OrderIndex:  order,
	}
	// content only applies to reading lectures
	if reqData.LectureType == models.LectureTypeReading {
		lecture.Content = reqData.Content
	}

	if err := database.Database.Db.Create(&lecture).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lecture!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lecture created successfully!", lecture)
}

// DeleteCourse removes a course and everything beneath it. The cascade runs
// questions, then progress, then lectures, then the course, in one
// transaction, so no orphaned rows survive a partial failure.
func DeleteCourse(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(int)

	var course models.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if course.InstructorID != userID {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to delete this course!", nil)
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		var lectureIDs []uint
		if err := tx.Model(&models.Lecture{}).
			Where("course_id = ? AND is_deleted = ?", courseID, false).
			Pluck("id", &lectureIDs).Error; err != nil {
			return err
		}

		if len(lectureIDs) > 0 {
			if err := tx.Model(&models.QuizQuestion{}).
				Where("lecture_id IN ?", lectureIDs).
				Update("is_deleted", true).Error; err != nil {
				return err
			}
			if err := tx.Where("lecture_id IN ?", lectureIDs).
				Delete(&models.StudentProgress{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Lecture{}).
				Where("id IN ?", lectureIDs).
				Update("is_deleted", true).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Course{}).
			Where("id = ?", courseID).
			Update("is_deleted", true).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
