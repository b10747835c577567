package lectureValidator

import (
	"strconv"
	"strings"

	"learncraft/middleware"
	"learncraft/models"

	"github.com/gofiber/fiber/v2"
)

// LectureID validates the :lecture_id path parameter and stores it as an int.
func LectureID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		idStr := strings.TrimSpace(c.Params("lecture_id"))
		if idStr == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lecture ID is required in the URL!", nil)
		}

		id, err := strconv.Atoi(idStr)
		if err != nil || id < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lecture ID!", nil)
		}

		c.Locals("lectureID", id)
		return c.Next()
	}
}

// normalizeLectureType maps the accepted API spellings onto the stored enum.
// "text-document" is an accepted alias for a reading lecture.
func normalizeLectureType(raw string) (models.LectureType, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "reading", "text-document":
		return models.LectureTypeReading, true
	case "quiz":
		return models.LectureTypeQuiz, true
	default:
		return "", false
	}
}

type LectureRequest struct {
	Title       string  `json:"title"`
	Type        string  `json:"type"`
	Content     *string `json:"content"`
	Description *string `json:"description"`
	Order       *int    `json:"order"`

	// set by the validator after normalization
	LectureType models.LectureType `json:"-"`
}

func CreateLecture() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LectureRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) > 200 {
			errors["title"] = "Title must not exceed 200 characters!"
		}

		lectureType, ok := normalizeLectureType(reqData.Type)
		if !ok {
			errors["type"] = "Type must be either reading, text-document, or quiz!"
		}
		reqData.LectureType = lectureType

		if reqData.Order != nil && *reqData.Order < 0 {
			errors["order"] = "Order must be a non-negative integer!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLecture", reqData)
		return c.Next()
	}
}

// LectureUpdateRequest is the payload for editing a lecture's title and,
// for reading lectures, its content.
type LectureUpdateRequest struct {
	Title   string  `json:"title"`
	Content *string `json:"content"`
}

func UpdateLecture() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(LectureUpdateRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		reqData.Title = strings.TrimSpace(reqData.Title)
		if reqData.Title == "" {
			errors["title"] = "Title is required!"
		} else if len(reqData.Title) > 200 {
			errors["title"] = "Title must not exceed 200 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLectureUpdate", reqData)
		return c.Next()
	}
}

type QuizQuestionRequest struct {
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

func ReplaceQuizQuestions() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Questions []QuizQuestionRequest `json:"questions"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.Questions) == 0 {
			errors["questions"] = "At least one question is required!"
		}

		for i, question := range reqData.Questions {
			key := "questions." + strconv.Itoa(i)
			if strings.TrimSpace(question.QuestionText) == "" {
				errors[key+".question_text"] = "Question text is required!"
			}
			if len(question.Options) < 2 {
				errors[key+".options"] = "At least 2 options are required!"
				continue
			}
			for _, option := range question.Options {
				if strings.TrimSpace(option) == "" {
					errors[key+".options"] = "Each option must not be empty!"
					break
				}
			}
			// correct answer must index a valid option
			if question.CorrectAnswer < 0 || question.CorrectAnswer >= len(question.Options) {
				errors[key+".correct_answer"] = "Correct answer must be a valid option index!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestions", reqData.Questions)
		return c.Next()
	}
}

func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Answers []int `json:"answers"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Answers == nil {
			errors["answers"] = "Answers must be an array!"
		}
		for i, answer := range reqData.Answers {
			if answer < 0 {
				errors["answers."+strconv.Itoa(i)] = "Each answer must be a valid option index!"
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAnswers", reqData.Answers)
		return c.Next()
	}
}
