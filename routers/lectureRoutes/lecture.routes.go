package lectureRoutes

import (
	controllers "learncraft/controllers/lecture"
	"learncraft/middleware"
	"learncraft/models"
	validators "learncraft/validators/lecture"

	"github.com/gofiber/fiber/v2"
)

// SetupLectureRoutes sets up lecture viewing, completion, quiz submission
// and instructor lecture management routes
func SetupLectureRoutes(app *fiber.App) {
	lectureGroup := app.Group("/api/lectures")

	// Student-facing
	lectureGroup.Get("/:lecture_id", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), validators.LectureID(), controllers.GetLecture)
	lectureGroup.Post("/:lecture_id/complete", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), validators.LectureID(), controllers.CompleteLecture)
	lectureGroup.Post("/:lecture_id/quiz/submit", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), validators.LectureID(), validators.SubmitQuiz(), controllers.SubmitQuiz)

	// Instructor-facing
	lectureGroup.Put("/:lecture_id", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor), validators.LectureID(), validators.UpdateLecture(), controllers.UpdateLecture)
	lectureGroup.Put("/:lecture_id/questions", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor), validators.LectureID(), validators.ReplaceQuizQuestions(), controllers.ReplaceQuizQuestions)
	lectureGroup.Post("/:lecture_id/attachments", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor), validators.LectureID(), controllers.UploadAttachment)
	lectureGroup.Delete("/:lecture_id", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor), validators.LectureID(), controllers.DeleteLecture)
}
