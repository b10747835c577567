package progressRoutes

import (
	controllers "learncraft/controllers/progress"
	"learncraft/middleware"
	"learncraft/models"
	validators "learncraft/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupProgressRoutes sets up the student progress dashboard routes
func SetupProgressRoutes(app *fiber.App) {
	progressGroup := app.Group("/api/progress")

	progressGroup.Get("/", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), controllers.GetAllProgress)
	progressGroup.Get("/course/:course_id", middleware.JWTMiddleware, middleware.RequireRole(models.RoleStudent), validators.CourseIDParam(), controllers.GetCourseProgress)
}
