package courseRoutes

import (
	controllers "learncraft/controllers/course"
	"learncraft/middleware"
	"learncraft/models"
	validators "learncraft/validators/course"
	lectureValidators "learncraft/validators/lecture"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up course browsing and instructor CRUD routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/api/courses")

	// Browsing (any authenticated user)
	courseGroup.Get("/", middleware.JWTMiddleware, controllers.GetAllCourses)
	courseGroup.Get("/instructor/my-courses", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor), controllers.GetMyCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseDetails)

	// Instructor CRUD
	courseGroup.Post("/", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor), validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Post("/:course_id/lectures", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor), validators.CourseIDParam(), lectureValidators.CreateLecture(), controllers.CreateLecture)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, middleware.RequireRole(models.RoleInstructor), validators.CourseID(), controllers.DeleteCourse)
}
