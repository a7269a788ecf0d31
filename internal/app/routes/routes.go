package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dkuznetsov/awardhub/internal/app/controllers"
	"github.com/dkuznetsov/awardhub/internal/app/models"
	"github.com/dkuznetsov/awardhub/internal/app/models/dto"
	"github.com/dkuznetsov/awardhub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	profileController *controllers.ProfileController,
	studentController *controllers.StudentController,
	teacherController *controllers.TeacherController,
	eventController *controllers.EventController,
	awardController *controllers.AwardController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	// --- Public auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh-token", authController.RefreshToken)

		authProtected := auth.Group("")
		authProtected.Use(authMiddleware.JWTAuth())
		{
			authProtected.POST("/logout", authController.Logout)
			authProtected.POST("/logout-all", authController.Logout)
			authProtected.GET("/check", authController.CheckAuth)
		}
	}

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	// Student self-service profile
	profile := authenticated.Group("/students")
	{
		profile.GET("/profile", middleware.NoCache(), profileController.GetProfile)
		profile.POST("/profile", profileController.CreateProfile)
		profile.PUT("/profile", profileController.UpdateProfile)
		profile.PATCH("/profile/avatar", profileController.UpdateAvatar)
		profile.GET("/departments/all", profileController.ListDepartments)
		profile.GET("/groups", profileController.ListGroups)
	}

	// Admin roster management
	adminRequired := authMiddleware.RoleRequired(string(models.RoleAdmin))
	roster := authenticated.Group("", adminRequired)
	{
		roster.GET("/students", studentController.ListStudents)
		roster.POST("/students", studentController.CreateStudent)
		roster.PUT("/students/:id", studentController.UpdateStudent)
		roster.DELETE("/students/:id", studentController.DeleteStudent)
		roster.GET("/departments", studentController.ListDepartments)
		roster.GET("/groups", studentController.ListGroups)

		roster.GET("/teachers", teacherController.ListTeachers)
		roster.POST("/teachers", teacherController.CreateTeacher)
		roster.PUT("/teachers/:id", teacherController.UpdateTeacher)
		roster.DELETE("/teachers/:id", teacherController.DeleteTeacher)
	}

	// Events
	events := authenticated.Group("/events")
	{
		events.GET("", eventController.ListEvents)
		events.GET("/students", eventController.ListStudents)
		events.GET("/teachers", eventController.ListTeachers)
		events.GET("/levels", eventController.ListLevels)

		eventsAdmin := events.Group("", adminRequired)
		{
			eventsAdmin.POST("", eventController.CreateEvent)
			eventsAdmin.PUT("/:id", eventController.UpdateEvent)
			eventsAdmin.DELETE("/:id", eventController.DeleteEvent)
		}
	}

	// Awards
	awards := authenticated.Group("/awards")
	{
		awards.POST("", awardController.CreateAward)
		awards.GET("/me", awardController.GetMyAwards)
		awards.GET("/student/:studentId", awardController.GetStudentAwards)
		awards.GET("/user/:userId/studentId", awardController.LookupStudent)

		awards.GET("/students", awardController.ListStudents)
		awards.GET("/departments", awardController.ListDepartments)
		awards.GET("/groups/:departmentId", awardController.ListGroups)
		awards.GET("/types", awardController.ListTypes)
		awards.GET("/degrees", awardController.ListDegrees)
		awards.GET("/levels", awardController.ListLevels)
		awards.GET("/events", awardController.ListEvents)
	}

	// Health check endpoint (public)
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Success: true,
			Data:    gin.H{"status": "ok"},
		})
	})
}
