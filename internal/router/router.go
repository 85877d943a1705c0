package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/kdkce/examreg-backend/internal/config"
	"github.com/kdkce/examreg-backend/internal/handler"
	"github.com/kdkce/examreg-backend/internal/middleware"
	"github.com/kdkce/examreg-backend/internal/response"
	"github.com/kdkce/examreg-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Profile  *handler.ProfileHandler
	Subject  *handler.SubjectHandler
	ExamForm *handler.ExamFormHandler
	Admin    *handler.AdminHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)
		auth.POST("/password-reset", handlers.Auth.RequestPasswordReset)
		auth.POST("/password-reset/confirm", handlers.Auth.ConfirmPasswordReset)

		// Authenticated session routes
		auth.GET("/me", middleware.RequireAuth(authService), handlers.Auth.Me)
		auth.POST("/extend", middleware.RequireAuth(authService), handlers.Auth.Extend)
		auth.POST("/logout", middleware.RequireAuth(authService), handlers.Auth.Logout)
	}

	// ─── 2. Shared Authenticated Group ─────────────────────────────────
	api := router.Group("/api/v1")
	api.Use(middleware.RequireAuth(authService))
	{
		api.GET("/profile", handlers.Profile.GetProfile)
		api.PUT("/profile", handlers.Profile.UpdateProfile)

		api.GET("/subjects", handlers.Subject.ListSubjects)
		api.GET("/subjects/branches", handlers.Subject.ListBranches)
		api.GET("/subjects/semesters", handlers.Subject.ListSemesters)
	}

	// ─── 3. Student Group ──────────────────────────────────────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(middleware.RequireStudentJWT(authService))
	{
		studentAPI.GET("/dashboard", handlers.ExamForm.Dashboard)

		studentAPI.POST("/exam-forms/stage", handlers.ExamForm.StageForm)
		studentAPI.GET("/exam-forms/staged", handlers.ExamForm.GetStagedForm)
		studentAPI.POST("/exam-forms/order", handlers.ExamForm.CreateOrder)
		studentAPI.POST("/exam-forms/confirm-payment", handlers.ExamForm.ConfirmPayment)
		studentAPI.GET("/exam-forms", handlers.ExamForm.ListMyForms)
		studentAPI.GET("/exam-forms/:id", handlers.ExamForm.GetForm)

		studentAPI.GET("/receipts", handlers.ExamForm.ListReceipts)
		studentAPI.GET("/receipts/:id", handlers.ExamForm.GetReceipt)

		studentAPI.GET("/attendance", handlers.ExamForm.MyAttendance)
	}

	// ─── 4. Admin Group ────────────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		adminAPI.GET("/dashboard", handlers.Admin.Dashboard)

		adminAPI.POST("/users", handlers.Admin.RegisterUser)
		adminAPI.GET("/users/check-username", handlers.Admin.CheckUsername)
		adminAPI.GET("/users/check-email", handlers.Admin.CheckEmail)

		adminAPI.GET("/exam-forms", handlers.Admin.ListForms)
		adminAPI.GET("/exam-forms/:id", handlers.ExamForm.GetForm)
		adminAPI.POST("/exam-forms/:id/decide", handlers.Admin.DecideForm)

		adminAPI.POST("/attendance", handlers.Admin.MarkAttendance)
		adminAPI.GET("/attendance/:student_id", handlers.Admin.StudentAttendance)
	}

	return router
}
