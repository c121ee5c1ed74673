package routes

import (
	"net/http"
	"time"

	"nyayamitra/handlers"
	"nyayamitra/middleware"
	"nyayamitra/models"
	"nyayamitra/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration and session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)

		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("/logout", hb.LogoutHandler)
	}
}

// RegisterUserRoutes registers profile and directory endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		// Family members query notification history by address alone.
		api.GET("/notifications/:email", hb.FamilyNotificationsHandler)

		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/me", hb.GetProfileHandler)
		api.PUT("/me", hb.UpdateProfileHandler)
		api.PUT("/me/family-email", hb.SetFamilyEmailHandler)
		api.GET("/providers", hb.ListProvidersHandler)
	}
}

// RegisterCaseRoutes registers case submission, listing and judge endpoints.
func RegisterCaseRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/cases")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("", middleware.RequireRole(models.RolePrisoner), hb.SubmitCaseHandler)
		api.GET("/mine", middleware.RequireRole(models.RolePrisoner), hb.MyCasesHandler)
		api.GET("/assigned", middleware.RequireRole(models.RoleJudge), hb.JudgeCasesHandler)
		api.PUT("/:number/trial-date", middleware.RequireRole(models.RoleJudge), hb.SetTrialDateHandler)
		api.GET("/calendar", hb.CalendarHandler)
		api.GET("/:number", hb.GetCaseHandler)
	}
}

// RegisterMatchingRoutes registers the aid-request workflow endpoints.
func RegisterMatchingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/matching")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("/requests", middleware.RequireRole(models.RolePrisoner), hb.RequestAidHandler)
		api.GET("/requests", middleware.RequireRole(models.RoleProvider), hb.ProviderRequestsHandler)
		api.POST("/requests/:id/accept", middleware.RequireRole(models.RoleProvider), hb.AcceptRequestHandler)
		api.POST("/requests/:id/decline", middleware.RequireRole(models.RoleProvider), hb.DeclineRequestHandler)
	}
}

// RegisterChatRoutes registers the direct-messaging endpoints.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/chat")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("/messages", hb.SendMessageHandler)
		api.GET("/conversations/:email", hb.ConversationHandler)
		api.GET("/inbox", hb.InboxHandler)
	}
}

// RegisterFeedbackRoutes registers the court-feedback endpoints.
func RegisterFeedbackRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/feedback")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("", middleware.RequireRole(models.RoleJudge), hb.PostFeedbackHandler)
		api.GET("/:number", hb.FeedbackTimelineHandler)
	}
}

// RegisterDocumentRoutes registers the case-document endpoints.
func RegisterDocumentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/documents")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("", hb.UploadDocumentHandler)
		api.GET("/case/:number", hb.ListDocumentsHandler)
		api.GET("/:id/url", hb.DocumentURLHandler)
		api.DELETE("/:id", hb.DeleteDocumentHandler)
	}
}

// RegisterResourceRoutes registers the IPC reference endpoints. Reference
// data is public.
func RegisterResourceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/resources")
	{
		api.GET("/ipc", hb.ListIPCSectionsHandler)
		api.GET("/ipc/:section", hb.GetIPCSectionHandler)
	}
}

// RegisterAssistantRoutes registers the legal-assistant endpoints.
func RegisterAssistantRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/assistant")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("/chat", hb.AssistantChatHandler)
		api.GET("/conversations", hb.ListConversationsHandler)
		api.GET("/conversations/:id", hb.ConversationMessagesHandler)
		api.DELETE("/conversations/:id", hb.DeleteConversationHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Hi, I'm Nyaya Mitra",
			"checks":  utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterCaseRoutes(r, hb)
	RegisterMatchingRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterFeedbackRoutes(r, hb)
	RegisterDocumentRoutes(r, hb)
	RegisterResourceRoutes(r, hb)
	RegisterAssistantRoutes(r, hb)
	RegisterHealthRoute(r)
}
