package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nyayamitra/config"
	"nyayamitra/cron"
	"nyayamitra/database"
	assistantRepoPkg "nyayamitra/database/repository/assistant"
	caseRepoPkg "nyayamitra/database/repository/caserepo"
	documentRepoPkg "nyayamitra/database/repository/document"
	feedbackRepoPkg "nyayamitra/database/repository/feedback"
	messageRepoPkg "nyayamitra/database/repository/message"
	notificationRepoPkg "nyayamitra/database/repository/notification"
	requestRepoPkg "nyayamitra/database/repository/request"
	resourceRepoPkg "nyayamitra/database/repository/resource"
	userRepoPkg "nyayamitra/database/repository/user"
	"nyayamitra/handlers"
	"nyayamitra/middleware"
	"nyayamitra/routes"
	"nyayamitra/services/cases"
	"nyayamitra/services/chat"
	"nyayamitra/services/documents"
	"nyayamitra/services/feedback"
	"nyayamitra/services/intelligence"
	"nyayamitra/services/mailer"
	"nyayamitra/services/matching"
	"nyayamitra/services/user"
	"nyayamitra/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.StartHealthMonitor([]*redis.Client{
		utils.GetCacheClient(),
		utils.GetAuthCacheClient(),
		utils.GetAssistantCacheClient(),
	}, database.MongoClient)

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	caseRepo := caseRepoPkg.NewMongoCaseRepo()
	requestRepo := requestRepoPkg.NewMongoRequestRepo()
	notificationRepo := notificationRepoPkg.NewMongoNotificationRepo()
	messageRepo := messageRepoPkg.NewMongoMessageRepo()
	feedbackRepo := feedbackRepoPkg.NewMongoFeedbackRepo()
	documentRepo := documentRepoPkg.NewMongoDocumentRepo()
	resourceRepo := resourceRepoPkg.NewMongoResourceRepo()
	assistantRepo := assistantRepoPkg.NewMongoAssistantRepo()

	// services.
	mailService := mailer.NewSMTPMailer(&config.AppConfig)

	userService := &user.DefaultUserService{
		Repo:             userRepo,
		NotificationRepo: notificationRepo,
	}

	matchingService := &matching.DefaultMatchingService{
		CaseRepo:         caseRepo,
		RequestRepo:      requestRepo,
		UserRepo:         userRepo,
		NotificationRepo: notificationRepo,
		Mailer:           mailService,
	}

	caseService := &cases.DefaultCaseService{
		CaseRepo:         caseRepo,
		UserRepo:         userRepo,
		NotificationRepo: notificationRepo,
		Mailer:           mailService,
	}

	chatService := &chat.DefaultChatService{
		MessageRepo: messageRepo,
		UserRepo:    userRepo,
	}

	feedbackService := &feedback.DefaultFeedbackService{
		FeedbackRepo:     feedbackRepo,
		CaseRepo:         caseRepo,
		UserRepo:         userRepo,
		NotificationRepo: notificationRepo,
		Mailer:           mailService,
	}

	documentService := &documents.DefaultDocumentService{
		DocumentRepo: documentRepo,
		CaseRepo:     caseRepo,
		Storage:      cloudinaryStorageService,
	}

	ctxStore := intelligence.NewRedisContextStore(utils.GetAssistantCacheClient(), 30*time.Minute)
	assistantService := &intelligence.DefaultAssistantService{
		Repo:         assistantRepo,
		Gemini:       intelligence.NewGeminiClient(config.AppConfig.GeminiAPIKey),
		ContextStore: ctxStore,
	}

	// handlers.
	authHandler := &handlers.AuthHandler{UserService: userService}
	userHandler := &handlers.UserHandler{UserService: userService}
	caseHandler := &handlers.CaseHandler{CaseService: caseService, MatchingService: matchingService}
	matchingHandler := &handlers.MatchingHandler{MatchingService: matchingService}
	chatHandler := &handlers.ChatHandler{ChatService: chatService}
	feedbackHandler := &handlers.FeedbackHandler{FeedbackService: feedbackService}
	documentHandler := &handlers.DocumentHandler{DocumentService: documentService}
	resourceHandler := &handlers.ResourceHandler{ResourceRepo: resourceRepo}
	assistantHandler := &handlers.AssistantHandler{AssistantService: assistantService}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,

		// Auth endpoints.
		RegisterHandler: authHandler.RegisterHandler,
		LoginHandler:    authHandler.LoginHandler,
		LogoutHandler:   authHandler.LogoutHandler,

		// User endpoints.
		GetProfileHandler:          userHandler.GetProfileHandler,
		UpdateProfileHandler:       userHandler.UpdateProfileHandler,
		SetFamilyEmailHandler:      userHandler.SetFamilyEmailHandler,
		ListProvidersHandler:       userHandler.ListProvidersHandler,
		FamilyNotificationsHandler: userHandler.FamilyNotificationsHandler,

		// Case endpoints.
		SubmitCaseHandler:   caseHandler.SubmitCaseHandler,
		MyCasesHandler:      caseHandler.MyCasesHandler,
		GetCaseHandler:      caseHandler.GetCaseHandler,
		JudgeCasesHandler:   caseHandler.JudgeCasesHandler,
		SetTrialDateHandler: caseHandler.SetTrialDateHandler,
		CalendarHandler:     caseHandler.CalendarHandler,

		// Matching endpoints.
		RequestAidHandler:       matchingHandler.RequestAidHandler,
		AcceptRequestHandler:    matchingHandler.AcceptRequestHandler,
		DeclineRequestHandler:   matchingHandler.DeclineRequestHandler,
		ProviderRequestsHandler: matchingHandler.ProviderRequestsHandler,

		// Chat endpoints.
		SendMessageHandler:  chatHandler.SendMessageHandler,
		ConversationHandler: chatHandler.ConversationHandler,
		InboxHandler:        chatHandler.InboxHandler,

		// Feedback endpoints.
		PostFeedbackHandler:     feedbackHandler.PostFeedbackHandler,
		FeedbackTimelineHandler: feedbackHandler.TimelineHandler,

		// Document endpoints.
		UploadDocumentHandler: documentHandler.UploadHandler,
		ListDocumentsHandler:  documentHandler.ListHandler,
		DocumentURLHandler:    documentHandler.DownloadHandler,
		DeleteDocumentHandler: documentHandler.DeleteHandler,

		// Resource endpoints.
		ListIPCSectionsHandler: resourceHandler.ListSectionsHandler,
		GetIPCSectionHandler:   resourceHandler.GetSectionHandler,

		// Assistant endpoints.
		AssistantChatHandler:        assistantHandler.ChatHandler,
		ListConversationsHandler:    assistantHandler.ListConversationsHandler,
		ConversationMessagesHandler: assistantHandler.MessagesHandler,
		DeleteConversationHandler:   assistantHandler.DeleteConversationHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the trial-reminder worker.
	cron.InitReminderWorker(caseRepo, userRepo, mailService)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
