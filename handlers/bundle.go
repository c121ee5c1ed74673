package handlers

import (
	userRepoPkg "nyayamitra/database/repository/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	// Auth endpoints
	RegisterHandler gin.HandlerFunc
	LoginHandler    gin.HandlerFunc
	LogoutHandler   gin.HandlerFunc

	// User endpoints
	GetProfileHandler          gin.HandlerFunc
	UpdateProfileHandler       gin.HandlerFunc
	SetFamilyEmailHandler      gin.HandlerFunc
	ListProvidersHandler       gin.HandlerFunc
	FamilyNotificationsHandler gin.HandlerFunc

	// Case endpoints
	SubmitCaseHandler   gin.HandlerFunc
	MyCasesHandler      gin.HandlerFunc
	GetCaseHandler      gin.HandlerFunc
	JudgeCasesHandler   gin.HandlerFunc
	SetTrialDateHandler gin.HandlerFunc
	CalendarHandler     gin.HandlerFunc

	// Matching endpoints
	RequestAidHandler       gin.HandlerFunc
	AcceptRequestHandler    gin.HandlerFunc
	DeclineRequestHandler   gin.HandlerFunc
	ProviderRequestsHandler gin.HandlerFunc

	// Chat endpoints
	SendMessageHandler  gin.HandlerFunc
	ConversationHandler gin.HandlerFunc
	InboxHandler        gin.HandlerFunc

	// Feedback endpoints
	PostFeedbackHandler     gin.HandlerFunc
	FeedbackTimelineHandler gin.HandlerFunc

	// Document endpoints
	UploadDocumentHandler gin.HandlerFunc
	ListDocumentsHandler  gin.HandlerFunc
	DocumentURLHandler    gin.HandlerFunc
	DeleteDocumentHandler gin.HandlerFunc

	// Resource endpoints
	ListIPCSectionsHandler gin.HandlerFunc
	GetIPCSectionHandler   gin.HandlerFunc

	// Assistant endpoints
	AssistantChatHandler        gin.HandlerFunc
	ListConversationsHandler    gin.HandlerFunc
	ConversationMessagesHandler gin.HandlerFunc
	DeleteConversationHandler   gin.HandlerFunc
}
