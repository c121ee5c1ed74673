package user

import (
	notificationRepo "nyayamitra/database/repository/notification"
	userRepo "nyayamitra/database/repository/user"
	"nyayamitra/models"
)

// UserService manages accounts for prisoners, legal-aid providers and judges.
type UserService interface {
	// RegisterUser creates an account and signs the new user in.
	RegisterUser(fullName, email, password string, isOfficial, isJudge bool) (*models.AuthResponse, error)
	// AuthenticateUser verifies credentials and issues a session token.
	AuthenticateUser(email, password string) (*models.AuthResponse, error)
	// RevokeToken invalidates the user's current session token.
	RevokeToken(email string) error
	// GetProfile returns the user's profile without credential fields.
	GetProfile(email string) (*models.User, error)
	// SetFamilyEmail records the family contact used for case notifications.
	SetFamilyEmail(email, familyEmail string) error
	// UpdateProfile applies profile field changes.
	UpdateProfile(email string, fullName, specialization string) (*models.User, error)
	// ListProviders returns every registered legal-aid provider.
	ListProviders() ([]models.User, error)
	// GetFamilyNotifications returns the notification history sent to the
	// given family contact, newest first.
	GetFamilyNotifications(familyEmail string) ([]models.FamilyNotification, error)
}

// DefaultUserService is the production UserService implementation.
type DefaultUserService struct {
	Repo             userRepo.UserRepository
	NotificationRepo notificationRepo.NotificationRepository
}
