package user

import (
	"fmt"
	"net/mail"
	"strings"

	"nyayamitra/models"
	"nyayamitra/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// GetProfile returns the user's profile without credential fields.
func (s *DefaultUserService) GetProfile(email string) (*models.User, error) {
	userRec, err := s.Repo.GetByEmailWithProjection(email, bson.M{
		"password_hash": 0,
		"token_hash":    0,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile for %s: %w", email, err)
	}
	if userRec == nil {
		return nil, fmt.Errorf("user not found")
	}
	return userRec, nil
}

// SetFamilyEmail records the family contact used for case notifications.
func (s *DefaultUserService) SetFamilyEmail(email, familyEmail string) error {
	familyEmail = strings.ToLower(strings.TrimSpace(familyEmail))
	if _, err := mail.ParseAddress(familyEmail); err != nil {
		return fmt.Errorf("invalid family email address")
	}
	if err := s.Repo.UpdateFields(email, bson.M{"family_email": familyEmail}); err != nil {
		return fmt.Errorf("failed to set family email: %w", err)
	}
	utils.GetLogger().Info("Family email updated", zap.String("email", email))
	return nil
}

// UpdateProfile applies profile field changes and returns the fresh profile.
func (s *DefaultUserService) UpdateProfile(email string, fullName, specialization string) (*models.User, error) {
	fields := bson.M{}
	if fullName != "" {
		fields["full_name"] = fullName
	}
	if specialization != "" {
		fields["specialization"] = specialization
	}
	if len(fields) > 0 {
		if err := s.Repo.UpdateFields(email, fields); err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}
	return s.GetProfile(email)
}

// ListProviders returns every registered legal-aid provider, with credential
// fields stripped.
func (s *DefaultUserService) ListProviders() ([]models.User, error) {
	providers, err := s.Repo.GetByRole(models.RoleProvider)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	for i := range providers {
		providers[i].PasswordHash = ""
		providers[i].TokenHash = ""
	}
	return providers, nil
}

// GetFamilyNotifications returns the notification history sent to the given
// family contact, newest first.
func (s *DefaultUserService) GetFamilyNotifications(familyEmail string) ([]models.FamilyNotification, error) {
	notifications, err := s.NotificationRepo.GetByFamilyEmail(familyEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch family notifications: %w", err)
	}
	return notifications, nil
}
