package user

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"nyayamitra/models"
	"nyayamitra/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenDuration = time.Hour

// resolveRole maps the registration flags onto an account role. The judge
// flag wins when both are set.
func resolveRole(isOfficial, isJudge bool) string {
	if isJudge {
		return models.RoleJudge
	}
	if isOfficial {
		return models.RoleProvider
	}
	return models.RolePrisoner
}

// RegisterUser creates an account and signs the new user in.
func (s *DefaultUserService) RegisterUser(fullName, email, password string, isOfficial, isJudge bool) (*models.AuthResponse, error) {
	logger := utils.GetLogger()

	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid email address")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		logger.Error("RegisterUser: failed to check existing account", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("an account with this email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userRec := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Role:         resolveRole(isOfficial, isJudge),
		FullName:     fullName,
		PasswordHash: string(hashed),
	}
	if err := s.Repo.Create(userRec); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Info("User registered", zap.String("email", email), zap.String("role", userRec.Role))
	return s.issueSession(userRec)
}

// AuthenticateUser verifies credentials and issues a session token.
func (s *DefaultUserService) AuthenticateUser(email, password string) (*models.AuthResponse, error) {
	logger := utils.GetLogger()

	email = strings.ToLower(strings.TrimSpace(email))
	userRec, err := s.Repo.GetByEmail(email)
	if err != nil {
		logger.Error("AuthenticateUser: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if userRec == nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}
	return s.issueSession(userRec)
}

// issueSession mints a JWT, caches its hash for middleware validation, and
// persists the hash so the cache can be rebuilt on a miss.
func (s *DefaultUserService) issueSession(userRec *models.User) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(userRec.ID, userRec.Email, userRec.Role, tokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	tokenHash := utils.HashToken(token)

	cacheClient := utils.GetAuthCacheClient()
	cacheKey := utils.AuthCachePrefix + userRec.ID
	if err := cacheClient.Set(context.Background(), cacheKey, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
		utils.GetLogger().Error("issueSession: failed to cache token hash", zap.Error(err))
	}

	if err := s.Repo.UpdateFields(userRec.Email, bson.M{"token_hash": tokenHash}); err != nil {
		return nil, fmt.Errorf("failed to persist token hash: %w", err)
	}

	return &models.AuthResponse{
		ID:       userRec.ID,
		Token:    token,
		Email:    userRec.Email,
		Role:     userRec.Role,
		FullName: userRec.FullName,
	}, nil
}

// RevokeToken invalidates the user's current session token.
func (s *DefaultUserService) RevokeToken(email string) error {
	userRec, err := s.Repo.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to fetch user: %w", err)
	}
	if userRec == nil {
		return fmt.Errorf("user not found")
	}

	cacheClient := utils.GetAuthCacheClient()
	cacheKey := utils.AuthCachePrefix + userRec.ID
	if err := cacheClient.Del(context.Background(), cacheKey).Err(); err != nil {
		utils.GetLogger().Error("RevokeToken: failed to clear token cache", zap.Error(err))
	}
	if err := s.Repo.UpdateFields(email, bson.M{"token_hash": ""}); err != nil {
		return fmt.Errorf("failed to clear token hash: %w", err)
	}
	return nil
}
