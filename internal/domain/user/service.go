// internal/domain/user/service.go
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pressart/storefront-api/internal/pkg/auth"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidIdentity = errors.New("invalid user data from Google")
	ErrUserNotFound    = errors.New("user not found")
)

// Service handles user business logic
type Service struct {
	db         *gorm.DB
	verifier   auth.IdentityVerifier
	jwtManager *auth.JWTManager
	denylist   *auth.Denylist
	logger     *logrus.Logger
	now        func() time.Time
}

// NewService creates a new user service
func NewService(db *gorm.DB, verifier auth.IdentityVerifier, jwtManager *auth.JWTManager, denylist *auth.Denylist, logger *logrus.Logger) *Service {
	return &Service{
		db:         db,
		verifier:   verifier,
		jwtManager: jwtManager,
		denylist:   denylist,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// GoogleAuthRequest represents the Google sign-in payload
type GoogleAuthRequest struct {
	GoogleToken string              `json:"googleToken" binding:"required"`
	UserData    *auth.GoogleProfile `json:"userData" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
	User      *User  `json:"user"`
}

// AuthenticateGoogle signs a user in with a Google ID token. Accounts are
// matched by Google id first, then linked by email, then created.
func (s *Service) AuthenticateGoogle(ctx context.Context, req *GoogleAuthRequest) (*AuthResponse, error) {
	if req.UserData == nil {
		return nil, ErrInvalidIdentity
	}
	profile, err := s.verifier.Verify(ctx, req.GoogleToken, *req.UserData)
	if err != nil {
		return nil, err
	}
	if profile.Subject == "" || strings.TrimSpace(profile.Email) == "" {
		return nil, ErrInvalidIdentity
	}

	var user User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.findForProfile(tx, profile)
		if err != nil {
			return err
		}
		if found != nil {
			user = *found
		} else {
			user = User{Email: profile.Email}
		}

		user.GoogleID = profile.Subject
		user.Name = profile.Name
		user.GivenName = profile.GivenName
		user.FamilyName = profile.FamilyName
		user.Picture = profile.Picture
		user.EmailVerified = profile.EmailVerified
		user.LastLogin = s.now()
		if user.Name == "" {
			user.Name = profile.Email
		}

		if err := tx.Save(&user).Error; err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	token, _, err := s.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id": user.ID,
		"email":   user.Email,
	}).Info("User authenticated with Google")

	return &AuthResponse{
		Token:     token,
		ExpiresIn: int64(s.jwtManager.ExpiresIn().Seconds()),
		User:      &user,
	}, nil
}

// GetProfile gets user profile by ID
func (s *Service) GetProfile(ctx context.Context, userID uint) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// Logout revokes the token described by claims
func (s *Service) Logout(ctx context.Context, claims *auth.Claims) error {
	if err := s.denylist.Revoke(ctx, claims); err != nil {
		return err
	}
	s.logger.WithField("user_id", claims.UserID).Info("User logged out")
	return nil
}

func (s *Service) findForProfile(tx *gorm.DB, profile *auth.GoogleProfile) (*User, error) {
	var user User
	err := tx.Where("google_id = ?", profile.Subject).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	err = tx.Where("email = ?", strings.ToLower(strings.TrimSpace(profile.Email))).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return nil, nil
}
