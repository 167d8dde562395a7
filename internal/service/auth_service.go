package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kritanta/cartmates/internal/auth"
	"github.com/kritanta/cartmates/internal/email"
	"github.com/kritanta/cartmates/internal/models"
	"github.com/kritanta/cartmates/internal/storage"
)

// resetTokenTTL bounds how long a password reset link stays valid.
const resetTokenTTL = 10 * time.Minute

// minUsernameLength applies to profile updates.
const minUsernameLength = 3

// Session is the result of a successful registration or login.
type Session struct {
	User            *models.User
	Token           string
	PersonalGroupID string
}

// AuthService handles registration, login, profile management, account
// deletion, and the password reset flow. Registration also provisions the
// user's personal group.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
	groups        *GroupService
	mailer        email.Mailer
	resetBaseURL  string
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service. resetBaseURL is the
// client URL reset links point at.
func NewAuthService(
	authenticator auth.Authenticator,
	jwtManager *auth.JWTManager,
	store storage.Store,
	groups *GroupService,
	mailer email.Mailer,
	resetBaseURL string,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		store:         store,
		groups:        groups,
		mailer:        mailer,
		resetBaseURL:  resetBaseURL,
		logger:        logger,
	}
}

// Register creates a new account, provisions the personal group, links it,
// and returns a session token.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, models.NewValidationError("username is required")
	}
	if email == "" {
		return nil, models.NewValidationError("email is required")
	}

	user, err := s.authenticator.Register(ctx, email, username, password)
	if err != nil {
		s.logger.Warn("Registration failed", "email", email, "error", err)
		return nil, err
	}

	personal, err := s.groups.Create(ctx, user.ID, fmt.Sprintf("%s's Personal", username), true)
	if err != nil {
		return nil, fmt.Errorf("failed to create personal group: %w", err)
	}

	user.PersonalGroupID = personal.ID
	user.UpdatedAt = time.Now().Unix()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to link personal group: %w", err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("User registered", "user_id", user.ID, "email", user.Email)
	return &Session{User: user, Token: token, PersonalGroupID: personal.ID}, nil
}

// Login authenticates a user and returns a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, models.NewAuthenticationError("invalid email or password")
	}

	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		s.logger.Warn("Login failed", "email", email, "error", err)
		return nil, err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("User logged in", "user_id", user.ID, "email", user.Email)
	return &Session{User: user, Token: token, PersonalGroupID: user.PersonalGroupID}, nil
}

// GetProfile returns the user's account record.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("user")
	}
	return user, nil
}

// UpdateProfile changes username and/or email. Empty fields are left
// unchanged. OAuth accounts cannot change their email.
func (s *AuthService) UpdateProfile(ctx context.Context, userID, username, emailAddr string) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if emailAddr != "" {
		emailAddr = auth.NormalizeEmail(emailAddr)
		if emailAddr != user.Email {
			if !user.IsLocal() {
				return nil, models.NewValidationError("cannot change email for OAuth accounts")
			}
			existing, err := s.store.GetUserByEmail(ctx, emailAddr)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, models.NewConflictError("email already in use")
			}
			user.Email = emailAddr
		}
	}

	if username != "" {
		username = strings.TrimSpace(username)
		if len(username) < minUsernameLength {
			return nil, models.NewValidationError("username must be at least %d characters", minUsernameLength)
		}
		user.Username = username
	}

	user.UpdatedAt = time.Now().Unix()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("Profile updated", "user_id", userID)
	return user, nil
}

// ChangePassword verifies the current password and sets a new one. OAuth
// accounts have no password to change.
func (s *AuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if !user.IsLocal() {
		return models.NewValidationError("cannot change password for OAuth accounts")
	}
	if err := auth.CheckPassword(user.PasswordHash, currentPassword); err != nil {
		return models.NewAuthenticationError("current password is incorrect")
	}
	if err := s.authenticator.ValidateCredential(newPassword); err != nil {
		return err
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hashed
	user.UpdatedAt = time.Now().Unix()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return err
	}

	s.logger.Info("Password changed", "user_id", userID)
	return nil
}

// DeleteAccount removes the user after password confirmation. It deletes the
// personal group with everything it owns, deletes every shared group the
// user owns (a group never outlives its owner, keeping the owner-in-members
// invariant), removes the user from all remaining member sets, and finally
// deletes the user row. Not safely retryable: a second call lands on
// NotFoundError, which is the correct outcome.
func (s *AuthService) DeleteAccount(ctx context.Context, userID, password string) error {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsLocal() {
		if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
			return models.NewAuthenticationError("incorrect password")
		}
	}

	owned, err := s.store.ListGroupsByOwner(ctx, userID)
	if err != nil {
		return err
	}
	for _, g := range owned {
		if err := s.store.DeleteGroup(ctx, g.ID); err != nil {
			return fmt.Errorf("failed to delete owned group %s: %w", g.ID, err)
		}
	}

	if err := s.store.RemoveUserFromAllGroups(ctx, userID); err != nil {
		return err
	}
	if err := s.store.DeleteUser(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("Account deleted", "user_id", userID)
	return nil
}

// ForgotPassword starts the reset flow. To avoid account enumeration it
// reports success whether or not the email exists. On email-send failure the
// stored token is cleared and a DependencyError is returned.
func (s *AuthService) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.store.GetUserByEmail(ctx, auth.NormalizeEmail(emailAddr))
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}
	if !user.IsLocal() {
		return models.NewValidationError("this account uses Google sign-in, password reset is not available")
	}

	token, err := auth.GenerateToken()
	if err != nil {
		return err
	}

	user.ResetTokenHash = auth.HashToken(token)
	user.ResetTokenExpires = time.Now().Add(resetTokenTTL).Unix()
	user.UpdatedAt = time.Now().Unix()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.resetBaseURL, token)
	if err := s.mailer.SendPasswordReset(ctx, user.Email, resetURL); err != nil {
		// Recover locally: clear the token so the failed send leaves no
		// outstanding reset.
		user.ResetTokenHash = ""
		user.ResetTokenExpires = 0
		if clearErr := s.store.UpdateUser(ctx, user); clearErr != nil {
			s.logger.Error("Failed to clear reset token after send failure",
				"user_id", user.ID, "error", clearErr)
		}
		s.logger.Error("Password reset email failed", "user_id", user.ID, "error", err)
		return models.NewDependencyError("send reset email", err)
	}

	s.logger.Info("Password reset requested", "user_id", user.ID)
	return nil
}

// VerifyResetToken checks that a reset token is outstanding and unexpired,
// returning the account email for display.
func (s *AuthService) VerifyResetToken(ctx context.Context, token string) (string, error) {
	user, err := s.store.GetUserByResetTokenHash(ctx, auth.HashToken(token), time.Now().Unix())
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", models.NewValidationError("invalid or expired reset token")
	}
	return user.Email, nil
}

// ResetPassword completes the flow: validates the token and the new
// password, replaces the hash, and clears the token.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := s.authenticator.ValidateCredential(newPassword); err != nil {
		return err
	}

	user, err := s.store.GetUserByResetTokenHash(ctx, auth.HashToken(token), time.Now().Unix())
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewValidationError("invalid or expired reset token")
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hashed
	user.ResetTokenHash = ""
	user.ResetTokenExpires = 0
	user.UpdatedAt = time.Now().Unix()
	if err := s.store.UpdateUser(ctx, user); err != nil {
		return err
	}

	s.logger.Info("Password reset completed", "user_id", user.ID)
	return nil
}
