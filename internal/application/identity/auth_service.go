package identity

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/identity"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/shared"
	"github.com/rahmimuaz/Evolexxlk/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// TokenIssuer issues signed access tokens for authenticated users
type TokenIssuer interface {
	GenerateToken(userID uuid.UUID, name string, isAdmin bool) (string, time.Time, error)
}

// AuthService handles account registration and sessions
type AuthService struct {
	users     identity.UserRepository
	tokens    TokenIssuer
	blacklist auth.TokenBlacklist
	google    auth.GoogleVerifier
	logger    *zap.Logger
}

// NewAuthService creates a new AuthService. google may be nil when
// Google sign-in is not configured.
func NewAuthService(
	users identity.UserRepository,
	tokens TokenIssuer,
	blacklist auth.TokenBlacklist,
	google auth.GoogleVerifier,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		blacklist: blacklist,
		google:    google,
		logger:    logger.Named("auth"),
	}
}

// Register creates an account and signs the user in
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "User already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	user, err := identity.NewUser(req.Name, email, req.Password)
	if err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "User already exists")
		}
		return nil, err
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return s.issueToken(user)
}

// Login authenticates an email/password pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
		}
		return nil, err
	}
	if !user.MatchPassword(req.Password) {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
	}

	return s.issueToken(user)
}

// GoogleLogin verifies a Google ID token and signs the user in,
// creating the account on first sign-in
func (s *AuthService) GoogleLogin(ctx context.Context, req GoogleLoginRequest) (*AuthResponse, error) {
	if s.google == nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Google login failed")
	}

	profile, err := s.google.Verify(ctx, req.Credential)
	if err != nil {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Google login failed")
	}

	user, err := s.users.FindByEmail(ctx, profile.Email)
	switch {
	case err == nil:
		if user.GoogleID == "" {
			user.LinkGoogleAccount(profile.Subject)
			if err := s.users.Save(ctx, user); err != nil {
				return nil, err
			}
		}
	case errors.Is(err, shared.ErrNotFound):
		name := profile.Name
		if name == "" {
			name = profile.Email
		}
		// Google accounts never use this password; it only satisfies
		// the non-empty hash column
		user, err = identity.NewUser(name, profile.Email, randomPassword())
		if err != nil {
			return nil, err
		}
		user.LinkGoogleAccount(profile.Subject)
		if err := s.users.Save(ctx, user); err != nil {
			return nil, err
		}
		s.logger.Info("User created via Google sign-in",
			zap.String("user_id", user.ID.String()),
			zap.String("email", user.Email))
	default:
		return nil, err
	}

	return s.issueToken(user)
}

// Logout revokes the session by blacklisting the token for its
// remaining lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.RemainingValidity()); err != nil {
		return err
	}
	s.logger.Info("User logged out", zap.String("user_id", claims.UserID))
	return nil
}

// Profile returns the account behind a user ID
func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "User not found")
		}
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

func (s *AuthService) issueToken(user *identity.User) (*AuthResponse, error) {
	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Name, user.IsAdmin)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      ToUserResponse(user),
	}, nil
}

func randomPassword() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return uuid.NewString()
	}
	return hex.EncodeToString(buf)
}
