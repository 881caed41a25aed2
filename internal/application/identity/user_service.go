package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/identity"
	"github.com/rahmimuaz/Evolexxlk/internal/domain/shared"
	"go.uber.org/zap"
)

// UserService exposes the admin-facing account operations
type UserService struct {
	users  identity.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(users identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger.Named("users"),
	}
}

// List returns every registered account
func (s *UserService) List(ctx context.Context) ([]UserResponse, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, ToUserResponse(&users[i]))
	}
	return out, nil
}

// Delete removes an account. The cart lines go with it.
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "User not found")
		}
		return err
	}

	s.logger.Info("user deleted", zap.String("user_id", id.String()))
	return nil
}
