package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"filmorate/internal/domain"
	"filmorate/internal/repository"

	"go.uber.org/zap"
)

// Service validates and orchestrates user CRUD, friendship management and
// the common-friends query. Friendship is symmetric and lives in storage;
// the service only checks that both sides exist and are distinct.
type Service struct {
	users repository.UserRepository
	log   *zap.Logger
}

func NewService(users repository.UserRepository, log *zap.Logger) *Service {
	return &Service{users: users, log: log}
}

func (s *Service) GetAll(ctx context.Context) ([]domain.User, error) {
	return s.users.GetAll(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("user with id %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	if err := validate(u); err != nil {
		return nil, err
	}
	defaultName(u)
	if err := s.users.Create(ctx, u); err != nil {
		return nil, translate(err)
	}
	s.log.Info("user created", zap.Int64("id", u.ID), zap.String("login", u.Login))
	return u, nil
}

func (s *Service) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	if err := validate(u); err != nil {
		return nil, err
	}
	if _, err := s.GetByID(ctx, u.ID); err != nil {
		return nil, err
	}
	defaultName(u)
	if err := s.users.Update(ctx, u); err != nil {
		return nil, translate(err)
	}
	s.log.Info("user updated", zap.Int64("id", u.ID))
	return u, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("user with id %d: %w", id, ErrNotFound)
		}
		return err
	}
	s.log.Info("user deleted", zap.Int64("id", id))
	return nil
}

// AddFriend requires both users to exist and to be distinct.
func (s *Service) AddFriend(ctx context.Context, userID, friendID int64) error {
	if userID == friendID {
		return fmt.Errorf("a user cannot friend themselves: %w", ErrInvalidArgument)
	}
	if err := s.checkPair(ctx, userID, friendID); err != nil {
		return err
	}
	if err := s.users.AddFriend(ctx, userID, friendID); err != nil {
		return translate(err)
	}
	s.log.Info("friendship added", zap.Int64("userId", userID), zap.Int64("friendId", friendID))
	return nil
}

// RemoveFriend requires both users to exist; an absent relation is a no-op.
func (s *Service) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	if err := s.checkPair(ctx, userID, friendID); err != nil {
		return err
	}
	if err := s.users.RemoveFriend(ctx, userID, friendID); err != nil {
		return translate(err)
	}
	s.log.Info("friendship removed", zap.Int64("userId", userID), zap.Int64("friendId", friendID))
	return nil
}

func (s *Service) GetFriends(ctx context.Context, userID int64) ([]domain.User, error) {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	friends, err := s.users.GetFriends(ctx, userID)
	if err != nil {
		return nil, translate(err)
	}
	return friends, nil
}

func (s *Service) GetCommonFriends(ctx context.Context, userID, otherID int64) ([]domain.User, error) {
	if err := s.checkPair(ctx, userID, otherID); err != nil {
		return nil, err
	}
	friends, err := s.users.GetCommonFriends(ctx, userID, otherID)
	if err != nil {
		return nil, translate(err)
	}
	return friends, nil
}

func (s *Service) checkPair(ctx context.Context, userID, otherID int64) error {
	if _, err := s.GetByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.GetByID(ctx, otherID); err != nil {
		return err
	}
	return nil
}

func validate(u *domain.User) error {
	email := strings.TrimSpace(u.Email)
	if email == "" {
		return fmt.Errorf("email must not be blank: %w", ErrInvalidArgument)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("email must be a valid address: %w", ErrInvalidArgument)
	}
	if u.Login == "" {
		return fmt.Errorf("login must not be blank: %w", ErrInvalidArgument)
	}
	if strings.ContainsAny(u.Login, " \t\n") {
		return fmt.Errorf("login must not contain whitespace: %w", ErrInvalidArgument)
	}
	if u.Birthday != nil && u.Birthday.Time.After(time.Now()) {
		return fmt.Errorf("birthday must not be in the future: %w", ErrInvalidArgument)
	}
	return nil
}

// defaultName makes login the display name when none is given.
func defaultName(u *domain.User) {
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
}

func translate(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrConflict):
		return ErrConflict
	default:
		return err
	}
}
