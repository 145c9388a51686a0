package film

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

// Date of the first public film screening; no film can be released before.
var minReleaseDate = domain.NewDate(1895, time.December, 28)

const (
	maxDescriptionLen   = 200
	defaultPopularCount = 10
)

// UserGate is the slice of the user side this service needs: likes are
// only recorded for users that exist.
type UserGate interface {
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// Service validates and orchestrates film CRUD, likes and the popularity
// ranking. All checks run before any storage mutation.
type Service struct {
	films  repository.FilmRepository
	mpa    repository.MpaRepository
	genres repository.GenreRepository
	users  UserGate
	log    *zap.Logger
}

func NewService(films repository.FilmRepository, mpa repository.MpaRepository, genres repository.GenreRepository, users UserGate, log *zap.Logger) *Service {
	return &Service{films: films, mpa: mpa, genres: genres, users: users, log: log}
}

func (s *Service) GetAll(ctx context.Context) ([]domain.Film, error) {
	return s.films.GetAll(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Film, error) {
	f, err := s.films.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("film with id %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return f, nil
}

func (s *Service) Create(ctx context.Context, f *domain.Film) (*domain.Film, error) {
	if err := s.validate(ctx, f); err != nil {
		return nil, err
	}
	if err := s.films.Create(ctx, f); err != nil {
		return nil, translate(err)
	}
	s.log.Info("film created", zap.Int64("id", f.ID), zap.String("name", f.Name))
	return f, nil
}

func (s *Service) Update(ctx context.Context, f *domain.Film) (*domain.Film, error) {
	if err := s.validate(ctx, f); err != nil {
		return nil, err
	}
	if _, err := s.GetByID(ctx, f.ID); err != nil {
		return nil, err
	}
	if err := s.films.Update(ctx, f); err != nil {
		return nil, translate(err)
	}
	s.log.Info("film updated", zap.Int64("id", f.ID))
	return f, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.films.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("film with id %d: %w", id, ErrNotFound)
		}
		return err
	}
	s.log.Info("film deleted", zap.Int64("id", id))
	return nil
}

// AddLike requires both the film and the user to exist.
func (s *Service) AddLike(ctx context.Context, filmID, userID int64) error {
	if err := s.checkLikePair(ctx, filmID, userID); err != nil {
		return err
	}
	if err := s.films.AddLike(ctx, filmID, userID); err != nil {
		return translate(err)
	}
	s.log.Info("like added", zap.Int64("filmId", filmID), zap.Int64("userId", userID))
	return nil
}

// RemoveLike requires both entities to exist; an absent like is a no-op.
func (s *Service) RemoveLike(ctx context.Context, filmID, userID int64) error {
	if err := s.checkLikePair(ctx, filmID, userID); err != nil {
		return err
	}
	if err := s.films.RemoveLike(ctx, filmID, userID); err != nil {
		return translate(err)
	}
	s.log.Info("like removed", zap.Int64("filmId", filmID), zap.Int64("userId", userID))
	return nil
}

// GetPopular ranks films by like count; a non-positive count means 10.
func (s *Service) GetPopular(ctx context.Context, count int) ([]domain.Film, error) {
	if count <= 0 {
		count = defaultPopularCount
	}
	return s.films.GetPopular(ctx, count)
}

func (s *Service) checkLikePair(ctx context.Context, filmID, userID int64) error {
	exists, err := s.films.ExistsByID(ctx, filmID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("film with id %d: %w", filmID, ErrNotFound)
	}
	exists, err = s.users.ExistsByID(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("user with id %d: %w", userID, ErrNotFound)
	}
	return nil
}

// validate applies the domain rules and resolves the MPA rating and genre
// references, filling in their names. It fails closed: nothing is written
// when any check fails.
func (s *Service) validate(ctx context.Context, f *domain.Film) error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("film name must not be blank: %w", ErrInvalidArgument)
	}
	if len([]rune(f.Description)) > maxDescriptionLen {
		return fmt.Errorf("film description must not exceed %d characters: %w", maxDescriptionLen, ErrInvalidArgument)
	}
	if f.ReleaseDate.IsZero() {
		return fmt.Errorf("film release date is required: %w", ErrInvalidArgument)
	}
	if f.ReleaseDate.Before(minReleaseDate) {
		return fmt.Errorf("film release date must not be before %s: %w", minReleaseDate, ErrInvalidArgument)
	}
	if f.Duration <= 0 {
		return fmt.Errorf("film duration must be positive: %w", ErrInvalidArgument)
	}
	if f.Mpa.ID == 0 {
		return fmt.Errorf("film mpa rating is required: %w", ErrInvalidArgument)
	}

	mpa, err := s.mpa.GetByID(ctx, f.Mpa.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("mpa rating with id %d: %w", f.Mpa.ID, ErrNotFound)
		}
		return err
	}
	f.Mpa = *mpa

	if len(f.Genres) == 0 {
		return nil
	}
	all, err := s.genres.GetAll(ctx)
	if err != nil {
		return err
	}
	known := make(map[int64]domain.Genre, len(all))
	knownIDs := make([]int64, 0, len(all))
	for _, g := range all {
		known[g.ID] = g
		knownIDs = append(knownIDs, g.ID)
	}
	for i, g := range f.Genres {
		resolved, ok := known[g.ID]
		if !ok {
			return fmt.Errorf("genre with id %d (known genre ids %v): %w", g.ID, knownIDs, ErrNotFound)
		}
		f.Genres[i] = resolved
	}
	return nil
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
