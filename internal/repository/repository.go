package repository

import (
	"context"
	"errors"

	"filmorate/internal/domain"
)

var (
	// ErrNotFound signals that the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict signals a backend-level integrity violation.
	ErrConflict = errors.New("conflict")
)

// FilmRepository is the film storage contract. Two implementations exist:
// the gorm-backed relational one and the in-memory one; services depend on
// this interface only.
type FilmRepository interface {
	GetAll(ctx context.Context) ([]domain.Film, error)
	GetByID(ctx context.Context, id int64) (*domain.Film, error)
	// Create ignores any caller-supplied id, assigns a fresh one and
	// writes it back into film.
	Create(ctx context.Context, film *domain.Film) error
	// Update replaces all mutable fields of an existing film, including
	// its full genre set. ErrNotFound when the id does not exist.
	Update(ctx context.Context, film *domain.Film) error
	// Delete removes the film and its like/genre rows.
	Delete(ctx context.Context, id int64) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
	AddLike(ctx context.Context, filmID, userID int64) error
	RemoveLike(ctx context.Context, filmID, userID int64) error
	// GetPopular orders by like count descending, then by ascending id,
	// and returns at most count films. Films with zero likes are included.
	GetPopular(ctx context.Context, count int) ([]domain.Film, error)
}

// UserRepository is the user storage contract. Friendship is symmetric:
// both directions are recorded and removed together.
type UserRepository interface {
	GetAll(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	// Delete removes the user and cascades to like and friendship rows.
	Delete(ctx context.Context, id int64) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
	AddFriend(ctx context.Context, userID, friendID int64) error
	RemoveFriend(ctx context.Context, userID, friendID int64) error
	GetFriends(ctx context.Context, userID int64) ([]domain.User, error)
	GetCommonFriends(ctx context.Context, userID, otherID int64) ([]domain.User, error)
}

// MpaRepository reads the MPA rating lookup table.
type MpaRepository interface {
	GetAll(ctx context.Context) ([]domain.MpaRating, error)
	GetByID(ctx context.Context, id int64) (*domain.MpaRating, error)
}

// GenreRepository reads the genre lookup table.
type GenreRepository interface {
	GetAll(ctx context.Context) ([]domain.Genre, error)
	GetByID(ctx context.Context, id int64) (*domain.Genre, error)
}
