package repository

import (
	"context"

	"filmorate/internal/domain"
)

// MpaMemoryRepository serves a fixed MPA rating set from memory. The data
// is immutable after construction, so no locking is needed.
type MpaMemoryRepository struct {
	ratings []domain.MpaRating
}

func NewMpaMemoryRepository(ratings []domain.MpaRating) *MpaMemoryRepository {
	return &MpaMemoryRepository{ratings: append([]domain.MpaRating(nil), ratings...)}
}

func (r *MpaMemoryRepository) GetAll(ctx context.Context) ([]domain.MpaRating, error) {
	return append([]domain.MpaRating(nil), r.ratings...), nil
}

func (r *MpaMemoryRepository) GetByID(ctx context.Context, id int64) (*domain.MpaRating, error) {
	for _, m := range r.ratings {
		if m.ID == id {
			rating := m
			return &rating, nil
		}
	}
	return nil, ErrNotFound
}

// GenreMemoryRepository serves a fixed genre set from memory.
type GenreMemoryRepository struct {
	genres []domain.Genre
}

func NewGenreMemoryRepository(genres []domain.Genre) *GenreMemoryRepository {
	return &GenreMemoryRepository{genres: append([]domain.Genre(nil), genres...)}
}

func (r *GenreMemoryRepository) GetAll(ctx context.Context) ([]domain.Genre, error) {
	return append([]domain.Genre(nil), r.genres...), nil
}

func (r *GenreMemoryRepository) GetByID(ctx context.Context, id int64) (*domain.Genre, error) {
	for _, g := range r.genres {
		if g.ID == id {
			genre := g
			return &genre, nil
		}
	}
	return nil, ErrNotFound
}
