package repository

import (
	"context"
	"errors"

	"filmorate/internal/domain"

	"gorm.io/gorm"
)

// MpaDBRepository reads the mpa_ratings lookup table.
type MpaDBRepository struct {
	db *gorm.DB
}

func NewMpaDBRepository(db *gorm.DB) *MpaDBRepository {
	return &MpaDBRepository{db: db}
}

func (r *MpaDBRepository) GetAll(ctx context.Context) ([]domain.MpaRating, error) {
	var models []mpaRatingModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	ratings := make([]domain.MpaRating, 0, len(models))
	for _, m := range models {
		ratings = append(ratings, domain.MpaRating{ID: m.ID, Name: m.Name, Description: m.Description})
	}
	return ratings, nil
}

func (r *MpaDBRepository) GetByID(ctx context.Context, id int64) (*domain.MpaRating, error) {
	var m mpaRatingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &domain.MpaRating{ID: m.ID, Name: m.Name, Description: m.Description}, nil
}

// GenreDBRepository reads the genres lookup table.
type GenreDBRepository struct {
	db *gorm.DB
}

func NewGenreDBRepository(db *gorm.DB) *GenreDBRepository {
	return &GenreDBRepository{db: db}
}

func (r *GenreDBRepository) GetAll(ctx context.Context) ([]domain.Genre, error) {
	var models []genreModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	genres := make([]domain.Genre, 0, len(models))
	for _, m := range models {
		genres = append(genres, domain.Genre{ID: m.ID, Name: m.Name})
	}
	return genres, nil
}

func (r *GenreDBRepository) GetByID(ctx context.Context, id int64) (*domain.Genre, error) {
	var m genreModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &domain.Genre{ID: m.ID, Name: m.Name}, nil
}
