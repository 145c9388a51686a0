package repository

import (
	"filmorate/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultMpaRatings is the MPA reference set the system ships with.
func DefaultMpaRatings() []domain.MpaRating {
	return []domain.MpaRating{
		{ID: 1, Name: "G", Description: "У фильма нет возрастных ограничений"},
		{ID: 2, Name: "PG", Description: "Детям рекомендуется смотреть фильм с родителями"},
		{ID: 3, Name: "PG-13", Description: "Детям до 13 лет просмотр не желателен"},
		{ID: 4, Name: "R", Description: "Лицам до 17 лет просматривать фильм можно только в присутствии взрослого"},
		{ID: 5, Name: "NC-17", Description: "Лицам до 18 лет просмотр запрещён"},
	}
}

// DefaultGenres is the genre reference set the system ships with.
func DefaultGenres() []domain.Genre {
	return []domain.Genre{
		{ID: 1, Name: "Комедия"},
		{ID: 2, Name: "Драма"},
		{ID: 3, Name: "Мультфильм"},
		{ID: 4, Name: "Триллер"},
		{ID: 5, Name: "Документальный"},
		{ID: 6, Name: "Боевик"},
	}
}

// SeedReferenceData inserts the default MPA ratings and genres, skipping
// rows that already exist.
func SeedReferenceData(db *gorm.DB) error {
	ratings := make([]mpaRatingModel, 0, 5)
	for _, m := range DefaultMpaRatings() {
		ratings = append(ratings, mpaRatingModel{ID: m.ID, Name: m.Name, Description: m.Description})
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&ratings).Error; err != nil {
		return err
	}

	genres := make([]genreModel, 0, 6)
	for _, g := range DefaultGenres() {
		genres = append(genres, genreModel{ID: g.ID, Name: g.Name})
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&genres).Error
}
