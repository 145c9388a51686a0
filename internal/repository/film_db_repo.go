package repository

import (
	"context"
	"sort"

	"filmorate/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FilmDBRepository implements FilmRepository on the relational schema.
// List reads load genre and like sets in bulk — one query per result set
// grouped by film id, never one query per film.
type FilmDBRepository struct {
	db *gorm.DB
}

func NewFilmDBRepository(db *gorm.DB) *FilmDBRepository {
	return &FilmDBRepository{db: db}
}

// filmRow is the flat shape of a film joined with its MPA rating.
type filmRow struct {
	ID             int64
	Name           string
	Description    string
	ReleaseDate    domain.Date
	Duration       int
	MpaRatingID    int64
	MpaName        string
	MpaDescription string
}

const filmColumns = "films.id, films.name, films.description, films.release_date, " +
	"films.duration, films.mpa_rating_id, m.name AS mpa_name, m.description AS mpa_description"

func (r *FilmDBRepository) filmQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("films").
		Select(filmColumns).
		Joins("LEFT JOIN mpa_ratings m ON m.id = films.mpa_rating_id")
}

func (r *FilmDBRepository) GetAll(ctx context.Context) ([]domain.Film, error) {
	var rows []filmRow
	if err := r.filmQuery(ctx).Order("films.id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return r.assemble(ctx, rows)
}

func (r *FilmDBRepository) GetByID(ctx context.Context, id int64) (*domain.Film, error) {
	var rows []filmRow
	if err := r.filmQuery(ctx).Where("films.id = ?", id).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	films, err := r.assemble(ctx, rows)
	if err != nil {
		return nil, err
	}
	return &films[0], nil
}

func (r *FilmDBRepository) Create(ctx context.Context, film *domain.Film) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toFilmModel(film)
		m.ID = 0
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		film.ID = m.ID
		return replaceGenres(tx, m.ID, film.Genres, false)
	})
	if err != nil {
		return wrapWriteError(err)
	}
	film.Likes = []int64{}
	if film.Genres == nil {
		film.Genres = []domain.Genre{}
	}
	return nil
}

func (r *FilmDBRepository) Update(ctx context.Context, film *domain.Film) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&filmModel{}).Where("id = ?", film.ID).Updates(map[string]any{
			"name":          film.Name,
			"description":   film.Description,
			"release_date":  film.ReleaseDate,
			"duration":      film.Duration,
			"mpa_rating_id": film.Mpa.ID,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return replaceGenres(tx, film.ID, film.Genres, true)
	})
	return wrapWriteError(err)
}

func (r *FilmDBRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("film_id = ?", id).Delete(&filmGenreModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("film_id = ?", id).Delete(&filmLikeModel{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&filmModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *FilmDBRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&filmModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// AddLike records the like; liking the same film twice is a no-op.
func (r *FilmDBRepository) AddLike(ctx context.Context, filmID, userID int64) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&filmLikeModel{FilmID: filmID, UserID: userID}).Error
	return wrapWriteError(err)
}

// RemoveLike is idempotent: removing an absent like is not an error.
func (r *FilmDBRepository) RemoveLike(ctx context.Context, filmID, userID int64) error {
	return r.db.WithContext(ctx).
		Where("film_id = ? AND user_id = ?", filmID, userID).
		Delete(&filmLikeModel{}).Error
}

func (r *FilmDBRepository) GetPopular(ctx context.Context, count int) ([]domain.Film, error) {
	var rows []filmRow
	err := r.filmQuery(ctx).
		Joins("LEFT JOIN film_likes fl ON fl.film_id = films.id").
		Group(filmColumnsGroup).
		Order("COUNT(fl.user_id) DESC, films.id ASC").
		Limit(count).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.assemble(ctx, rows)
}

const filmColumnsGroup = "films.id, films.name, films.description, films.release_date, " +
	"films.duration, films.mpa_rating_id, m.name, m.description"

// replaceGenres rewrites the genre associations of a film: delete-all then
// reinsert the deduplicated set, all inside the caller's transaction.
func replaceGenres(tx *gorm.DB, filmID int64, genres []domain.Genre, deleteFirst bool) error {
	if deleteFirst {
		if err := tx.Where("film_id = ?", filmID).Delete(&filmGenreModel{}).Error; err != nil {
			return err
		}
	}
	ids := dedupGenreIDs(genres)
	if len(ids) == 0 {
		return nil
	}
	rows := make([]filmGenreModel, 0, len(ids))
	for _, genreID := range ids {
		rows = append(rows, filmGenreModel{FilmID: filmID, GenreID: genreID})
	}
	return tx.Create(&rows).Error
}

func (r *FilmDBRepository) assemble(ctx context.Context, rows []filmRow) ([]domain.Film, error) {
	films := make([]domain.Film, 0, len(rows))
	for _, row := range rows {
		films = append(films, domain.Film{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			ReleaseDate: row.ReleaseDate,
			Duration:    row.Duration,
			Mpa: domain.MpaRating{
				ID:          row.MpaRatingID,
				Name:        row.MpaName,
				Description: row.MpaDescription,
			},
			Genres: []domain.Genre{},
			Likes:  []int64{},
		})
	}
	if err := r.loadGenres(ctx, films); err != nil {
		return nil, err
	}
	if err := r.loadLikes(ctx, films); err != nil {
		return nil, err
	}
	return films, nil
}

func filmIDs(films []domain.Film) []int64 {
	ids := make([]int64, len(films))
	for i, f := range films {
		ids[i] = f.ID
	}
	return ids
}

func (r *FilmDBRepository) loadGenres(ctx context.Context, films []domain.Film) error {
	if len(films) == 0 {
		return nil
	}
	var rows []struct {
		FilmID int64
		ID     int64
		Name   string
	}
	err := r.db.WithContext(ctx).
		Table("film_genre fg").
		Select("fg.film_id, g.id, g.name").
		Joins("JOIN genres g ON g.id = fg.genre_id").
		Where("fg.film_id IN ?", filmIDs(films)).
		Order("fg.film_id, g.id").
		Scan(&rows).Error
	if err != nil {
		return err
	}
	byFilm := make(map[int64][]domain.Genre, len(films))
	for _, row := range rows {
		byFilm[row.FilmID] = append(byFilm[row.FilmID], domain.Genre{ID: row.ID, Name: row.Name})
	}
	for i := range films {
		if genres, ok := byFilm[films[i].ID]; ok {
			films[i].Genres = genres
		}
	}
	return nil
}

func (r *FilmDBRepository) loadLikes(ctx context.Context, films []domain.Film) error {
	if len(films) == 0 {
		return nil
	}
	var rows []filmLikeModel
	err := r.db.WithContext(ctx).
		Where("film_id IN ?", filmIDs(films)).
		Find(&rows).Error
	if err != nil {
		return err
	}
	byFilm := make(map[int64][]int64, len(films))
	for _, row := range rows {
		byFilm[row.FilmID] = append(byFilm[row.FilmID], row.UserID)
	}
	for i := range films {
		if likes, ok := byFilm[films[i].ID]; ok {
			sort.Slice(likes, func(a, b int) bool { return likes[a] < likes[b] })
			films[i].Likes = likes
		}
	}
	return nil
}
