package repository

import (
	"errors"
	"strings"

	"filmorate/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

type filmModel struct {
	ID          int64       `gorm:"column:id;primaryKey"`
	Name        string      `gorm:"column:name"`
	Description string      `gorm:"column:description"`
	ReleaseDate domain.Date `gorm:"column:release_date;type:date"`
	Duration    int         `gorm:"column:duration"`
	MpaRatingID int64       `gorm:"column:mpa_rating_id"`
}

func (filmModel) TableName() string { return "films" }

type userModel struct {
	ID       int64        `gorm:"column:id;primaryKey"`
	Email    string       `gorm:"column:email"`
	Login    string       `gorm:"column:login"`
	Name     string       `gorm:"column:name"`
	Birthday *domain.Date `gorm:"column:birthday;type:date"`
}

func (userModel) TableName() string { return "users" }

type mpaRatingModel struct {
	ID          int64  `gorm:"column:id;primaryKey"`
	Name        string `gorm:"column:name"`
	Description string `gorm:"column:description"`
}

func (mpaRatingModel) TableName() string { return "mpa_ratings" }

type genreModel struct {
	ID   int64  `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name"`
}

func (genreModel) TableName() string { return "genres" }

type filmGenreModel struct {
	FilmID  int64 `gorm:"column:film_id;primaryKey"`
	GenreID int64 `gorm:"column:genre_id;primaryKey"`
}

func (filmGenreModel) TableName() string { return "film_genre" }

type filmLikeModel struct {
	FilmID int64 `gorm:"column:film_id;primaryKey"`
	UserID int64 `gorm:"column:user_id;primaryKey"`
}

func (filmLikeModel) TableName() string { return "film_likes" }

// friendshipModel stores one directed edge; a symmetric pair is always two
// rows written and removed together.
type friendshipModel struct {
	UserID   int64 `gorm:"column:user_id;primaryKey"`
	FriendID int64 `gorm:"column:friend_id;primaryKey"`
}

func (friendshipModel) TableName() string { return "friendship" }

// Models lists every row model for AutoMigrate.
func Models() []any {
	return []any{
		&mpaRatingModel{},
		&genreModel{},
		&userModel{},
		&filmModel{},
		&filmGenreModel{},
		&filmLikeModel{},
		&friendshipModel{},
	}
}

func toDomainUser(m userModel) *domain.User {
	return &domain.User{
		ID:       m.ID,
		Email:    m.Email,
		Login:    m.Login,
		Name:     m.Name,
		Birthday: m.Birthday,
	}
}

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:       u.ID,
		Email:    strings.TrimSpace(u.Email),
		Login:    u.Login,
		Name:     u.Name,
		Birthday: u.Birthday,
	}
}

func toFilmModel(f *domain.Film) filmModel {
	return filmModel{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		ReleaseDate: f.ReleaseDate,
		Duration:    f.Duration,
		MpaRatingID: f.Mpa.ID,
	}
}

// dedupGenreIDs collapses the genre list to a set, keeping first-seen order.
func dedupGenreIDs(genres []domain.Genre) []int64 {
	seen := make(map[int64]struct{}, len(genres))
	ids := make([]int64, 0, len(genres))
	for _, g := range genres {
		if _, ok := seen[g.ID]; ok {
			continue
		}
		seen[g.ID] = struct{}{}
		ids = append(ids, g.ID)
	}
	return ids
}

// wrapWriteError maps backend integrity failures onto ErrConflict so the
// services never see driver-specific errors.
func wrapWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
		return ErrConflict
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "SQLSTATE 23") {
		return ErrConflict
	}
	return err
}
