package film

import "filmorate/internal/domain"

type MpaRef struct {
	ID int64 `json:"id" validate:"required"`
}

type GenreRef struct {
	ID int64 `json:"id" validate:"required"`
}

// FilmRequest is the create/update body. Update carries the id; create
// ignores it. The release-date floor and reference checks live in the
// service, which re-validates everything.
type FilmRequest struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name" validate:"required"`
	Description string      `json:"description" validate:"max=200"`
	ReleaseDate domain.Date `json:"releaseDate"`
	Duration    int         `json:"duration" validate:"required,gt=0"`
	Mpa         *MpaRef     `json:"mpa" validate:"required"`
	Genres      []GenreRef  `json:"genres" validate:"omitempty,dive"`
}

func (r FilmRequest) ToDomain() *domain.Film {
	f := &domain.Film{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		ReleaseDate: r.ReleaseDate,
		Duration:    r.Duration,
		Genres:      make([]domain.Genre, 0, len(r.Genres)),
	}
	if r.Mpa != nil {
		f.Mpa = domain.MpaRating{ID: r.Mpa.ID}
	}
	for _, g := range r.Genres {
		f.Genres = append(f.Genres, domain.Genre{ID: g.ID})
	}
	return f
}
