package domain

// MpaRating is fixed reference data seeded out of band; the core never
// creates or mutates ratings.
type MpaRating struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Genre is fixed reference data, zero or more per film.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// Film is a catalog entry. Genres are unique by id; Likes is the derived
// set of user ids materialized from the like relation, ascending.
type Film struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ReleaseDate Date      `json:"releaseDate"`
	Duration    int       `json:"duration"`
	Mpa         MpaRating `json:"mpa"`
	Genres      []Genre   `json:"genres"`
	Likes       []int64   `json:"likes"`
}
