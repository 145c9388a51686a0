package repository

import (
	"context"
	"sort"
	"sync"

	"filmorate/internal/domain"
)

// FilmMemoryRepository is the transient FilmRepository: id-keyed map plus
// a like adjacency map, both owned by the repository and guarded by one
// mutex. Ids are assigned from a counter starting at 1.
type FilmMemoryRepository struct {
	mu     sync.RWMutex
	films  map[int64]domain.Film
	likes  map[int64]map[int64]struct{}
	nextID int64
}

func NewFilmMemoryRepository() *FilmMemoryRepository {
	return &FilmMemoryRepository{
		films:  make(map[int64]domain.Film),
		likes:  make(map[int64]map[int64]struct{}),
		nextID: 1,
	}
}

func (r *FilmMemoryRepository) GetAll(ctx context.Context) ([]domain.Film, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	films := make([]domain.Film, 0, len(r.films))
	for id := range r.films {
		films = append(films, r.snapshot(id))
	}
	sort.Slice(films, func(i, j int) bool { return films[i].ID < films[j].ID })
	return films, nil
}

func (r *FilmMemoryRepository) GetByID(ctx context.Context, id int64) (*domain.Film, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.films[id]; !ok {
		return nil, ErrNotFound
	}
	f := r.snapshot(id)
	return &f, nil
}

func (r *FilmMemoryRepository) Create(ctx context.Context, film *domain.Film) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	film.ID = r.nextID
	r.nextID++
	film.Genres = dedupGenres(film.Genres)
	film.Likes = []int64{}

	stored := *film
	stored.Genres = append([]domain.Genre(nil), film.Genres...)
	r.films[film.ID] = stored
	r.likes[film.ID] = make(map[int64]struct{})
	return nil
}

func (r *FilmMemoryRepository) Update(ctx context.Context, film *domain.Film) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.films[film.ID]; !ok {
		return ErrNotFound
	}
	film.Genres = dedupGenres(film.Genres)

	stored := *film
	stored.Genres = append([]domain.Genre(nil), film.Genres...)
	stored.Likes = nil
	r.films[film.ID] = stored
	film.Likes = likeSet(r.likes[film.ID])
	return nil
}

func (r *FilmMemoryRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.films[id]; !ok {
		return ErrNotFound
	}
	delete(r.films, id)
	delete(r.likes, id)
	return nil
}

func (r *FilmMemoryRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.films[id]
	return ok, nil
}

func (r *FilmMemoryRepository) AddLike(ctx context.Context, filmID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.films[filmID]; !ok {
		return ErrNotFound
	}
	if r.likes[filmID] == nil {
		r.likes[filmID] = make(map[int64]struct{})
	}
	r.likes[filmID][userID] = struct{}{}
	return nil
}

func (r *FilmMemoryRepository) RemoveLike(ctx context.Context, filmID, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.films[filmID]; !ok {
		return ErrNotFound
	}
	delete(r.likes[filmID], userID)
	return nil
}

func (r *FilmMemoryRepository) GetPopular(ctx context.Context, count int) ([]domain.Film, error) {
	films, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	// Like count descending, ascending id breaks ties; GetAll already
	// returns ascending ids so the stable sort keeps that order.
	sort.SliceStable(films, func(i, j int) bool {
		return len(films[i].Likes) > len(films[j].Likes)
	})
	if count < len(films) {
		films = films[:count]
	}
	return films, nil
}

// RemoveLikesByUser drops every like a user has given; called when the
// user is deleted.
func (r *FilmMemoryRepository) RemoveLikesByUser(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for filmID := range r.likes {
		delete(r.likes[filmID], userID)
	}
}

// snapshot materializes a film with its like set; callers hold the lock.
func (r *FilmMemoryRepository) snapshot(id int64) domain.Film {
	f := r.films[id]
	f.Genres = append([]domain.Genre(nil), f.Genres...)
	f.Likes = likeSet(r.likes[id])
	return f
}

func likeSet(set map[int64]struct{}) []int64 {
	likes := make([]int64, 0, len(set))
	for userID := range set {
		likes = append(likes, userID)
	}
	sort.Slice(likes, func(i, j int) bool { return likes[i] < likes[j] })
	return likes
}

func dedupGenres(genres []domain.Genre) []domain.Genre {
	seen := make(map[int64]struct{}, len(genres))
	out := make([]domain.Genre, 0, len(genres))
	for _, g := range genres {
		if _, ok := seen[g.ID]; ok {
			continue
		}
		seen[g.ID] = struct{}{}
		out = append(out, g)
	}
	return out
}
