package repository

import (
	"context"
	"sort"
	"sync"

	"filmorate/internal/domain"
)

// UserMemoryRepository is the transient UserRepository: id-keyed map plus
// a friend adjacency map owned by the repository, mirroring the relational
// backend's two-directed-rows shape under a single lock. Deleting a user
// cascades into the film repository's like sets.
type UserMemoryRepository struct {
	mu      sync.RWMutex
	users   map[int64]domain.User
	friends map[int64]map[int64]struct{}
	films   *FilmMemoryRepository
	nextID  int64
}

func NewUserMemoryRepository(films *FilmMemoryRepository) *UserMemoryRepository {
	return &UserMemoryRepository{
		users:   make(map[int64]domain.User),
		friends: make(map[int64]map[int64]struct{}),
		films:   films,
		nextID:  1,
	}
}

func (r *UserMemoryRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *UserMemoryRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *UserMemoryRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	r.friends[user.ID] = make(map[int64]struct{})
	return nil
}

func (r *UserMemoryRepository) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return ErrNotFound
	}
	r.users[user.ID] = *user
	return nil
}

func (r *UserMemoryRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	if _, ok := r.users[id]; !ok {
		r.mu.Unlock()
		return ErrNotFound
	}
	delete(r.users, id)
	delete(r.friends, id)
	for other := range r.friends {
		delete(r.friends[other], id)
	}
	r.mu.Unlock()

	if r.films != nil {
		r.films.RemoveLikesByUser(id)
	}
	return nil
}

func (r *UserMemoryRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[id]
	return ok, nil
}

// AddFriend records both directions under one lock; repeating the call is
// a no-op.
func (r *UserMemoryRepository) AddFriend(ctx context.Context, userID, friendID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		return ErrNotFound
	}
	if _, ok := r.users[friendID]; !ok {
		return ErrNotFound
	}
	if r.friends[userID] == nil {
		r.friends[userID] = make(map[int64]struct{})
	}
	if r.friends[friendID] == nil {
		r.friends[friendID] = make(map[int64]struct{})
	}
	r.friends[userID][friendID] = struct{}{}
	r.friends[friendID][userID] = struct{}{}
	return nil
}

// RemoveFriend removes both directions; an absent relation is not an error.
func (r *UserMemoryRepository) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		return ErrNotFound
	}
	if _, ok := r.users[friendID]; !ok {
		return ErrNotFound
	}
	delete(r.friends[userID], friendID)
	delete(r.friends[friendID], userID)
	return nil
}

func (r *UserMemoryRepository) GetFriends(ctx context.Context, userID int64) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.users[userID]; !ok {
		return nil, ErrNotFound
	}
	return r.materialize(r.friends[userID]), nil
}

func (r *UserMemoryRepository) GetCommonFriends(ctx context.Context, userID, otherID int64) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.users[userID]; !ok {
		return nil, ErrNotFound
	}
	if _, ok := r.users[otherID]; !ok {
		return nil, ErrNotFound
	}
	common := make(map[int64]struct{})
	for id := range r.friends[userID] {
		if _, ok := r.friends[otherID][id]; ok {
			common[id] = struct{}{}
		}
	}
	return r.materialize(common), nil
}

// materialize turns a friend-id set into users sorted by ascending id;
// callers hold the lock.
func (r *UserMemoryRepository) materialize(ids map[int64]struct{}) []domain.User {
	users := make([]domain.User, 0, len(ids))
	for id := range ids {
		if u, ok := r.users[id]; ok {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}
