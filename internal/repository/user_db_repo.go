package repository

import (
	"context"
	"errors"

	"filmorate/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserDBRepository implements UserRepository on the relational schema.
// A symmetric friendship pair is two directed rows, always written and
// removed inside one transaction.
type UserDBRepository struct {
	db *gorm.DB
}

func NewUserDBRepository(db *gorm.DB) *UserDBRepository {
	return &UserDBRepository{db: db}
}

func (r *UserDBRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	var models []userModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(models))
	for _, m := range models {
		users = append(users, *toDomainUser(m))
	}
	return users, nil
}

func (r *UserDBRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainUser(m), nil
}

func (r *UserDBRepository) Create(ctx context.Context, user *domain.User) error {
	m := toUserModel(user)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return wrapWriteError(err)
	}
	*user = *toDomainUser(m)
	return nil
}

func (r *UserDBRepository) Update(ctx context.Context, user *domain.User) error {
	res := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", user.ID).Updates(map[string]any{
		"email":    user.Email,
		"login":    user.Login,
		"name":     user.Name,
		"birthday": user.Birthday,
	})
	if res.Error != nil {
		return wrapWriteError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserDBRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&filmLikeModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR friend_id = ?", id, id).Delete(&friendshipModel{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&userModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *UserDBRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// AddFriend records both directions atomically; repeating the call is a
// no-op.
func (r *UserDBRepository) AddFriend(ctx context.Context, userID, friendID int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows := []friendshipModel{
			{UserID: userID, FriendID: friendID},
			{UserID: friendID, FriendID: userID},
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
	})
	return wrapWriteError(err)
}

// RemoveFriend removes both directions atomically; an absent relation is
// not an error.
func (r *UserDBRepository) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.
			Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
				userID, friendID, friendID, userID).
			Delete(&friendshipModel{}).Error
	})
}

func (r *UserDBRepository) GetFriends(ctx context.Context, userID int64) ([]domain.User, error) {
	var models []userModel
	err := r.db.WithContext(ctx).
		Table("users u").
		Select("u.*").
		Joins("JOIN friendship f ON u.id = f.friend_id").
		Where("f.user_id = ?", userID).
		Order("u.id").
		Scan(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainUsers(models), nil
}

func (r *UserDBRepository) GetCommonFriends(ctx context.Context, userID, otherID int64) ([]domain.User, error) {
	var models []userModel
	err := r.db.WithContext(ctx).
		Table("users u").
		Select("u.*").
		Joins("JOIN friendship f1 ON u.id = f1.friend_id").
		Joins("JOIN friendship f2 ON u.id = f2.friend_id").
		Where("f1.user_id = ? AND f2.user_id = ?", userID, otherID).
		Order("u.id").
		Scan(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainUsers(models), nil
}

func toDomainUsers(models []userModel) []domain.User {
	users := make([]domain.User, 0, len(models))
	for _, m := range models {
		users = append(users, *toDomainUser(m))
	}
	return users
}
