package user

import "filmorate/internal/domain"

// UserRequest is the create/update body. Update carries the id; create
// ignores it. A blank name is replaced with the login by the service.
type UserRequest struct {
	ID       int64        `json:"id"`
	Email    string       `json:"email" validate:"required,email"`
	Login    string       `json:"login" validate:"required"`
	Name     string       `json:"name"`
	Birthday *domain.Date `json:"birthday"`
}

func (r UserRequest) ToDomain() *domain.User {
	return &domain.User{
		ID:       r.ID,
		Email:    r.Email,
		Login:    r.Login,
		Name:     r.Name,
		Birthday: r.Birthday,
	}
}
