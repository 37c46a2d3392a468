package api

import (
	"time"

	"github.com/phrazzld/mesto-api/internal/domain"
)

// SignupRequest defines the payload for POST /signup.
// Profile fields are optional; defaults are applied when they are omitted.
type SignupRequest struct {
	Email    string `json:"email"            validate:"required,email"`
	Password string `json:"password"         validate:"required,min=8,max=72"`
	Name     string `json:"name,omitempty"   validate:"omitempty,min=2,max=30"`
	About    string `json:"about,omitempty"  validate:"omitempty,min=2,max=30"`
	Avatar   string `json:"avatar,omitempty" validate:"omitempty,http_url"`
}

// SigninRequest defines the payload for POST /signin.
type SigninRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateProfileRequest defines the payload for PATCH /users/me.
type UpdateProfileRequest struct {
	Name  string `json:"name"  validate:"required,min=2,max=30"`
	About string `json:"about" validate:"required,min=2,max=30"`
}

// UpdateAvatarRequest defines the payload for PATCH /users/me/avatar.
type UpdateAvatarRequest struct {
	Avatar string `json:"avatar" validate:"required,http_url"`
}

// CreateCardRequest defines the payload for POST /cards.
type CreateCardRequest struct {
	Name string `json:"name" validate:"required,min=2,max=30"`
	Link string `json:"link" validate:"required,http_url"`
}

// TokenResponse is returned by a successful sign-in.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse is the public view of a user. It never carries the password.
type UserResponse struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	About  string `json:"about"`
	Avatar string `json:"avatar"`
	Email  string `json:"email"`
}

// UsersResponse wraps the user list.
type UsersResponse struct {
	Users []UserResponse `json:"users"`
}

// DataResponse wraps a single payload under "data".
type DataResponse struct {
	Data interface{} `json:"data"`
}

// CardResponse is the public view of a card.
type CardResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Link      string    `json:"link"`
	Owner     string    `json:"owner"`
	Likes     []string  `json:"likes"`
	CreatedAt time.Time `json:"createdAt"`
}

// MessageResponse carries a confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

func userToResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:     u.ID,
		Name:   u.Name,
		About:  u.About,
		Avatar: u.Avatar,
		Email:  u.Email,
	}
}

func usersToResponse(users []*domain.User) UsersResponse {
	resp := UsersResponse{Users: make([]UserResponse, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, userToResponse(u))
	}
	return resp
}

func cardToResponse(c *domain.Card) CardResponse {
	likes := c.Likes
	if likes == nil {
		likes = []string{}
	}
	return CardResponse{
		ID:        c.ID,
		Name:      c.Name,
		Link:      c.Link,
		Owner:     c.OwnerID,
		Likes:     likes,
		CreatedAt: c.CreatedAt,
	}
}

func cardsToResponse(cards []*domain.Card) []CardResponse {
	resp := make([]CardResponse, 0, len(cards))
	for _, c := range cards {
		resp = append(resp, cardToResponse(c))
	}
	return resp
}
