package http

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/infiniteherbs/adminapi/internal/admin/domain"
)

// UserResponse is the public user representation. The password hash is not
// part of this struct, so it can never leak through serialization.
type UserResponse struct {
	ID        string    `json:"id"`
	UserName  string    `json:"userName"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		UserName:  u.UserName,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

type LoginRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if r.UserName == "" {
		return fmt.Errorf("userName is required")
	}
	if r.Password == "" {
		return fmt.Errorf("password is required")
	}
	return nil
}

type LoginResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	TokenType    string       `json:"tokenType"`
	User         UserResponse `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

// UserCreateRequest is the body for register and user creation. Role and
// isActive are optional; the defaults are "user" and false.
type UserCreateRequest struct {
	UserName  string `json:"userName"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	Password  string `json:"password"`
	IsActive  *bool  `json:"isActive"`
}

func (r UserCreateRequest) Validate() error {
	if err := validateLength("userName", r.UserName, 3, 50); err != nil {
		return err
	}
	if err := validateEmail(r.Email); err != nil {
		return err
	}
	if err := validateLength("firstName", r.FirstName, 2, 100); err != nil {
		return err
	}
	if err := validateLength("lastName", r.LastName, 2, 100); err != nil {
		return err
	}
	if err := validateLength("password", r.Password, 6, 100); err != nil {
		return err
	}
	if r.Role != "" && !domain.Role(r.Role).Valid() {
		return fmt.Errorf("role must be one of admin, user, viewer")
	}
	return nil
}

func (r UserCreateRequest) toDomain() domain.NewUser {
	isActive := false
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	return domain.NewUser{
		UserName:  r.UserName,
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Role:      domain.Role(r.Role),
		IsActive:  isActive,
	}
}

// UserUpdateRequest is a partial update. Absent fields stay untouched;
// userName and password are immutable through this surface.
type UserUpdateRequest struct {
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Role      *string `json:"role"`
	IsActive  *bool   `json:"isActive"`
}

func (r UserUpdateRequest) Validate() error {
	if r.Email != nil {
		if err := validateEmail(*r.Email); err != nil {
			return err
		}
	}
	if r.FirstName != nil {
		if err := validateLength("firstName", *r.FirstName, 2, 100); err != nil {
			return err
		}
	}
	if r.LastName != nil {
		if err := validateLength("lastName", *r.LastName, 2, 100); err != nil {
			return err
		}
	}
	if r.Role != nil && !domain.Role(*r.Role).Valid() {
		return fmt.Errorf("role must be one of admin, user, viewer")
	}
	return nil
}

func (r UserUpdateRequest) toPatch() domain.UserPatch {
	patch := domain.UserPatch{
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		IsActive:  r.IsActive,
	}
	if r.Role != nil {
		role := domain.Role(*r.Role)
		patch.Role = &role
	}
	return patch
}

func validateLength(field, value string, min, max int) error {
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		return fmt.Errorf("%s must be between %d and %d characters", field, min, max)
	}
	return nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email, "@") {
		return fmt.Errorf("email must be a valid email address")
	}
	return nil
}
