package service

import (
	"context"
	"errors"
	"time"

	"github.com/infiniteherbs/adminapi/internal/admin/domain"
	"github.com/infiniteherbs/adminapi/internal/admin/store"
	"github.com/infiniteherbs/adminapi/pkg/cryptox"
	"github.com/infiniteherbs/adminapi/pkg/idx"
)

var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. Callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	ErrUsernameTaken = errors.New("username_taken")
	ErrEmailTaken    = errors.New("email_taken")

	// ErrDuplicate is the fallback when the store's unique index fires
	// after the pre-checks passed (lost race between check and insert).
	ErrDuplicate = errors.New("duplicate_user")

	ErrUserNotFound = errors.New("user_not_found")
)

// UserService enforces the business rules for user records on top of the
// store: credential checks and uniqueness pre-checks. The store's unique
// indexes remain the authority for races.
type UserService struct {
	Store store.Store
}

// Authenticate looks up the user by username and verifies the password.
// Failures of either kind collapse into ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, u.HashedPassword); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Create hashes the password and inserts a new user. Username then email
// are pre-checked so the caller gets a distinct conflict error for each.
func (s *UserService) Create(ctx context.Context, in domain.NewUser) (domain.User, error) {
	users := s.Store.Users()

	if _, err := users.GetUserByUsername(ctx, in.UserName); err == nil {
		return domain.User{}, ErrUsernameTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	if _, err := users.GetUserByEmail(ctx, in.Email); err == nil {
		return domain.User{}, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, err
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}

	now := time.Now().UTC()
	u := domain.User{
		ID:             idx.New().String(),
		UserName:       in.UserName,
		Email:          in.Email,
		HashedPassword: hash,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Role:           role,
		IsActive:       in.IsActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrDuplicate
		}
		return domain.User{}, err
	}
	return u, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context, skip, limit int) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx, skip, limit)
}

// Update applies a partial patch. Only supplied fields change; updated_at
// is bumped by the store. An email change is pre-checked against other
// records before the unique index has the final say.
func (s *UserService) Update(ctx context.Context, id string, patch domain.UserPatch) (domain.User, error) {
	if patch.Empty() {
		return s.GetByID(ctx, id)
	}

	if patch.Email != nil {
		existing, err := s.Store.Users().GetUserByEmail(ctx, *patch.Email)
		switch {
		case err == nil && existing.ID != id:
			return domain.User{}, ErrEmailTaken
		case err != nil && !errors.Is(err, store.ErrNotFound):
			return domain.User{}, err
		}
	}

	u, err := s.Store.Users().UpdateUser(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return domain.User{}, ErrUserNotFound
		case errors.Is(err, store.ErrAlreadyExists):
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}
	return u, nil
}

// Delete removes the user permanently. Deleting an id that does not exist
// reports ErrUserNotFound, including the second delete of the same id.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.Store.Users().DeleteUser(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
