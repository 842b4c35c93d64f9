package store

import (
	"context"
	"errors"

	"github.com/infiniteherbs/adminapi/internal/admin/domain"
)

var (
	ErrNotFound = errors.New("store: not found")

	// ErrAlreadyExists reports a unique-constraint violation on user_name
	// or email. The database index is the final authority on uniqueness;
	// service-layer pre-checks only exist to produce friendlier errors.
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login and uniqueness pre-checks.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// GetUserByEmail is used during uniqueness pre-checks.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// ListUsers returns users in creation order, skipping skip rows and
	// returning at most limit.
	ListUsers(ctx context.Context, skip, limit int) ([]domain.User, error)

	// CreateUser inserts a new user (id is provided by the service via
	// ULID). Returns ErrAlreadyExists on a duplicate user_name or email.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser applies a partial patch, bumps updated_at, and returns
	// the updated row. Returns ErrNotFound when id does not exist and
	// ErrAlreadyExists when the patch collides with a unique index.
	UpdateUser(ctx context.Context, id string, patch domain.UserPatch) (domain.User, error)

	// DeleteUser removes a user permanently. Returns ErrNotFound when no
	// row was deleted.
	DeleteUser(ctx context.Context, id string) error

	// CountUsers returns the total number of user rows.
	CountUsers(ctx context.Context) (int64, error)
}
