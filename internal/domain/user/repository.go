package user

import "context"

type UserRepository interface {
	Save(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID uint) (*User, error)
	// GetByIDs returns the users that exist, keyed by ID. Missing IDs
	// are simply absent from the map.
	GetByIDs(ctx context.Context, userIDs []uint) (map[uint]*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, page, pageSize int) ([]*User, int64, error)
	// ListActiveAdmins returns active admin users ordered by ID
	// ascending. The ordering is the tiebreaker for assignment
	// balancing, so it must be stable.
	ListActiveAdmins(ctx context.Context) ([]*User, error)
}
