// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/carterperez-dev/adlib/internal/core"
	"github.com/carterperez-dev/adlib/internal/store"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	List(ctx context.Context, params ListUsersParams) ([]User, int, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type repository struct {
	users *store.Collection[User]
}

func NewRepository(st *store.Store) Repository {
	return &repository{
		users: store.NewCollection[User](st, store.UsersFile),
	}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	err := r.users.Update(ctx, func(users []User) ([]User, error) {
		for i := range users {
			if strings.EqualFold(users[i].Email, user.Email) {
				return nil, core.ErrDuplicateKey
			}
		}
		return append(users, *user), nil
	})
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	users, err := r.users.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	for i := range users {
		if users[i].ID == id {
			u := users[i]
			return &u, nil
		}
	}

	return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	users, err := r.users.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	for i := range users {
		if strings.EqualFold(users[i].Email, email) {
			u := users[i]
			return &u, nil
		}
	}

	return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
}

func (r *repository) Update(ctx context.Context, user *User) error {
	err := r.users.Update(ctx, func(users []User) ([]User, error) {
		for i := range users {
			if users[i].ID == user.ID {
				users[i] = *user
				return users, nil
			}
		}
		return nil, core.ErrNotFound
	})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListUsersParams,
) ([]User, int, error) {
	params.Normalize()

	users, err := r.users.Load(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	filtered := make([]User, 0, len(users))
	search := strings.ToLower(params.Search)

	for _, u := range users {
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Email), search) &&
			!strings.Contains(strings.ToLower(u.Name), search) {
			continue
		}
		if params.Role != "" && u.Role != params.Role {
			continue
		}
		if params.Premium != nil && u.IsPremium != *params.Premium {
			continue
		}
		filtered = append(filtered, u)
	}

	total := len(filtered)

	start := params.Offset()
	if start > total {
		start = total
	}
	end := start + params.PageSize
	if end > total {
		end = total
	}

	return filtered[start:end], total, nil
}

func (r *repository) ExistsByEmail(
	ctx context.Context,
	email string,
) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, core.ErrNotFound) {
		return false, nil
	}
	return false, err
}
