package repository

import (
	"context"

	"github.com/vfg2006/captive-portal-api/internal/domain"
)

type UserRepository interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	SaveUsers(ctx context.Context, users []domain.User) error
	SaveUser(ctx context.Context, user domain.User) error
	FindUser(ctx context.Context, userID string) (*domain.User, error)
	GetCurrentUserID(ctx context.Context) (string, error)
	SetCurrentUserID(ctx context.Context, userID string) error
	ClearCurrentUserID(ctx context.Context) error
}

type userRepository struct {
	store DocumentStore
}

func NewUserRepository(store DocumentStore) UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, _, err := readDocument[[]domain.User](ctx, r.store, UsersKey)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

func (r *userRepository) SaveUsers(ctx context.Context, users []domain.User) error {
	return writeDocument(ctx, r.store, UsersKey, users)
}

// SaveUser replaces the user with the same id or appends it.
func (r *userRepository) SaveUser(ctx context.Context, user domain.User) error {
	users, err := r.ListUsers(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = user
			replaced = true
			break
		}
	}
	if !replaced {
		users = append(users, user)
	}

	return r.SaveUsers(ctx, users)
}

// FindUser returns nil without error when no user has userID.
func (r *userRepository) FindUser(ctx context.Context, userID string) (*domain.User, error) {
	users, err := r.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	for i := range users {
		if users[i].ID == userID {
			return &users[i], nil
		}
	}
	return nil, nil
}

// GetCurrentUserID returns "" when no user is current.
func (r *userRepository) GetCurrentUserID(ctx context.Context) (string, error) {
	userID, _, err := readDocument[string](ctx, r.store, CurrentUserIDKey)
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (r *userRepository) SetCurrentUserID(ctx context.Context, userID string) error {
	if userID == "" {
		return r.ClearCurrentUserID(ctx)
	}
	return writeDocument(ctx, r.store, CurrentUserIDKey, userID)
}

func (r *userRepository) ClearCurrentUserID(ctx context.Context) error {
	return r.store.Delete(ctx, CurrentUserIDKey)
}

// ResolveCurrentUser follows the current user pointer. A pointer to a user
// that no longer exists resolves to nil.
func ResolveCurrentUser(ctx context.Context, repo UserRepository) (*domain.User, error) {
	userID, err := repo.GetCurrentUserID(ctx)
	if err != nil || userID == "" {
		return nil, err
	}
	return repo.FindUser(ctx, userID)
}
