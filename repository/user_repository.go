package repository

import (
	"context"
	"fmt"
	"log"
	"net/mail"
	"strings"

	"luxemarket/models"
	"luxemarket/storage"
)

// UserRepository persists the signed-in shopper per session under "<session>:luxemarket_user"
type UserRepository struct {
	store storage.Storage
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(store storage.Storage) *UserRepository {
	return &UserRepository{store: store}
}

// Ensure UserRepository implements UserRepositoryInterface
var _ UserRepositoryInterface = (*UserRepository)(nil)

// Get returns the session user, or ErrNotFound when nobody is signed in
func (r *UserRepository) Get(ctx context.Context, session string) (*models.User, error) {
	var user models.User
	found, err := storage.GetJSON(ctx, SessionStore(r.store, session), storage.KeyUser, &user)
	if err != nil && !found {
		log.Printf("❌ Error reading user: %v", err)
		return nil, fmt.Errorf("failed to read user: %w", err)
	}
	if err != nil {
		log.Printf("⚠️  Stored user is malformed, treating as signed out: %v", err)
		return nil, fmt.Errorf("session user: %w", ErrNotFound)
	}
	if !found {
		return nil, fmt.Errorf("session user: %w", ErrNotFound)
	}
	return &user, nil
}

// Set signs a user into the session
func (r *UserRepository) Set(ctx context.Context, session string, user models.User) (*models.User, error) {
	user.Name = strings.TrimSpace(user.Name)
	user.Email = strings.TrimSpace(user.Email)
	if user.Name == "" {
		return nil, fmt.Errorf("name is required: %w", ErrValidation)
	}
	if _, err := mail.ParseAddress(user.Email); err != nil {
		return nil, fmt.Errorf("invalid email %q: %w", user.Email, ErrValidation)
	}

	if err := storage.SetJSON(ctx, SessionStore(r.store, session), storage.KeyUser, user); err != nil {
		log.Printf("❌ Error saving user: %v", err)
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	log.Printf("✓ User signed in: %s", user.Email)
	return &user, nil
}

// Clear signs the session out
func (r *UserRepository) Clear(ctx context.Context, session string) error {
	if err := SessionStore(r.store, session).Remove(ctx, storage.KeyUser); err != nil {
		return fmt.Errorf("failed to clear user: %w", err)
	}
	return nil
}
