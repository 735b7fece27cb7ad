package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"carmarket/internal/cache"
	"carmarket/internal/errors"
	"carmarket/internal/model"
	"carmarket/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserPatch carries the mutable fields of a user. Nil fields are left
// untouched.
type UserPatch struct {
	Email    *string
	Password *string
	Role     *model.Role
}

// UserService exposes user account operations.
type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	ListUsers(ctx context.Context, page, limit int) ([]model.User, int64, int, error)
	UpdateUser(ctx context.Context, id uuid.UUID, patch UserPatch, callerRole model.Role) (*model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID, callerRole model.Role) error
}

type userService struct {
	userRepo repository.UserRepository
	cache    *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(userRepo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{userRepo: userRepo, cache: cache}
}

func userCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id)
}

// GetUser returns a user by id; reads go through the cache.
func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, userCacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, userCacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// ListUsers returns one page of users.
func (s *userService) ListUsers(ctx context.Context, page, limit int) ([]model.User, int64, int, error) {
	_, limit, offset := normalizePage(page, limit)
	users, total, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, pageCount(total, limit), nil
}

// UpdateUser patches a user account. Role changes are reserved for
// superadmins; an email change re-checks uniqueness.
func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, patch UserPatch, callerRole model.Role) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if patch.Role != nil && *patch.Role != user.Role {
		if callerRole != model.RoleSuperadmin {
			return nil, errors.ErrPermissionDenied
		}
		if !patch.Role.Valid() {
			return nil, errors.ErrInvalidRole
		}
		user.Role = *patch.Role
	}

	if patch.Email != nil && *patch.Email != user.Email {
		existing, err := s.userRepo.FindByEmail(ctx, *patch.Email)
		if err == nil && existing != nil && existing.ID != user.ID {
			return nil, errors.ErrEmailTaken
		}
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("check email: %w", err)
		}
		user.Email = *patch.Email
	}

	if patch.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, userCacheKey(user.ID))

	return user, nil
}

// DeleteUser removes an account. Plain users may never delete; admins may
// delete only user-role targets; superadmins may delete anyone.
func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID, callerRole model.Role) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if callerRole == model.RoleUser || (callerRole == model.RoleAdmin && user.Role != model.RoleUser) {
		return errors.ErrPermissionDenied
	}

	rows, err := s.userRepo.Delete(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if rows == 0 {
		return errors.ErrNothingDeleted
	}
	_ = s.cache.Delete(ctx, userCacheKey(user.ID))

	return nil
}
