package services

import (
	"context"

	"education-backend-go/internal/models"
	"education-backend-go/internal/store"
)

type UserService struct {
	users store.Store[models.User]
	roles *RoleService
}

func NewUserService(users store.Store[models.User], roles *RoleService) *UserService {
	return &UserService{users: users, roles: roles}
}

// Create validates the referenced role before inserting, so a user with an
// unknown role_id fails with NotFound and no row is persisted.
func (s *UserService) Create(ctx context.Context, user models.User) (models.User, error) {
	if _, err := s.roles.Exists(ctx, store.Where("id", user.RoleID), true); err != nil {
		return models.User{}, err
	}
	created, err := s.users.Create(ctx, user)
	if err != nil {
		return models.User{}, err
	}
	return s.withRole(ctx, created)
}

func (s *UserService) Get(ctx context.Context, filter store.Filter) (models.User, error) {
	user, err := s.users.Get(ctx, filter)
	if err != nil {
		return models.User{}, err
	}
	return s.withRole(ctx, user)
}

func (s *UserService) GetAll(ctx context.Context) ([]models.User, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i], err = s.withRole(ctx, users[i]); err != nil {
			return nil, err
		}
	}
	return users, nil
}

func (s *UserService) Update(ctx context.Context, user models.User) (models.User, error) {
	if _, err := s.roles.Exists(ctx, store.Where("id", user.RoleID), true); err != nil {
		return models.User{}, err
	}
	updated, err := s.users.Update(ctx, user, store.Where("id", user.ID))
	if err != nil {
		return models.User{}, err
	}
	return s.withRole(ctx, updated)
}

func (s *UserService) Delete(ctx context.Context, userID int64) error {
	return s.users.Delete(ctx, store.Where("id", userID))
}

func (s *UserService) Exists(ctx context.Context, filter store.Filter, raiseOnMissing bool) (bool, error) {
	return s.users.Exists(ctx, filter, raiseOnMissing)
}

func (s *UserService) withRole(ctx context.Context, user models.User) (models.User, error) {
	role, err := s.roles.Get(ctx, store.Where("id", user.RoleID))
	if err != nil {
		return models.User{}, err
	}
	user.Role = &role
	return user, nil
}
