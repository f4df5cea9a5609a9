package services

import (
	"context"

	"github.com/you/timetablesvc/domain"
)

// UserServiceImpl implements domain.UserService
type UserServiceImpl struct {
	userRepo domain.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo domain.UserRepository) domain.UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

// GetByID implements domain.UserService
func (s *UserServiceImpl) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

// UpdateProfile implements domain.UserService. Only the self-service fields
// are touched; credential, role, and verification state have their own paths.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, id uint, update domain.ProfileUpdate) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.FirstName != "" {
		user.FirstName = update.FirstName
	}
	if update.LastName != "" {
		user.LastName = update.LastName
	}
	if update.PhoneNumber != "" {
		user.PhoneNumber = update.PhoneNumber
	}
	if update.Department != "" {
		user.Department = update.Department
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List implements domain.UserService
func (s *UserServiceImpl) List(ctx context.Context, filter domain.ListFilter) (*domain.UserPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	pages := int(total) / filter.Limit
	if int(total)%filter.Limit != 0 {
		pages++
	}

	return &domain.UserPage{
		Users: users,
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: total,
		Pages: pages,
	}, nil
}

// AdminUpdate implements domain.UserService
func (s *UserServiceImpl) AdminUpdate(ctx context.Context, id uint, update domain.ProfileUpdate) (*domain.User, error) {
	return s.UpdateProfile(ctx, id, update)
}

// Delete implements domain.UserService
func (s *UserServiceImpl) Delete(ctx context.Context, id uint) error {
	return s.userRepo.Delete(ctx, id)
}

// SetActive implements domain.UserService
func (s *UserServiceImpl) SetActive(ctx context.Context, id uint, active bool) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.IsActive = active
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Stats implements domain.UserService
func (s *UserServiceImpl) Stats(ctx context.Context) (*domain.UserStats, error) {
	return s.userRepo.Stats(ctx)
}
