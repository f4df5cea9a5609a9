package mocks

import (
	"context"

	"github.com/you/timetablesvc/domain"
)

// MockUserService implements domain.UserService for handler testing
type MockUserService struct {
	GetByIDFunc       func(ctx context.Context, id uint) (*domain.User, error)
	UpdateProfileFunc func(ctx context.Context, id uint, update domain.ProfileUpdate) (*domain.User, error)
	ListFunc          func(ctx context.Context, filter domain.ListFilter) (*domain.UserPage, error)
	AdminUpdateFunc   func(ctx context.Context, id uint, update domain.ProfileUpdate) (*domain.User, error)
	DeleteFunc        func(ctx context.Context, id uint) error
	SetActiveFunc     func(ctx context.Context, id uint, active bool) (*domain.User, error)
	StatsFunc         func(ctx context.Context) (*domain.UserStats, error)
}

// NewMockUserService creates a new MockUserService
func NewMockUserService() *MockUserService {
	return &MockUserService{}
}

func (m *MockUserService) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserService) UpdateProfile(ctx context.Context, id uint, update domain.ProfileUpdate) (*domain.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, id, update)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserService) List(ctx context.Context, filter domain.ListFilter) (*domain.UserPage, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return &domain.UserPage{}, nil
}

func (m *MockUserService) AdminUpdate(ctx context.Context, id uint, update domain.ProfileUpdate) (*domain.User, error) {
	if m.AdminUpdateFunc != nil {
		return m.AdminUpdateFunc(ctx, id, update)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserService) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockUserService) SetActive(ctx context.Context, id uint, active bool) (*domain.User, error) {
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, id, active)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserService) Stats(ctx context.Context) (*domain.UserStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return &domain.UserStats{ByRole: map[domain.Role]int64{}}, nil
}
