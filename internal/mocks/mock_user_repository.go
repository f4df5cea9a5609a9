package mocks

import (
	"context"

	"github.com/you/timetablesvc/domain"
)

// MockUserRepository implements domain.UserRepository for testing
type MockUserRepository struct {
	CreateFunc                  func(ctx context.Context, user *domain.User) error
	FindByEmailFunc             func(ctx context.Context, email string) (*domain.User, error)
	FindByEmailWithPasswordFunc func(ctx context.Context, email string) (*domain.User, error)
	FindByIDFunc                func(ctx context.Context, id uint) (*domain.User, error)
	FindByIDWithPasswordFunc    func(ctx context.Context, id uint) (*domain.User, error)
	UpdateFunc                  func(ctx context.Context, user *domain.User) error
	DeleteFunc                  func(ctx context.Context, id uint) error
	ListFunc                    func(ctx context.Context, filter domain.ListFilter) ([]*domain.User, int64, error)
	StatsFunc                   func(ctx context.Context) (*domain.UserStats, error)
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByEmailWithPassword(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailWithPasswordFunc != nil {
		return m.FindByEmailWithPasswordFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByIDWithPassword(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDWithPasswordFunc != nil {
		return m.FindByIDWithPasswordFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) List(ctx context.Context, filter domain.ListFilter) ([]*domain.User, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *MockUserRepository) Stats(ctx context.Context) (*domain.UserStats, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc(ctx)
	}
	return &domain.UserStats{ByRole: map[domain.Role]int64{}}, nil
}
