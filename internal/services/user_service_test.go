package services

import (
	"context"
	"errors"
	"testing"

	"github.com/you/timetablesvc/domain"
	"github.com/you/timetablesvc/internal/mocks"
)

func TestUserService_UpdateProfile(t *testing.T) {
	tests := []struct {
		name     string
		update   domain.ProfileUpdate
		expected domain.User
	}{
		{
			name:   "updates only the provided fields",
			update: domain.ProfileUpdate{FirstName: "Alicia", Department: "Maths"},
			expected: domain.User{
				FirstName: "Alicia", LastName: "Mwangi",
				PhoneNumber: "0700000000", Department: "Maths",
			},
		},
		{
			name:   "empty update changes nothing",
			update: domain.ProfileUpdate{},
			expected: domain.User{
				FirstName: "Alice", LastName: "Mwangi",
				PhoneNumber: "0700000000", Department: "Physics",
			},
		},
		{
			name:   "phone number",
			update: domain.ProfileUpdate{PhoneNumber: "0711111111"},
			expected: domain.User{
				FirstName: "Alice", LastName: "Mwangi",
				PhoneNumber: "0711111111", Department: "Physics",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockUserRepository()
			repo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
				return &domain.User{
					ID: 1, FirstName: "Alice", LastName: "Mwangi",
					PhoneNumber: "0700000000", Department: "Physics",
					Role: domain.RoleStudent,
				}, nil
			}
			var saved *domain.User
			repo.UpdateFunc = func(ctx context.Context, user *domain.User) error {
				saved = user
				return nil
			}

			svc := NewUserService(repo)
			_, err := svc.UpdateProfile(context.Background(), 1, tt.update)
			if err != nil {
				t.Fatalf("UpdateProfile: %v", err)
			}
			if saved.FirstName != tt.expected.FirstName ||
				saved.LastName != tt.expected.LastName ||
				saved.PhoneNumber != tt.expected.PhoneNumber ||
				saved.Department != tt.expected.Department {
				t.Errorf("saved %+v, expected %+v", saved, tt.expected)
			}
		})
	}

	t.Run("missing user", func(t *testing.T) {
		svc := NewUserService(mocks.NewMockUserRepository())
		_, err := svc.UpdateProfile(context.Background(), 99, domain.ProfileUpdate{FirstName: "X"})
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestUserService_List(t *testing.T) {
	tests := []struct {
		name          string
		filter        domain.ListFilter
		total         int64
		expectedPage  int
		expectedLimit int
		expectedPages int
	}{
		{name: "defaults", filter: domain.ListFilter{}, total: 25, expectedPage: 1, expectedLimit: 10, expectedPages: 3},
		{name: "exact fit", filter: domain.ListFilter{Page: 2, Limit: 5}, total: 20, expectedPage: 2, expectedLimit: 5, expectedPages: 4},
		{name: "empty result", filter: domain.ListFilter{Page: 1, Limit: 10}, total: 0, expectedPage: 1, expectedLimit: 10, expectedPages: 0},
		{name: "negative page is clamped", filter: domain.ListFilter{Page: -3, Limit: 10}, total: 7, expectedPage: 1, expectedLimit: 10, expectedPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockUserRepository()
			var seenFilter domain.ListFilter
			repo.ListFunc = func(ctx context.Context, filter domain.ListFilter) ([]*domain.User, int64, error) {
				seenFilter = filter
				return nil, tt.total, nil
			}

			svc := NewUserService(repo)
			page, err := svc.List(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if page.Page != tt.expectedPage || page.Limit != tt.expectedLimit {
				t.Errorf("got page=%d limit=%d, expected page=%d limit=%d",
					page.Page, page.Limit, tt.expectedPage, tt.expectedLimit)
			}
			if page.Pages != tt.expectedPages {
				t.Errorf("got pages=%d, expected %d", page.Pages, tt.expectedPages)
			}
			if page.Total != tt.total {
				t.Errorf("got total=%d, expected %d", page.Total, tt.total)
			}
			if seenFilter.Page != tt.expectedPage || seenFilter.Limit != tt.expectedLimit {
				t.Errorf("repository saw unclamped filter %+v", seenFilter)
			}
		})
	}
}

func TestUserService_SetActive(t *testing.T) {
	repo := mocks.NewMockUserRepository()
	repo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		return &domain.User{ID: 2, Email: "bob@x.com", IsActive: true}, nil
	}
	var saved *domain.User
	repo.UpdateFunc = func(ctx context.Context, user *domain.User) error {
		saved = user
		return nil
	}

	svc := NewUserService(repo)
	user, err := svc.SetActive(context.Background(), 2, false)
	if err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if user.IsActive || saved == nil || saved.IsActive {
		t.Error("expected the account to be deactivated")
	}

	user, err = svc.SetActive(context.Background(), 2, true)
	if err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if !saved.IsActive || !user.IsActive {
		t.Error("expected the account to be reactivated")
	}
}
