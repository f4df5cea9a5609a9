package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/you/timetablesvc/domain"
	"github.com/you/timetablesvc/internal/http/middleware"
	"github.com/you/timetablesvc/internal/mocks"
)

func userRouter(svc *mocks.MockUserService, current *domain.User) *gin.Engine {
	h := NewUserHandlers(svc)
	r := gin.New()
	inject := func(c *gin.Context) {
		if current != nil {
			c.Set(middleware.CtxUserKey, current)
		}
		c.Next()
	}
	users := r.Group("/api/users", inject)
	users.GET("/profile", h.GetProfile)
	users.PUT("/profile", h.UpdateProfile)
	users.GET("", h.ListUsers)
	users.GET("/stats", h.GetStats)
	users.GET("/:id", h.GetUser)
	users.PUT("/:id", h.UpdateUser)
	users.DELETE("/:id", h.DeleteUser)
	users.PATCH("/:id/activate", h.ActivateUser)
	users.PATCH("/:id/deactivate", h.DeactivateUser)
	return r
}

func TestUserHandlers_Profile(t *testing.T) {
	current := sampleUser()

	t.Run("get own profile", func(t *testing.T) {
		svc := mocks.NewMockUserService()
		svc.GetByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
			assert.Equal(t, current.ID, id)
			return current, nil
		}

		w := httptest.NewRecorder()
		userRouter(svc, current).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/profile", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		user := body["data"].(map[string]interface{})["user"].(map[string]interface{})
		assert.Equal(t, "alice@x.com", user["email"])
	})

	t.Run("update own profile", func(t *testing.T) {
		svc := mocks.NewMockUserService()
		var seenUpdate domain.ProfileUpdate
		svc.UpdateProfileFunc = func(ctx context.Context, id uint, update domain.ProfileUpdate) (*domain.User, error) {
			seenUpdate = update
			updated := *current
			updated.Department = update.Department
			return &updated, nil
		}

		payload, _ := json.Marshal(map[string]string{"department": "Maths"})
		req := httptest.NewRequest(http.MethodPut, "/api/users/profile", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		userRouter(svc, current).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Maths", seenUpdate.Department)
		assert.Empty(t, seenUpdate.FirstName)
	})
}

func TestUserHandlers_ListUsers(t *testing.T) {
	svc := mocks.NewMockUserService()
	var seenFilter domain.ListFilter
	svc.ListFunc = func(ctx context.Context, filter domain.ListFilter) (*domain.UserPage, error) {
		seenFilter = filter
		return &domain.UserPage{
			Users: []*domain.User{sampleUser()},
			Page:  2, Limit: 5, Total: 11, Pages: 3,
		}, nil
	}

	w := httptest.NewRecorder()
	userRouter(svc, sampleUser()).ServeHTTP(w,
		httptest.NewRequest(http.MethodGet, "/api/users?page=2&limit=5&role=student&search=ali", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, seenFilter.Page)
	assert.Equal(t, 5, seenFilter.Limit)
	assert.Equal(t, domain.RoleStudent, seenFilter.Role)
	assert.Equal(t, "ali", seenFilter.Search)

	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	pagination := data["pagination"].(map[string]interface{})
	assert.Equal(t, float64(11), pagination["total"])
	assert.Equal(t, float64(3), pagination["pages"])
	assert.Len(t, data["users"], 1)
}

func TestUserHandlers_GetUser(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := mocks.NewMockUserService()
		svc.GetByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
			assert.Equal(t, uint(7), id)
			return sampleUser(), nil
		}

		w := httptest.NewRecorder()
		userRouter(svc, sampleUser()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/7", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		userRouter(mocks.NewMockUserService(), sampleUser()).ServeHTTP(w,
			httptest.NewRequest(http.MethodGet, "/api/users/99", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "User not found")
	})

	t.Run("non-numeric id", func(t *testing.T) {
		w := httptest.NewRecorder()
		userRouter(mocks.NewMockUserService(), sampleUser()).ServeHTTP(w,
			httptest.NewRequest(http.MethodGet, "/api/users/abc", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid user ID")
	})
}

func TestUserHandlers_DeleteUser(t *testing.T) {
	svc := mocks.NewMockUserService()
	var deletedID uint
	svc.DeleteFunc = func(ctx context.Context, id uint) error {
		deletedID = id
		return nil
	}

	w := httptest.NewRecorder()
	userRouter(svc, sampleUser()).ServeHTTP(w,
		httptest.NewRequest(http.MethodDelete, "/api/users/3", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(3), deletedID)
}

func TestUserHandlers_ActivateDeactivate(t *testing.T) {
	tests := []struct {
		name            string
		path            string
		expectedActive  bool
		expectedMessage string
	}{
		{"activate", "/api/users/4/activate", true, "User activated successfully"},
		{"deactivate", "/api/users/4/deactivate", false, "User deactivated successfully"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockUserService()
			var seenActive bool
			svc.SetActiveFunc = func(ctx context.Context, id uint, active bool) (*domain.User, error) {
				seenActive = active
				user := sampleUser()
				user.IsActive = active
				return user, nil
			}

			w := httptest.NewRecorder()
			userRouter(svc, sampleUser()).ServeHTTP(w,
				httptest.NewRequest(http.MethodPatch, tt.path, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.expectedActive, seenActive)
			assert.Contains(t, w.Body.String(), tt.expectedMessage)
		})
	}
}

func TestUserHandlers_GetStats(t *testing.T) {
	svc := mocks.NewMockUserService()
	svc.StatsFunc = func(ctx context.Context) (*domain.UserStats, error) {
		return &domain.UserStats{
			Total: 10, Active: 8, Verified: 7,
			ByRole: map[domain.Role]int64{
				domain.RoleAdmin:    1,
				domain.RoleLecturer: 3,
				domain.RoleStudent:  6,
			},
		}, nil
	}

	w := httptest.NewRecorder()
	userRouter(svc, sampleUser()).ServeHTTP(w,
		httptest.NewRequest(http.MethodGet, "/api/users/stats", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(10), data["total"])
	byRole := data["byRole"].(map[string]interface{})
	assert.Equal(t, float64(6), byRole["student"])
}