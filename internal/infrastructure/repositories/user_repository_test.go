package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/you/timetablesvc/domain"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&DBUser{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func seedUser(t *testing.T, repo domain.UserRepository, email string, role domain.Role) *domain.User {
	t.Helper()

	user := &domain.User{
		FirstName:    "Alice",
		LastName:     "Mwangi",
		Email:        email,
		PasswordHash: "hashed_secret",
		Role:         role,
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return user
}

func TestUserRepository_CreateAndDuplicate(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := seedUser(t, repo, "alice@example.com", domain.RoleStudent)
	if user.ID == 0 {
		t.Fatal("expected created user to get an id")
	}

	dup := &domain.User{
		FirstName:    "Another",
		LastName:     "Alice",
		Email:        "alice@example.com",
		PasswordHash: "hashed_other",
		Role:         domain.RoleStudent,
	}
	if err := repo.Create(ctx, dup); !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserRepository_EmailIsCaseNormalized(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	user := &domain.User{
		FirstName:    "Bob",
		LastName:     "Otieno",
		Email:        "Bob.Otieno@Example.COM",
		PasswordHash: "hashed_secret",
		Role:         domain.RoleLecturer,
	}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("Create: %v", err)
	}

	found, err := repo.FindByEmail(ctx, "bob.otieno@example.com")
	if err != nil {
		t.Fatalf("FindByEmail lowercase: %v", err)
	}
	if found.ID != user.ID {
		t.Errorf("expected user %d, got %d", user.ID, found.ID)
	}

	if _, err := repo.FindByEmail(ctx, "BOB.OTIENO@EXAMPLE.COM"); err != nil {
		t.Errorf("FindByEmail uppercase: %v", err)
	}
}

func TestUserRepository_PasswordExcludedByDefault(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	seedUser(t, repo, "carol@example.com", domain.RoleStudent)

	found, err := repo.FindByEmail(ctx, "carol@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if found.PasswordHash != "" {
		t.Error("default lookup must not expose the credential hash")
	}

	withPassword, err := repo.FindByEmailWithPassword(ctx, "carol@example.com")
	if err != nil {
		t.Fatalf("FindByEmailWithPassword: %v", err)
	}
	if withPassword.PasswordHash != "hashed_secret" {
		t.Errorf("expected credential hash, got %q", withPassword.PasswordHash)
	}

	byID, err := repo.FindByID(ctx, found.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if byID.PasswordHash != "" {
		t.Error("FindByID must not expose the credential hash")
	}
}

func TestUserRepository_FindMissing(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	if _, err := repo.FindByEmail(ctx, "ghost@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := repo.FindByID(ctx, 9999); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_UpdatePreservesPassword(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	created := seedUser(t, repo, "dan@example.com", domain.RoleStudent)

	// Loaded without the hash, mutated, saved: the stored hash must survive.
	user, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	now := time.Now()
	user.IsActive = true
	user.IsEmailVerified = true
	user.LastLogin = &now
	if err := repo.Update(ctx, user); err != nil {
		t.Fatalf("Update: %v", err)
	}

	reloaded, err := repo.FindByIDWithPassword(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByIDWithPassword: %v", err)
	}
	if reloaded.PasswordHash != "hashed_secret" {
		t.Errorf("credential hash lost on update: %q", reloaded.PasswordHash)
	}
	if !reloaded.IsActive || !reloaded.IsEmailVerified {
		t.Error("expected activation flags to persist")
	}
	if reloaded.LastLogin == nil {
		t.Error("expected lastLogin to persist")
	}
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	created := seedUser(t, repo, "erin@example.com", domain.RoleStudent)

	user, _ := repo.FindByIDWithPassword(ctx, created.ID)
	user.PasswordHash = "hashed_newpass"
	if err := repo.Update(ctx, user); err != nil {
		t.Fatalf("Update: %v", err)
	}

	reloaded, _ := repo.FindByIDWithPassword(ctx, created.ID)
	if reloaded.PasswordHash != "hashed_newpass" {
		t.Errorf("expected new hash, got %q", reloaded.PasswordHash)
	}
}

func TestUserRepository_UpdateMissingUser(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))

	err := repo.Update(context.Background(), &domain.User{ID: 12345, Email: "none@example.com"})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_Delete(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	created := seedUser(t, repo, "frank@example.com", domain.RoleStudent)

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, created.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, created.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound on second delete, got %v", err)
	}
}

func TestUserRepository_ListAndFilter(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	seedUser(t, repo, "s1@example.com", domain.RoleStudent)
	seedUser(t, repo, "s2@example.com", domain.RoleStudent)
	seedUser(t, repo, "lect@example.com", domain.RoleLecturer)

	users, total, err := repo.List(ctx, domain.ListFilter{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 || len(users) != 3 {
		t.Errorf("expected 3 users, got total=%d len=%d", total, len(users))
	}
	for _, u := range users {
		if u.PasswordHash != "" {
			t.Error("listing must not expose credential hashes")
		}
	}

	_, total, err = repo.List(ctx, domain.ListFilter{Page: 1, Limit: 10, Role: domain.RoleStudent})
	if err != nil {
		t.Fatalf("List role filter: %v", err)
	}
	if total != 2 {
		t.Errorf("expected 2 students, got %d", total)
	}

	users, total, err = repo.List(ctx, domain.ListFilter{Page: 1, Limit: 10, Search: "lect"})
	if err != nil {
		t.Fatalf("List search: %v", err)
	}
	if total != 1 || users[0].Role != domain.RoleLecturer {
		t.Errorf("expected the lecturer, got total=%d", total)
	}

	// Pagination.
	users, total, err = repo.List(ctx, domain.ListFilter{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}
	if total != 3 || len(users) != 1 {
		t.Errorf("expected 1 user on page 2, got %d", len(users))
	}
}

func TestUserRepository_Stats(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	active := seedUser(t, repo, "a@example.com", domain.RoleStudent)
	loaded, _ := repo.FindByID(ctx, active.ID)
	loaded.IsActive = true
	loaded.IsEmailVerified = true
	if err := repo.Update(ctx, loaded); err != nil {
		t.Fatalf("Update: %v", err)
	}
	seedUser(t, repo, "b@example.com", domain.RoleLecturer)

	stats, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 2 {
		t.Errorf("expected total 2, got %d", stats.Total)
	}
	if stats.Active != 1 || stats.Verified != 1 {
		t.Errorf("expected 1 active and 1 verified, got %d/%d", stats.Active, stats.Verified)
	}
	if stats.ByRole[domain.RoleStudent] != 1 || stats.ByRole[domain.RoleLecturer] != 1 {
		t.Errorf("unexpected role counts: %v", stats.ByRole)
	}
}
