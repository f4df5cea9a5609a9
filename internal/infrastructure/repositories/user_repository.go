package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/you/timetablesvc/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID                   uint   `gorm:"primaryKey"`
	FirstName            string `gorm:"size:64"`
	LastName             string `gorm:"size:64"`
	Email                string `gorm:"uniqueIndex;size:255"`
	PasswordHash         string `gorm:"column:password"`
	Role                 string `gorm:"index;size:32"`
	Department           string `gorm:"size:128"`
	PhoneNumber          string `gorm:"size:32"`
	IsActive             bool   `gorm:"index"`
	IsEmailVerified      bool   `gorm:"index"`
	LastLogin            *time.Time
	PasswordResetToken   string `gorm:"size:64"`
	PasswordResetExpires *time.Time
	CreatedAt            time.Time `gorm:"index"`
	UpdatedAt            time.Time
	DeletedAt            gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return domain.ErrEmailTaken
		}
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository. The credential hash is
// stripped from the result.
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := r.FindByEmailWithPassword(ctx, email)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// FindByEmailWithPassword implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmailWithPassword(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository. The credential hash is stripped
// from the result.
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	user, err := r.FindByIDWithPassword(ctx, id)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// FindByIDWithPassword implements domain.UserRepository
func (r *UserRepositoryImpl) FindByIDWithPassword(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// Update implements domain.UserRepository. A user loaded without its
// credential hash keeps the stored hash untouched on save.
func (r *UserRepositoryImpl) Update(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	tx := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", user.ID)
	updates := map[string]interface{}{
		"first_name":             dbUser.FirstName,
		"last_name":              dbUser.LastName,
		"email":                  dbUser.Email,
		"role":                   dbUser.Role,
		"department":             dbUser.Department,
		"phone_number":           dbUser.PhoneNumber,
		"is_active":              dbUser.IsActive,
		"is_email_verified":      dbUser.IsEmailVerified,
		"last_login":             dbUser.LastLogin,
		"password_reset_token":   dbUser.PasswordResetToken,
		"password_reset_expires": dbUser.PasswordResetExpires,
	}
	if dbUser.PasswordHash != "" {
		updates["password"] = dbUser.PasswordHash
	}
	result := tx.Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete implements domain.UserRepository. Admin deletion is permanent.
func (r *UserRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Unscoped().Delete(&DBUser{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List implements domain.UserRepository
func (r *UserRepositoryImpl) List(ctx context.Context, filter domain.ListFilter) ([]*domain.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&DBUser{})
	if filter.Role != "" {
		query = query.Where("role = ?", string(filter.Role))
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?",
			pattern, pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	var dbUsers []DBUser
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&dbUsers).Error
	if err != nil {
		return nil, 0, err
	}

	users := make([]*domain.User, 0, len(dbUsers))
	for i := range dbUsers {
		user := r.dbToDomain(&dbUsers[i])
		user.PasswordHash = ""
		users = append(users, user)
	}
	return users, total, nil
}

// Stats implements domain.UserRepository
func (r *UserRepositoryImpl) Stats(ctx context.Context) (*domain.UserStats, error) {
	stats := &domain.UserStats{ByRole: make(map[domain.Role]int64)}

	base := r.db.WithContext(ctx).Model(&DBUser{})
	if err := base.Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&DBUser{}).Where("is_active = ?", true).Count(&stats.Active).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&DBUser{}).Where("is_email_verified = ?", true).Count(&stats.Verified).Error; err != nil {
		return nil, err
	}

	var rows []struct {
		Role  string
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&DBUser{}).
		Select("role, COUNT(*) as count").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.ByRole[domain.Role(row.Role)] = row.Count
	}
	return stats, nil
}

// isUniqueViolation matches driver-level unique constraint errors that gorm
// does not translate.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:                   user.ID,
		FirstName:            user.FirstName,
		LastName:             user.LastName,
		Email:                strings.ToLower(user.Email),
		PasswordHash:         user.PasswordHash,
		Role:                 string(user.Role),
		Department:           user.Department,
		PhoneNumber:          user.PhoneNumber,
		IsActive:             user.IsActive,
		IsEmailVerified:      user.IsEmailVerified,
		LastLogin:            user.LastLogin,
		PasswordResetToken:   user.PasswordResetToken,
		PasswordResetExpires: user.PasswordResetExpires,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:                   dbUser.ID,
		FirstName:            dbUser.FirstName,
		LastName:             dbUser.LastName,
		Email:                dbUser.Email,
		PasswordHash:         dbUser.PasswordHash,
		Role:                 domain.Role(dbUser.Role),
		Department:           dbUser.Department,
		PhoneNumber:          dbUser.PhoneNumber,
		IsActive:             dbUser.IsActive,
		IsEmailVerified:      dbUser.IsEmailVerified,
		LastLogin:            dbUser.LastLogin,
		PasswordResetToken:   dbUser.PasswordResetToken,
		PasswordResetExpires: dbUser.PasswordResetExpires,
		CreatedAt:            dbUser.CreatedAt,
		UpdatedAt:            dbUser.UpdatedAt,
	}
}
