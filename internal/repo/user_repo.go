// Repository functions for the User model. Users are referenced by the
// service workflow only as actor stamps, but the entity store still owns
// their full CRUD surface.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpalhares/go-maintenance-backend/internal/domain"
)

// UserFilter carries the optional listing predicates for users.
type UserFilter struct {
	SortBy   string // allowed: username, name, created_at (default created_at)
	Order    string // asc|desc (default asc)
	Username string // exact match when set
}

// CreateUser inserts a new user row. Username uniqueness is enforced by the
// DB unique index.
func CreateUser(ctx context.Context, db *gorm.DB, username, name string) (*domain.User, error) {
	u := &domain.User{
		ID:        uuid.NewString(),
		Username:  username,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// GetUser fetches a single live user by id, or ErrNotFound.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// ListUsers returns all live users matching the filter.
func ListUsers(ctx context.Context, db *gorm.DB, f UserFilter) ([]domain.User, error) {
	var out []domain.User
	q := db.WithContext(ctx).Order(sortClause(f.SortBy, f.Order, "created_at", "username", "name", "created_at"))
	if f.Username != "" {
		q = q.Where("username = ?", f.Username)
	}
	err := q.Find(&out).Error
	return out, err
}

// UpdateUserName updates the display name of a user. Returns ErrNotFound
// when no live row was affected.
func UpdateUserName(ctx context.Context, db *gorm.DB, id, name string) error {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update("name", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDeleteUser stamps deleted_at on the user.
func SoftDeleteUser(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
