// Repository functions for the Department model. Departments join services
// to clients; listings exclude departments whose client was soft-deleted
// only at the service-view level, so the raw queries here stay simple.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpalhares/go-maintenance-backend/internal/domain"
)

// DepartmentFilter carries the optional listing predicates for departments.
type DepartmentFilter struct {
	SortBy   string // allowed: name, created_at (default created_at)
	Order    string // asc|desc (default asc)
	ClientID string // scope to one client when set
}

// CreateDepartment inserts a new department row owned by clientID.
func CreateDepartment(ctx context.Context, db *gorm.DB, name, clientID string) (*domain.Department, error) {
	d := &domain.Department{
		ID:        uuid.NewString(),
		Name:      name,
		ClientID:  clientID,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(d).Error; err != nil {
		return nil, err
	}
	return d, nil
}

// GetDepartment fetches a single live department by id with its client
// association preloaded, or ErrNotFound.
func GetDepartment(ctx context.Context, db *gorm.DB, id string) (*domain.Department, error) {
	var d domain.Department
	err := db.WithContext(ctx).
		Preload("Client").
		Where("id = ?", id).
		First(&d).Error
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListDepartments returns all live departments matching the filter, client
// preloaded.
func ListDepartments(ctx context.Context, db *gorm.DB, f DepartmentFilter) ([]domain.Department, error) {
	var out []domain.Department
	q := db.WithContext(ctx).
		Preload("Client").
		Order(sortClause(f.SortBy, f.Order, "created_at", "name", "created_at"))
	if f.ClientID != "" {
		q = q.Where("client_id = ?", f.ClientID)
	}
	err := q.Find(&out).Error
	return out, err
}

// UpdateDepartmentName renames a department. Returns ErrNotFound when no
// live row was affected.
func UpdateDepartmentName(ctx context.Context, db *gorm.DB, id, name string) error {
	res := db.WithContext(ctx).
		Model(&domain.Department{}).
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

// SoftDeleteDepartment stamps deleted_at on the department. Services of a
// deleted department disappear from default listings; their rows are kept.
func SoftDeleteDepartment(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Department{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
