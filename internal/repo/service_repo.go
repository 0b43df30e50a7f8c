// Repository functions for the Service model.
//
// Service rows carry four user stamps (created/updated/closed/deleted by)
// and belong to a department. Reads join departments so that services of a
// soft-deleted department are invisible, matching the listing contract.
// Mutations here are row-level only; the cascades to revisions are composed
// by the workflow service inside a transaction.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpalhares/go-maintenance-backend/internal/domain"
)

// ServiceFilter carries the optional listing predicates for services.
// SortBy is restricted to created_at, the only ordering the API exposes.
type ServiceFilter struct {
	SortBy       string // allowed: created_at (default created_at)
	Order        string // asc|desc (default asc)
	DepartmentID string
	CreatedBy    string
	ClosedBy     string
	ShowDeleted  bool // include soft-deleted services (listing only)
}

// preloadServiceRefs attaches the associations needed to render a service
// view. Stamp users and the client are loaded unscoped: a soft-deleted
// actor or client must still render on historical services.
func preloadServiceRefs(q *gorm.DB) *gorm.DB {
	unscoped := func(db *gorm.DB) *gorm.DB { return db.Unscoped() }
	return q.
		Preload("Department", unscoped).
		Preload("Department.Client", unscoped).
		Preload("Creator", unscoped).
		Preload("Updater", unscoped).
		Preload("Closer", unscoped).
		Preload("Deleter", unscoped)
}

// CreateService inserts a new service row for departmentID stamped with
// actorID as creator and updater. Revision fan-out happens in the workflow
// layer, inside the same transaction as this insert.
func CreateService(ctx context.Context, db *gorm.DB, departmentID, actorID string) (*domain.Service, error) {
	now := time.Now().UTC()
	s := &domain.Service{
		ID:           uuid.NewString(),
		DepartmentID: departmentID,
		CreatedAt:    now,
		UpdatedAt:    now,
		CreatedBy:    actorID,
		UpdatedBy:    actorID,
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// GetService fetches a single live service by id with all view associations
// preloaded. Services whose department is soft-deleted are treated as
// missing. Returns ErrNotFound when no row qualifies.
func GetService(ctx context.Context, db *gorm.DB, id string) (*domain.Service, error) {
	var s domain.Service
	err := preloadServiceRefs(db.WithContext(ctx)).
		Joins("JOIN departments ON departments.id = services.department_id AND departments.deleted_at IS NULL").
		Where("services.id = ?", id).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListServices returns services matching the filter with view associations
// preloaded. By default soft-deleted services and services of soft-deleted
// departments are excluded; ShowDeleted lifts both exclusions.
func ListServices(ctx context.Context, db *gorm.DB, f ServiceFilter) ([]domain.Service, error) {
	q := db.WithContext(ctx)
	if f.ShowDeleted {
		q = q.Unscoped()
	} else {
		q = q.Joins("JOIN departments ON departments.id = services.department_id AND departments.deleted_at IS NULL")
	}
	q = preloadServiceRefs(q).
		Order("services." + sortClause(f.SortBy, f.Order, "created_at", "created_at"))
	if f.DepartmentID != "" {
		q = q.Where("services.department_id = ?", f.DepartmentID)
	}
	if f.CreatedBy != "" {
		q = q.Where("services.created_by = ?", f.CreatedBy)
	}
	if f.ClosedBy != "" {
		q = q.Where("services.closed_by = ?", f.ClosedBy)
	}
	var out []domain.Service
	err := q.Find(&out).Error
	return out, err
}

// TouchService refreshes the updated_at/updated_by stamps. Every mutation
// under a service counts as service activity, including revision patches.
func TouchService(ctx context.Context, db *gorm.DB, id, actorID string) error {
	res := db.WithContext(ctx).
		Model(&domain.Service{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"updated_at": time.Now().UTC(),
			"updated_by": actorID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CloseService stamps closed_at/closed_by and refreshes the updated stamps.
// Closing an already-closed service simply re-stamps; there is no reopen.
func CloseService(ctx context.Context, db *gorm.DB, id, actorID string) error {
	now := time.Now().UTC()
	res := db.WithContext(ctx).
		Model(&domain.Service{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"closed_at":  now,
			"closed_by":  actorID,
			"updated_at": now,
			"updated_by": actorID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDeleteService stamps deleted_at/deleted_by on the service row. The
// default query scope hides deleted rows, so a repeat call affects nothing
// and reports ErrNotFound, which keeps delete visibly non-idempotent.
func SoftDeleteService(ctx context.Context, db *gorm.DB, id, actorID string) error {
	res := db.WithContext(ctx).
		Model(&domain.Service{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"deleted_at": time.Now().UTC(),
			"deleted_by": actorID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ServicesStats returns aggregate metadata over live services: total row
// count and the greatest updated_at. The HTTP layer folds these into a weak
// ETag for the listing endpoint. When there are no rows the returned count
// is 0 and maxUpdatedAt is nil.
func ServicesStats(ctx context.Context, db *gorm.DB) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Service{})

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
