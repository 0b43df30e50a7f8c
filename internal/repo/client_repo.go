// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Client
// model, part of the generic entity store consumed by the service workflow.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a client is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpalhares/go-maintenance-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ClientFilter carries the optional listing predicates for clients.
type ClientFilter struct {
	SortBy string // allowed: name, created_at (default created_at)
	Order  string // asc|desc (default asc)
	Name   string // exact match when set
}

// CreateClient inserts a new client row with a generated UUID and UTC
// creation timestamp. Name uniqueness is enforced by the DB unique index.
func CreateClient(ctx context.Context, db *gorm.DB, name string) (*domain.Client, error) {
	c := &domain.Client{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// GetClient fetches a single live client by id, or ErrNotFound.
func GetClient(ctx context.Context, db *gorm.DB, id string) (*domain.Client, error) {
	var c domain.Client
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListClients returns all live clients matching the filter, sorted by the
// restricted sort enum. It returns an empty slice when nothing matches.
func ListClients(ctx context.Context, db *gorm.DB, f ClientFilter) ([]domain.Client, error) {
	var out []domain.Client
	q := db.WithContext(ctx).Order(sortClause(f.SortBy, f.Order, "created_at", "name", "created_at"))
	if f.Name != "" {
		q = q.Where("name = ?", f.Name)
	}
	err := q.Find(&out).Error
	return out, err
}

// UpdateClientName renames a client. Returns ErrNotFound when no live row
// was affected.
func UpdateClientName(ctx context.Context, db *gorm.DB, id, name string) error {
	res := db.WithContext(ctx).
		Model(&domain.Client{}).
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

// SoftDeleteClient stamps deleted_at on the client. Already-deleted rows are
// invisible, so a second call reports ErrNotFound.
func SoftDeleteClient(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Client{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
