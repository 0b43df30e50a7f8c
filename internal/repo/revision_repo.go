// Repository functions for the Revision model (the revision ledger).
//
// Every operation is scoped by service_id: revisions of one service can
// never leak into or be mutated through another, even when the same machine
// appears in both. Bulk operations (insert at fan-out, close cascade,
// delete cascade) are meant to run on a transaction handle supplied by the
// workflow layer.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpalhares/go-maintenance-backend/internal/domain"
)

// InsertRevisions bulk-creates one revision per machine id for serviceID.
// All outcome fields start false with nil comments. Returns the created
// rows. An empty machine list is a caller bug upstream (the validation gate
// rejects machineless departments before the workflow runs) and inserts
// nothing.
func InsertRevisions(ctx context.Context, db *gorm.DB, serviceID string, machineIDs []string) ([]domain.Revision, error) {
	if len(machineIDs) == 0 {
		return []domain.Revision{}, nil
	}
	revs := make([]domain.Revision, 0, len(machineIDs))
	for _, mid := range machineIDs {
		revs = append(revs, domain.Revision{
			ID:        uuid.NewString(),
			ServiceID: serviceID,
			MachineID: mid,
		})
	}
	if err := db.WithContext(ctx).Create(&revs).Error; err != nil {
		return nil, err
	}
	return revs, nil
}

// GetRevision fetches the live revision for the (service, machine) pair, or
// ErrNotFound.
func GetRevision(ctx context.Context, db *gorm.DB, serviceID, machineID string) (*domain.Revision, error) {
	var r domain.Revision
	err := db.WithContext(ctx).
		Where("service_id = ? AND machine_id = ?", serviceID, machineID).
		First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// HasRevision reports whether a live revision exists for the
// (service, machine) pair. The validation gate uses it to reject patches
// against machines that were not part of the department at fan-out time.
func HasRevision(ctx context.Context, db *gorm.DB, serviceID, machineID string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Revision{}).
		Where("service_id = ? AND machine_id = ?", serviceID, machineID).
		Count(&n).Error
	return n > 0, err
}

// ListRevisions returns all live revisions belonging to serviceID.
func ListRevisions(ctx context.Context, db *gorm.DB, serviceID string) ([]domain.Revision, error) {
	var out []domain.Revision
	err := db.WithContext(ctx).
		Where("service_id = ?", serviceID).
		Find(&out).Error
	return out, err
}

// UpdateRevision applies a partial column update to the revision of the
// (service, machine) pair. Columns absent from changes keep their values.
// Returns ErrNotFound when no live row was affected.
func UpdateRevision(ctx context.Context, db *gorm.DB, serviceID, machineID string, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}
	res := db.WithContext(ctx).
		Model(&domain.Revision{}).
		Where("service_id = ? AND machine_id = ?", serviceID, machineID).
		Updates(changes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CloseRevisions marks every live revision of serviceID closed. Runs as
// part of the close cascade transaction.
func CloseRevisions(ctx context.Context, db *gorm.DB, serviceID string) error {
	return db.WithContext(ctx).
		Model(&domain.Revision{}).
		Where("service_id = ?", serviceID).
		Update("closed", true).Error
}

// SoftDeleteRevisions stamps deleted_at on every live revision of
// serviceID. Revisions carry no deleted_by stamp; only the parent service
// records the acting user. Runs as part of the delete cascade transaction.
func SoftDeleteRevisions(ctx context.Context, db *gorm.DB, serviceID string) error {
	return db.WithContext(ctx).
		Model(&domain.Revision{}).
		Where("service_id = ?", serviceID).
		Update("deleted_at", time.Now().UTC()).Error
}
