// Repository functions for the Machine model. The service workflow reads
// machines twice: once at service creation (the revision fan-out snapshot)
// and once per detail fetch (the machines/revisions expansion).
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpalhares/go-maintenance-backend/internal/domain"
)

// MachineFilter carries the optional listing predicates for machines.
type MachineFilter struct {
	SortBy       string // allowed: manufacturer, model, created_at (default created_at)
	Order        string // asc|desc (default asc)
	DepartmentID string // scope to one department when set
	Manufacturer string // exact match when set
	Model        string // exact match when set
}

// CreateMachine inserts a new machine row in departmentID. The
// (model, serial_number) pair is enforced unique by the DB index.
func CreateMachine(ctx context.Context, db *gorm.DB, departmentID, manufacturer, model, serialNumber string) (*domain.Machine, error) {
	m := &domain.Machine{
		ID:           uuid.NewString(),
		Manufacturer: manufacturer,
		Model:        model,
		SerialNumber: serialNumber,
		DepartmentID: departmentID,
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// GetMachine fetches a single live machine by id, or ErrNotFound.
func GetMachine(ctx context.Context, db *gorm.DB, id string) (*domain.Machine, error) {
	var m domain.Machine
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMachines returns all live machines matching the filter, sorted by the
// restricted sort enum.
func ListMachines(ctx context.Context, db *gorm.DB, f MachineFilter) ([]domain.Machine, error) {
	var out []domain.Machine
	q := db.WithContext(ctx).
		Order(sortClause(f.SortBy, f.Order, "created_at", "manufacturer", "model", "created_at"))
	if f.DepartmentID != "" {
		q = q.Where("department_id = ?", f.DepartmentID)
	}
	if f.Manufacturer != "" {
		q = q.Where("manufacturer = ?", f.Manufacturer)
	}
	if f.Model != "" {
		q = q.Where("model = ?", f.Model)
	}
	err := q.Find(&out).Error
	return out, err
}

// CountDepartmentMachines returns the number of live machines currently
// assigned to departmentID. The validation gate uses it for the
// "department has at least one machine" precondition.
func CountDepartmentMachines(ctx context.Context, db *gorm.DB, departmentID string) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Machine{}).
		Where("department_id = ?", departmentID).
		Count(&n).Error
	return n, err
}

// UpdateMachine applies the provided column changes to a machine and
// refreshes updated_at. Returns ErrNotFound when no live row was affected.
func UpdateMachine(ctx context.Context, db *gorm.DB, id string, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}
	changes["updated_at"] = time.Now().UTC()
	res := db.WithContext(ctx).
		Model(&domain.Machine{}).
		Where("id = ?", id).
		Updates(changes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDeleteMachine stamps deleted_at on the machine. Existing revisions
// referencing the machine are untouched; only future fan-outs skip it.
func SoftDeleteMachine(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Machine{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
