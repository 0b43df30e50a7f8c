// Package services – ServiceService
//
// This file implements the service workflow engine: opening a service for a
// department (which fans one revision out per machine), assembling the
// expanded service view, closing a service (cascading to its revisions),
// patching a single machine revision, soft-deleting a service (cascading to
// its revisions), and listing services.
//
// Every mutating operation is gated by the validation predicates first and
// then runs inside one GORM transaction, so callers never observe partial
// state: a service without its revisions, a closed service with open
// revisions, or a deleted service with live revisions cannot be committed.
package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/rpalhares/go-maintenance-backend/internal/domain"
	"github.com/rpalhares/go-maintenance-backend/internal/repo"
)

// RevisionPatch carries the optional field changes of a machine-revision
// patch. Nil fields are left untouched on the row (partial update).
type RevisionPatch struct {
	Maintained  *bool
	Repaired    *bool
	Operational *bool
	Comments    *string
}

// changes translates the patch into a column map for the repository.
func (p RevisionPatch) changes() map[string]any {
	m := map[string]any{}
	if p.Maintained != nil {
		m["maintained"] = *p.Maintained
	}
	if p.Repaired != nil {
		m["repaired"] = *p.Repaired
	}
	if p.Operational != nil {
		m["operational"] = *p.Operational
	}
	if p.Comments != nil {
		m["comments"] = *p.Comments
	}
	return m
}

// ServiceService orchestrates the service/revision workflow on top of the
// repository layer. The acting user id is an explicit parameter on every
// mutation; there is no ambient identity.
type ServiceService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Gate evaluates preconditions before any mutation.
	Gate *Gate
}

// NewServiceService constructs a ServiceService with its validation gate
// bound to the same database handle.
func NewServiceService(db *gorm.DB) *ServiceService {
	return &ServiceService{DB: db, Gate: &Gate{DB: db}}
}

// Create opens a new service for departmentID on behalf of actorID.
//
// Preconditions: the department and the actor exist, and the department
// holds at least one live machine (ErrNoMachines otherwise).
//
// The service insert and the revision fan-out run in one transaction. The
// fan-out snapshots the machines present right now; machines added to the
// department later never get revisions for this service.
func (s *ServiceService) Create(ctx context.Context, departmentID, actorID string) (*domain.ServiceDetail, error) {
	if err := s.Gate.Check(ctx,
		s.Gate.DepartmentExists(departmentID),
		s.Gate.UserExists(actorID),
		s.Gate.DepartmentHasMachines(departmentID),
	); err != nil {
		return nil, err
	}

	var serviceID string
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		svc, err := repo.CreateService(ctx, tx, departmentID, actorID)
		if err != nil {
			return err
		}
		machines, err := repo.ListMachines(ctx, tx, repo.MachineFilter{DepartmentID: departmentID})
		if err != nil {
			return err
		}
		ids := make([]string, 0, len(machines))
		for _, m := range machines {
			ids = append(ids, m.ID)
		}
		if _, err := repo.InsertRevisions(ctx, tx, svc.ID, ids); err != nil {
			return err
		}
		serviceID = svc.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, serviceID)
}

// Get returns the expanded view of a live service: stamps, department with
// client, and every machine currently in the department carrying the
// revisions it has under this service. Machines without a matching revision
// carry an empty list. Returns ErrServiceNotFound when the id does not
// resolve to a live service of a live department.
func (s *ServiceService) Get(ctx context.Context, serviceID string) (*domain.ServiceDetail, error) {
	svc, err := repo.GetService(ctx, s.DB, serviceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	machines, err := repo.ListMachines(ctx, s.DB, repo.MachineFilter{DepartmentID: svc.DepartmentID})
	if err != nil {
		return nil, err
	}
	revisions, err := repo.ListRevisions(ctx, s.DB, serviceID)
	if err != nil {
		return nil, err
	}

	byMachine := make(map[string][]domain.Revision, len(machines))
	for _, r := range revisions {
		byMachine[r.MachineID] = append(byMachine[r.MachineID], r)
	}

	detail := &domain.ServiceDetail{
		ServiceView: serviceView(svc),
		Machines:    make([]domain.MachineRevisions, 0, len(machines)),
	}
	for _, m := range machines {
		revs := byMachine[m.ID]
		if revs == nil {
			revs = []domain.Revision{}
		}
		detail.Machines = append(detail.Machines, domain.MachineRevisions{
			ID:           m.ID,
			Manufacturer: m.Manufacturer,
			Model:        m.Model,
			SerialNumber: m.SerialNumber,
			CreatedAt:    m.CreatedAt,
			UpdatedAt:    m.UpdatedAt,
			DeletedAt:    deletedAt(m.DeletedAt),
			Revisions:    revs,
		})
	}
	return detail, nil
}

// Patch applies the service-level patch. With closed=true it stamps
// closed_at/closed_by and marks every revision of the service closed, all
// in one transaction; re-closing an already closed service is accepted and
// re-stamps the same cascade state. With closed=false only the updated
// stamps are refreshed; a closed service is never reopened.
func (s *ServiceService) Patch(ctx context.Context, serviceID, actorID string, closed bool) (*domain.ServiceDetail, error) {
	if err := s.Gate.Check(ctx,
		s.Gate.ServiceExists(serviceID),
		s.Gate.UserExists(actorID),
	); err != nil {
		return nil, err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if !closed {
			return repo.TouchService(ctx, tx, serviceID, actorID)
		}
		if err := repo.CloseService(ctx, tx, serviceID, actorID); err != nil {
			return err
		}
		return repo.CloseRevisions(ctx, tx, serviceID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return s.Get(ctx, serviceID)
}

// PatchMachineRevision applies a partial update to the revision of
// (serviceID, machineID) and refreshes the parent service's updated stamps
// in the same transaction; revision activity counts as service activity.
//
// A machine without a revision under this service is rejected with
// ErrNoRevisions: it was not part of the department when the service was
// created and cannot be patched into it retroactively.
func (s *ServiceService) PatchMachineRevision(ctx context.Context, serviceID, machineID, actorID string, patch RevisionPatch) (*domain.Revision, error) {
	if err := s.Gate.Check(ctx,
		s.Gate.ServiceExists(serviceID),
		s.Gate.MachineExists(machineID),
		s.Gate.UserExists(actorID),
		s.Gate.MachineHasRevision(serviceID, machineID),
	); err != nil {
		return nil, err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.UpdateRevision(ctx, tx, serviceID, machineID, patch.changes()); err != nil {
			return err
		}
		return repo.TouchService(ctx, tx, serviceID, actorID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoRevisions
		}
		return nil, err
	}
	return repo.GetRevision(ctx, s.DB, serviceID, machineID)
}

// Remove soft-deletes the service and all of its revisions in one
// transaction. Deletion is terminal: the service disappears from every
// lookup, and a second Remove reports ErrServiceNotFound exactly like a
// service that never existed.
func (s *ServiceService) Remove(ctx context.Context, serviceID, actorID string) error {
	if err := s.Gate.Check(ctx,
		s.Gate.ServiceExists(serviceID),
		s.Gate.UserExists(actorID),
	); err != nil {
		return err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.SoftDeleteService(ctx, tx, serviceID, actorID); err != nil {
			return err
		}
		return repo.SoftDeleteRevisions(ctx, tx, serviceID)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrServiceNotFound
	}
	return err
}

// List returns the light service views matching the filter (no machine
// expansion; only single-service fetches pay for that).
func (s *ServiceService) List(ctx context.Context, f repo.ServiceFilter) ([]domain.ServiceView, error) {
	rows, err := repo.ListServices(ctx, s.DB, f)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ServiceView, 0, len(rows))
	for i := range rows {
		out = append(out, serviceView(&rows[i]))
	}
	return out, nil
}

// serviceView maps a preloaded service row to its API view.
func serviceView(svc *domain.Service) domain.ServiceView {
	return domain.ServiceView{
		ID: svc.ID,
		Department: domain.DepartmentRef{
			ID:     svc.Department.ID,
			Name:   svc.Department.Name,
			Client: svc.Department.Client.Name,
		},
		CreatedAt: svc.CreatedAt,
		UpdatedAt: svc.UpdatedAt,
		ClosedAt:  svc.ClosedAt,
		DeletedAt: deletedAt(svc.DeletedAt),
		CreatedBy: userRef(&svc.Creator),
		UpdatedBy: userRef(&svc.Updater),
		ClosedBy:  userRef(svc.Closer),
		DeletedBy: userRef(svc.Deleter),
	}
}

// userRef maps a preloaded user association to a stamp, or nil when the
// stamp is unset.
func userRef(u *domain.User) *domain.UserRef {
	if u == nil || u.ID == "" {
		return nil
	}
	return &domain.UserRef{ID: u.ID, Username: u.Username, Name: u.Name}
}

// deletedAt converts the GORM soft-delete marker to a plain nullable time.
func deletedAt(d gorm.DeletedAt) *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}
