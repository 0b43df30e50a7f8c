// Package services – validation gate
//
// The gate front-runs every workflow mutation with existence and
// business-rule checks so that no partial state is ever written for a
// request that was doomed from the start. Each predicate resolves to nil or
// to one of the service-level sentinel errors; a batch of predicates for
// one request is evaluated concurrently and the first failure aborts the
// operation before any mutation occurs.
package services

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/rpalhares/go-maintenance-backend/internal/domain"
	"github.com/rpalhares/go-maintenance-backend/internal/repo"
)

// Predicate is a deferred precondition check bound to request parameters.
type Predicate func(ctx context.Context) error

// Gate evaluates workflow preconditions against the store. All predicates
// look through the default GORM scope, so soft-deleted rows count as
// missing.
type Gate struct {
	// DB is the database handle used for all predicate queries.
	DB *gorm.DB
}

// Check runs the given predicates concurrently and returns the first
// failure, if any. No ordering between predicates is guaranteed; callers
// must not rely on which of several violated preconditions is reported.
func (g *Gate) Check(ctx context.Context, preds ...Predicate) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, p := range preds {
		eg.Go(func() error { return p(ctx) })
	}
	return eg.Wait()
}

// exists reports whether a live row of model matches the query.
func (g *Gate) exists(ctx context.Context, model any, query string, args ...any) (bool, error) {
	var n int64
	err := g.DB.WithContext(ctx).Model(model).Where(query, args...).Count(&n).Error
	return n > 0, err
}

// ServiceExists checks that a live service row exists for id.
func (g *Gate) ServiceExists(id string) Predicate {
	return func(ctx context.Context) error {
		ok, err := g.exists(ctx, &domain.Service{}, "id = ?", id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrServiceNotFound
		}
		return nil
	}
}

// UserExists checks that a live user row exists for id.
func (g *Gate) UserExists(id string) Predicate {
	return func(ctx context.Context) error {
		ok, err := g.exists(ctx, &domain.User{}, "id = ?", id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrUserNotFound
		}
		return nil
	}
}

// DepartmentExists checks that a live department row exists for id.
func (g *Gate) DepartmentExists(id string) Predicate {
	return func(ctx context.Context) error {
		ok, err := g.exists(ctx, &domain.Department{}, "id = ?", id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrDepartmentNotFound
		}
		return nil
	}
}

// MachineExists checks that a live machine row exists for id.
func (g *Gate) MachineExists(id string) Predicate {
	return func(ctx context.Context) error {
		ok, err := g.exists(ctx, &domain.Machine{}, "id = ?", id)
		if err != nil {
			return err
		}
		if !ok {
			return ErrMachineNotFound
		}
		return nil
	}
}

// DepartmentHasMachines checks that the department currently holds at least
// one live machine, the precondition for the revision fan-out.
func (g *Gate) DepartmentHasMachines(id string) Predicate {
	return func(ctx context.Context) error {
		n, err := repo.CountDepartmentMachines(ctx, g.DB, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNoMachines
		}
		return nil
	}
}

// MachineHasRevision checks that the (service, machine) pair got a revision
// at fan-out time. Machines that joined the department later fail here with
// a business-rule error, not a missing-entity one.
func (g *Gate) MachineHasRevision(serviceID, machineID string) Predicate {
	return func(ctx context.Context) error {
		ok, err := repo.HasRevision(ctx, g.DB, serviceID, machineID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoRevisions
			}
			return err
		}
		if !ok {
			return ErrNoRevisions
		}
		return nil
	}
}
