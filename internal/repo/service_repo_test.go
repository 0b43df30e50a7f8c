package repo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpalhares/go-maintenance-backend/internal/domain"
)

func newServiceRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("service_repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// seedServiceGraph inserts a client, a department, and a user the service
// tests can hang rows off.
func seedServiceGraph(t *testing.T, db *gorm.DB) (dept *domain.Department, user *domain.User) {
	t.Helper()
	ctx := context.Background()

	client, err := CreateClient(ctx, db, "Client Espinho")
	if err != nil {
		t.Fatalf("seed client: %v", err)
	}
	dept, err = CreateDepartment(ctx, db, "Sala Estoril", client.ID)
	if err != nil {
		t.Fatalf("seed department: %v", err)
	}
	user, err = CreateUser(ctx, db, "jsilva", "João Carlos Silva")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return dept, user
}

func TestCreateService_StampsActorAndTimestamps(t *testing.T) {
	db := newServiceRepoDB(t)
	dept, user := seedServiceGraph(t, db)
	ctx := context.Background()

	start := time.Now().UTC().Add(-time.Minute)
	svc, err := CreateService(ctx, db, dept.ID, user.ID)
	if err != nil {
		t.Fatalf("CreateService: %v", err)
	}
	if svc.ID == "" || svc.DepartmentID != dept.ID {
		t.Fatalf("unexpected service: %+v", svc)
	}
	if svc.CreatedBy != user.ID || svc.UpdatedBy != user.ID {
		t.Fatalf("creator stamps not set: %+v", svc)
	}
	if svc.ClosedAt != nil || svc.ClosedBy != nil || svc.DeletedBy != nil {
		t.Fatalf("new service must be open: %+v", svc)
	}
	if svc.CreatedAt.Before(start) || !svc.CreatedAt.Equal(svc.UpdatedAt) {
		t.Fatalf("unexpected timestamps: created=%v updated=%v", svc.CreatedAt, svc.UpdatedAt)
	}
}

func TestGetService_PreloadsViewAssociations(t *testing.T) {
	db := newServiceRepoDB(t)
	dept, user := seedServiceGraph(t, db)
	ctx := context.Background()

	svc, err := CreateService(ctx, db, dept.ID, user.ID)
	if err != nil {
		t.Fatalf("CreateService: %v", err)
	}

	got, err := GetService(ctx, db, svc.ID)
	if err != nil {
		t.Fatalf("GetService: %v", err)
	}
	if got.Department.Name != "Sala Estoril" || got.Department.Client.Name != "Client Espinho" {
		t.Fatalf("department/client not preloaded: %+v", got.Department)
	}
	if got.Creator.Username != "jsilva" || got.Updater.Username != "jsilva" {
		t.Fatalf("user stamps not preloaded: creator=%+v updater=%+v", got.Creator, got.Updater)
	}
	if got.Closer != nil && got.Closer.ID != "" {
		t.Fatalf("unexpected closer on open service: %+v", got.Closer)
	}
}

func TestGetService_HiddenWhenDepartmentDeleted(t *testing.T) {
	db := newServiceRepoDB(t)
	dept, user := seedServiceGraph(t, db)
	ctx := context.Background()

	svc, err := CreateService(ctx, db, dept.ID, user.ID)
	if err != nil {
		t.Fatalf("CreateService: %v", err)
	}
	if err := SoftDeleteDepartment(ctx, db, dept.ID); err != nil {
		t.Fatalf("SoftDeleteDepartment: %v", err)
	}
	if _, err := GetService(ctx, db, svc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected service of deleted department to be invisible, got %v", err)
	}
}

func TestListServices_FiltersAndOrder(t *testing.T) {
	db := newServiceRepoDB(t)
	dept, user := seedServiceGraph(t, db)
	ctx := context.Background()

	other, err := CreateUser(ctx, db, "mreis", "Maria Reis")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	dept2, err := CreateDepartment(ctx, db, "Sala Porto", dept.ClientID)
	if err != nil {
		t.Fatalf("seed dept2: %v", err)
	}

	s1, err := CreateService(ctx, db, dept.ID, user.ID)
	if err != nil {
		t.Fatalf("seed s1: %v", err)
	}
	s2, err := CreateService(ctx, db, dept2.ID, other.ID)
	if err != nil {
		t.Fatalf("seed s2: %v", err)
	}
	if err := CloseService(ctx, db, s2.ID, other.ID); err != nil {
		t.Fatalf("close s2: %v", err)
	}

	// created_by filter.
	list, err := ListServices(ctx, db, ServiceFilter{CreatedBy: user.ID})
	if err != nil {
		t.Fatalf("ListServices by creator: %v", err)
	}
	if len(list) != 1 || list[0].ID != s1.ID {
		t.Fatalf("unexpected creator filter result: %#v", list)
	}

	// closed_by filter.
	list, err = ListServices(ctx, db, ServiceFilter{ClosedBy: other.ID})
	if err != nil {
		t.Fatalf("ListServices by closer: %v", err)
	}
	if len(list) != 1 || list[0].ID != s2.ID {
		t.Fatalf("unexpected closer filter result: %#v", list)
	}

	// department filter.
	list, err = ListServices(ctx, db, ServiceFilter{DepartmentID: dept2.ID})
	if err != nil {
		t.Fatalf("ListServices by department: %v", err)
	}
	if len(list) != 1 || list[0].ID != s2.ID {
		t.Fatalf("unexpected department filter result: %#v", list)
	}

	// created_at desc puts the newer service first.
	if err := db.Model(&domain.Service{}).Where("id = ?", s2.ID).
		Update("created_at", s1.CreatedAt.Add(time.Hour)).Error; err != nil {
		t.Fatalf("bump created_at: %v", err)
	}
	list, err = ListServices(ctx, db, ServiceFilter{Order: "desc"})
	if err != nil {
		t.Fatalf("ListServices desc: %v", err)
	}
	if len(list) != 2 || list[0].ID != s2.ID || list[1].ID != s1.ID {
		t.Fatalf("unexpected desc order: %#v", list)
	}
}

func TestListServices_ShowDeletedLiftsBothExclusions(t *testing.T) {
	db := newServiceRepoDB(t)
	dept, user := seedServiceGraph(t, db)
	ctx := context.Background()

	alive, err := CreateService(ctx, db, dept.ID, user.ID)
	if err != nil {
		t.Fatalf("seed alive: %v", err)
	}
	deleted, err := CreateService(ctx, db, dept.ID, user.ID)
	if err != nil {
		t.Fatalf("seed deleted: %v", err)
	}
	if err := SoftDeleteService(ctx, db, deleted.ID, user.ID); err != nil {
		t.Fatalf("SoftDeleteService: %v", err)
	}

	// Service of a soft-deleted department.
	dept2, err := CreateDepartment(ctx, db, "Sala Fantasma", dept.ClientID)
	if err != nil {
		t.Fatalf("seed dept2: %v", err)
	}
	orphan, err := CreateService(ctx, db, dept2.ID, user.ID)
	if err != nil {
		t.Fatalf("seed orphan: %v", err)
	}
	if err := SoftDeleteDepartment(ctx, db, dept2.ID); err != nil {
		t.Fatalf("SoftDeleteDepartment: %v", err)
	}

	list, err := ListServices(ctx, db, ServiceFilter{})
	if err != nil {
		t.Fatalf("ListServices default: %v", err)
	}
	if len(list) != 1 || list[0].ID != alive.ID {
		t.Fatalf("default listing must hide deleted + orphaned: %#v", list)
	}

	list, err = ListServices(ctx, db, ServiceFilter{ShowDeleted: true})
	if err != nil {
		t.Fatalf("ListServices show_deleted: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("show_deleted must return all 3 services, got %d", len(list))
	}
	seen := map[string]bool{}
	for _, s := range list {
		seen[s.ID] = true
	}
	if !seen[alive.ID] || !seen[deleted.ID] || !seen[orphan.ID] {
		t.Fatalf("show_deleted listing incomplete: %v", seen)
	}
}

func TestTouchService_RefreshesStampsOnly(t *testing.T) {
	db := newServiceRepoDB(t)
	dept, user := seedServiceGraph(t, db)
	ctx := context.Background()

	other, err := CreateUser(ctx, db, "mreis", "Maria Reis")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	svc, err := CreateService(ctx, db, dept.ID, user.ID)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := TouchService(ctx, db, svc.ID, other.ID); err != nil {
		t.Fatalf("TouchService: %v", err)
	}
	got, err := GetService(ctx, db, svc.ID)
	if err != nil {
		t.Fatalf("GetService: %v", err)
	}
	if got.UpdatedBy != other.ID || got.CreatedBy != user.ID {
		t.Fatalf("touch must change updated_by only: %+v", got)
	}
	if got.ClosedAt != nil {
		t.Fatalf("touch must not close: %+v", got)
	}

	if err := TouchService(ctx, db, "missing", other.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCloseService_StampsAndRecloseAllowed(t *testing.T) {
	db := newServiceRepoDB(t)
	dept, user := seedServiceGraph(t, db)
	ctx := context.Background()

	svc, err := CreateService(ctx, db, dept.ID, user.ID)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := CloseService(ctx, db, svc.ID, user.ID); err != nil {
		t.Fatalf("CloseService: %v", err)
	}
	got, err := GetService(ctx, db, svc.ID)
	if err != nil {
		t.Fatalf("GetService: %v", err)
	}
	if got.ClosedAt == nil || got.ClosedBy == nil || *got.ClosedBy != user.ID {
		t.Fatalf("close stamps missing: %+v", got)
	}

	// Re-closing is accepted and re-stamps.
	other, err := CreateUser(ctx, db, "mreis", "Maria Reis")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if err := CloseService(ctx, db, svc.ID, other.ID); err != nil {
		t.Fatalf("re-close: %v", err)
	}
	got, err = GetService(ctx, db, svc.ID)
	if err != nil {
		t.Fatalf("GetService: %v", err)
	}
	if got.ClosedBy == nil || *got.ClosedBy != other.ID {
		t.Fatalf("re-close must re-stamp closed_by: %+v", got)
	}
}

func TestSoftDeleteService_TerminalAndNotIdempotent(t *testing.T) {
	db := newServiceRepoDB(t)
	dept, user := seedServiceGraph(t, db)
	ctx := context.Background()

	svc, err := CreateService(ctx, db, dept.ID, user.ID)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := SoftDeleteService(ctx, db, svc.ID, user.ID); err != nil {
		t.Fatalf("SoftDeleteService: %v", err)
	}
	if _, err := GetService(ctx, db, svc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted service must be invisible, got %v", err)
	}

	// Row survives with both delete stamps.
	var raw domain.Service
	if err := db.Unscoped().First(&raw, "id = ?", svc.ID).Error; err != nil {
		t.Fatalf("unscoped load: %v", err)
	}
	if !raw.DeletedAt.Valid || raw.DeletedBy == nil || *raw.DeletedBy != user.ID {
		t.Fatalf("delete stamps incomplete: %+v", raw)
	}

	// Second delete hits no live row.
	if err := SoftDeleteService(ctx, db, svc.ID, user.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeat delete, got %v", err)
	}
}

func TestServicesStats_CountAndMaxUpdatedAt(t *testing.T) {
	db := newServiceRepoDB(t)
	dept, user := seedServiceGraph(t, db)
	ctx := context.Background()

	count, maxTS, err := ServicesStats(ctx, db)
	if err != nil {
		t.Fatalf("ServicesStats empty: %v", err)
	}
	if count != 0 || maxTS != nil {
		t.Fatalf("expected zero stats, got count=%d max=%v", count, maxTS)
	}

	s1, err := CreateService(ctx, db, dept.ID, user.ID)
	if err != nil {
		t.Fatalf("seed s1: %v", err)
	}
	s2, err := CreateService(ctx, db, dept.ID, user.ID)
	if err != nil {
		t.Fatalf("seed s2: %v", err)
	}
	later := s1.UpdatedAt.Add(2 * time.Hour)
	if err := db.Model(&domain.Service{}).Where("id = ?", s2.ID).
		Update("updated_at", later).Error; err != nil {
		t.Fatalf("bump updated_at: %v", err)
	}

	count, maxTS, err = ServicesStats(ctx, db)
	if err != nil {
		t.Fatalf("ServicesStats: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2, got %d", count)
	}
	if maxTS == nil || maxTS.Unix() != later.Unix() {
		t.Fatalf("expected max updated_at %v, got %v", later, maxTS)
	}
}
