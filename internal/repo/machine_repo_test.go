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

func newMachineRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("machine_repo_test_%d.db", time.Now().UnixNano()))
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
	if err := db.AutoMigrate(&domain.Client{}, &domain.Department{}, &domain.Machine{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestCreateMachine_UniqueModelSerial(t *testing.T) {
	db := newMachineRepoDB(t)
	ctx := context.Background()

	m, err := CreateMachine(ctx, db, "d1", "Novomatic", "FV880", "SN-1")
	if err != nil {
		t.Fatalf("CreateMachine: %v", err)
	}
	if m.ID == "" || m.Model != "FV880" || m.DepartmentID != "d1" {
		t.Fatalf("unexpected machine: %+v", m)
	}

	// Same model + serial is rejected; same model with another serial is fine.
	if _, err := CreateMachine(ctx, db, "d2", "Novomatic", "FV880", "SN-1"); err == nil {
		t.Fatalf("expected unique index violation for duplicate (model, serial)")
	}
	if _, err := CreateMachine(ctx, db, "d2", "Novomatic", "FV880", "SN-2"); err != nil {
		t.Fatalf("distinct serial should insert: %v", err)
	}
}

func TestListMachines_FilterByDepartment(t *testing.T) {
	db := newMachineRepoDB(t)
	ctx := context.Background()

	for i, dep := range []string{"d1", "d1", "d2"} {
		if _, err := CreateMachine(ctx, db, dep, "EGT", "P-27", fmt.Sprintf("SN-%d", i)); err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
	}

	list, err := ListMachines(ctx, db, MachineFilter{DepartmentID: "d1"})
	if err != nil {
		t.Fatalf("ListMachines: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 machines in d1, got %d", len(list))
	}
	for _, m := range list {
		if m.DepartmentID != "d1" {
			t.Fatalf("leaked machine from other department: %+v", m)
		}
	}
}

func TestListMachines_SortByManufacturer(t *testing.T) {
	db := newMachineRepoDB(t)
	ctx := context.Background()

	seed := []struct{ man, serial string }{
		{"Zitro", "SN-a"},
		{"Aristocrat", "SN-b"},
		{"Novomatic", "SN-c"},
	}
	for _, s := range seed {
		if _, err := CreateMachine(ctx, db, "d1", s.man, "M", s.serial); err != nil {
			t.Fatalf("seed %s: %v", s.man, err)
		}
	}

	list, err := ListMachines(ctx, db, MachineFilter{SortBy: "manufacturer", Order: "asc"})
	if err != nil {
		t.Fatalf("ListMachines: %v", err)
	}
	if list[0].Manufacturer != "Aristocrat" || list[2].Manufacturer != "Zitro" {
		t.Fatalf("unexpected order: %#v", list)
	}
}

func TestCountDepartmentMachines_ExcludesDeleted(t *testing.T) {
	db := newMachineRepoDB(t)
	ctx := context.Background()

	m1, err := CreateMachine(ctx, db, "d1", "EGT", "P-27", "SN-1")
	if err != nil {
		t.Fatalf("seed m1: %v", err)
	}
	if _, err := CreateMachine(ctx, db, "d1", "EGT", "P-27", "SN-2"); err != nil {
		t.Fatalf("seed m2: %v", err)
	}

	n, err := CountDepartmentMachines(ctx, db, "d1")
	if err != nil {
		t.Fatalf("CountDepartmentMachines: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2, got %d", n)
	}

	if err := SoftDeleteMachine(ctx, db, m1.ID); err != nil {
		t.Fatalf("SoftDeleteMachine: %v", err)
	}
	n, err = CountDepartmentMachines(ctx, db, "d1")
	if err != nil {
		t.Fatalf("CountDepartmentMachines after delete: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected deleted machine excluded, got %d", n)
	}
}

func TestUpdateMachine_PartialAndNotFound(t *testing.T) {
	db := newMachineRepoDB(t)
	ctx := context.Background()

	m, err := CreateMachine(ctx, db, "d1", "EGT", "P-27", "SN-1")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	if err := UpdateMachine(ctx, db, m.ID, map[string]any{"manufacturer": "Amatic"}); err != nil {
		t.Fatalf("UpdateMachine: %v", err)
	}
	got, err := GetMachine(ctx, db, m.ID)
	if err != nil {
		t.Fatalf("GetMachine: %v", err)
	}
	if got.Manufacturer != "Amatic" || got.Model != "P-27" {
		t.Fatalf("partial update touched wrong columns: %+v", got)
	}

	// Empty change set is a no-op.
	if err := UpdateMachine(ctx, db, "missing", map[string]any{}); err != nil {
		t.Fatalf("empty changes should be a no-op, got %v", err)
	}
	if err := UpdateMachine(ctx, db, "missing", map[string]any{"model": "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
