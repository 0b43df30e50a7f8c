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

func newUserRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("user_repo_test_%d.db", time.Now().UnixNano()))
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
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestCreateUser_UniqueUsername(t *testing.T) {
	db := newUserRepoDB(t)
	ctx := context.Background()

	u, err := CreateUser(ctx, db, "jsilva", "João Carlos Silva")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == "" || u.Username != "jsilva" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if _, err := CreateUser(ctx, db, "jsilva", "Someone Else"); err == nil {
		t.Fatalf("expected unique index violation for duplicate username")
	}
}

func TestListUsers_FilterByUsername(t *testing.T) {
	db := newUserRepoDB(t)
	ctx := context.Background()

	for _, u := range []struct{ username, name string }{
		{"jsilva", "João"},
		{"mreis", "Maria"},
	} {
		if _, err := CreateUser(ctx, db, u.username, u.name); err != nil {
			t.Fatalf("seed %s: %v", u.username, err)
		}
	}

	list, err := ListUsers(ctx, db, UserFilter{Username: "mreis"})
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Maria" {
		t.Fatalf("unexpected filtered result: %#v", list)
	}
}

func TestUpdateUserName_AndSoftDelete(t *testing.T) {
	db := newUserRepoDB(t)
	ctx := context.Background()

	u, err := CreateUser(ctx, db, "jsilva", "old")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := UpdateUserName(ctx, db, u.ID, "new"); err != nil {
		t.Fatalf("UpdateUserName: %v", err)
	}
	got, err := GetUser(ctx, db, u.ID)
	if err != nil || got.Name != "new" {
		t.Fatalf("rename not applied: got=%+v err=%v", got, err)
	}

	if err := SoftDeleteUser(ctx, db, u.ID); err != nil {
		t.Fatalf("SoftDeleteUser: %v", err)
	}
	if _, err := GetUser(ctx, db, u.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted user must be invisible, got %v", err)
	}
	if err := UpdateUserName(ctx, db, u.ID, "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update of deleted user must miss, got %v", err)
	}
}
