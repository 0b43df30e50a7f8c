// Package domain defines the persistence models for clients, users,
// departments, machines, services, and revisions. These types are mapped
// with GORM and form the core data layer of the maintenance tracking
// application.
//
// Hierarchy: a Client owns Departments, a Department hosts Machines, and a
// Service records a maintenance visit to a Department. Creating a Service
// fans out one Revision per machine present in the department at that
// moment; each Revision captures the per-machine outcome of the visit.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Client represents a customer company. Client names are unique.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Name: unique human-readable client name.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - DeletedAt: soft deletion marker (retains row for audit/history).
type Client struct {
	ID        string         `json:"id"         gorm:"type:char(36);primaryKey"`
	Name      string         `json:"name"       gorm:"type:varchar(255);not null;uniqueIndex:ux_clients_name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// TableName returns the database table name for Client.
func (Client) TableName() string { return "clients" }

// User represents a technician or back-office operator. Users are only
// referenced as actors (created_by/updated_by/closed_by/deleted_by stamps);
// no credentials are stored here.
type User struct {
	ID        string         `json:"id"         gorm:"type:char(36);primaryKey"`
	Username  string         `json:"username"   gorm:"type:varchar(64);not null;uniqueIndex:ux_users_username"`
	Name      string         `json:"name"       gorm:"type:varchar(255);not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Department is a machine room belonging to a client.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - Name: department name (e.g. "Sala de Máquinas Estoril").
//   - ClientID: foreign key to the owning client (indexed).
//   - Client: FK association used to render the nested client name.
type Department struct {
	ID        string         `json:"id"         gorm:"type:char(36);primaryKey"`
	Name      string         `json:"name"       gorm:"type:varchar(255);not null"`
	ClientID  string         `json:"client_id"  gorm:"type:char(36);not null;index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`

	Client Client `json:"-" gorm:"foreignKey:ClientID;references:ID;constraint:OnUpdate:CASCADE"`
}

// TableName returns the database table name for Department.
func (Department) TableName() string { return "departments" }

// Machine is a physical unit installed in a department. The
// (model, serial_number) combination is unique across the fleet.
type Machine struct {
	ID           string         `json:"id"            gorm:"type:char(36);primaryKey"`
	Manufacturer string         `json:"manufacturer"  gorm:"type:varchar(255);not null"`
	Model        string         `json:"model"         gorm:"type:varchar(255);not null;uniqueIndex:ux_machines_model_serial,priority:1"`
	SerialNumber string         `json:"serial_number" gorm:"type:varchar(255);not null;uniqueIndex:ux_machines_model_serial,priority:2"`
	DepartmentID string         `json:"department_id" gorm:"type:char(36);not null;index"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at"    gorm:"index"`

	Department Department `json:"-" gorm:"foreignKey:DepartmentID;references:ID;constraint:OnUpdate:CASCADE"`
}

// TableName returns the database table name for Machine.
func (Machine) TableName() string { return "machines" }

// Service records a maintenance visit to a department. Its lifecycle is
// OPEN → CLOSED (close stamp, cascades to revisions) and OPEN|CLOSED →
// soft-deleted (terminal, invisible to reads). ClosedAt/ClosedBy are both
// null or both set; the same holds for DeletedAt/DeletedBy.
//
// Fields:
//   - CreatedBy / UpdatedBy: actor stamps, always present.
//   - ClosedBy / DeletedBy: actor stamps, set by the close/delete workflows.
//   - Creator / Updater / Closer / Deleter: FK associations used to render
//     the user stamps in API views.
type Service struct {
	ID           string         `json:"id"            gorm:"type:char(36);primaryKey"`
	DepartmentID string         `json:"department_id" gorm:"type:char(36);not null;index"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	ClosedAt     *time.Time     `json:"closed_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at"    gorm:"index"`
	CreatedBy    string         `json:"created_by"    gorm:"type:char(36);not null;index"`
	UpdatedBy    string         `json:"updated_by"    gorm:"type:char(36);not null"`
	ClosedBy     *string        `json:"closed_by"     gorm:"type:char(36);index"`
	DeletedBy    *string        `json:"deleted_by"    gorm:"type:char(36)"`

	Department Department `json:"-" gorm:"foreignKey:DepartmentID;references:ID;constraint:OnUpdate:CASCADE"`
	Creator    User       `json:"-" gorm:"foreignKey:CreatedBy;references:ID"`
	Updater    User       `json:"-" gorm:"foreignKey:UpdatedBy;references:ID"`
	Closer     *User      `json:"-" gorm:"foreignKey:ClosedBy;references:ID"`
	Deleter    *User      `json:"-" gorm:"foreignKey:DeletedBy;references:ID"`
}

// TableName returns the database table name for Service.
func (Service) TableName() string { return "services" }

// Revision is the per-machine outcome of a service visit. Exactly one row
// exists per (service_id, machine_id) pair, created in bulk when the owning
// service is created. Machines added to the department afterwards do not get
// revisions for pre-existing services.
type Revision struct {
	ID          string         `json:"id"          gorm:"type:char(36);primaryKey"`
	ServiceID   string         `json:"service_id"  gorm:"type:char(36);not null;uniqueIndex:ux_revisions_service_machine,priority:1"`
	MachineID   string         `json:"machine_id"  gorm:"type:char(36);not null;uniqueIndex:ux_revisions_service_machine,priority:2"`
	Maintained  bool           `json:"maintained"  gorm:"not null;default:false"`
	Repaired    bool           `json:"repaired"    gorm:"not null;default:false"`
	Operational bool           `json:"operational" gorm:"not null;default:false"`
	Comments    *string        `json:"comments"    gorm:"type:varchar(255)"`
	Closed      bool           `json:"closed"      gorm:"not null;default:false"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at"  gorm:"index"`

	// Service is the owning visit. Revisions are cascade-deleted if their
	// service row is ever hard-removed.
	Service Service `json:"-" gorm:"foreignKey:ServiceID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Machine Machine `json:"-" gorm:"foreignKey:MachineID;references:ID;constraint:OnUpdate:CASCADE"`
}

// TableName returns the database table name for Revision.
func (Revision) TableName() string { return "revisions" }
