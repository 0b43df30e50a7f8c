// API view shapes assembled by the service layer.
//
// The persistence models keep raw foreign keys; the HTTP surface renders
// them as nested objects (department with client name, user stamps). These
// view types are the contract between the workflow engine and the handlers
// and are what the Swagger documentation describes.
package domain

import "time"

// UserRef is the compact user stamp rendered on service views. A nil
// *UserRef marshals as JSON null, which is how unset closed_by/deleted_by
// stamps appear on the wire.
type UserRef struct {
	ID       string `json:"id"       example:"9a5c5991-a14d-4d85-b75f-d75081500c8d"`
	Username string `json:"username" example:"jsilva"`
	Name     string `json:"name"     example:"João Carlos Silva"`
}

// DepartmentRef is the nested department rendered on service views. Client
// is the owning client's display name, not its id.
type DepartmentRef struct {
	ID     string `json:"id"     example:"1ed90dca-dd68-476a-bd48-63b2a5d66c2f"`
	Name   string `json:"name"   example:"Sala de Máquinas Estoril"`
	Client string `json:"client" example:"Client Espinho"`
}

// ServiceView is the listing shape of a service: stamps and the department,
// without the machines/revisions expansion. Single-service fetches use
// ServiceDetail instead.
type ServiceView struct {
	ID         string        `json:"id" example:"435fc172-dff3-4294-ab7b-7e929d00aa44"`
	Department DepartmentRef `json:"department"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
	ClosedAt   *time.Time    `json:"closed_at"`
	DeletedAt  *time.Time    `json:"deleted_at"`
	CreatedBy  *UserRef      `json:"created_by"`
	UpdatedBy  *UserRef      `json:"updated_by"`
	ClosedBy   *UserRef      `json:"closed_by"`
	DeletedBy  *UserRef      `json:"deleted_by"`
}

// MachineRevisions is a department machine enriched with the revisions it
// has under one specific service. Machines that joined the department after
// the service was created carry an empty revisions list.
type MachineRevisions struct {
	ID           string     `json:"id" example:"f8cae396-5376-47ae-8dfc-690572e76a09"`
	Manufacturer string     `json:"manufacturer" example:"Novomatic"`
	Model        string     `json:"model" example:"FV880"`
	SerialNumber string     `json:"serial_number" example:"SN-10442"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at"`
	Revisions    []Revision `json:"revisions"`
}

// ServiceDetail is the expanded single-service shape: the listing view plus
// every machine currently in the department with its revisions for this
// service.
type ServiceDetail struct {
	ServiceView
	Machines []MachineRevisions `json:"machines"`
}
