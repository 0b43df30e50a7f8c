// Service HTTP handlers.
//
// This file exposes REST endpoints for the service/revision workflow:
//   - GET    /services                                  (list, filterable, ETag support)
//   - POST   /services                                  (create + revision fan-out)
//   - GET    /services/{service_id}                     (expanded view)
//   - PATCH  /services/{service_id}                     (close workflow / touch)
//   - DELETE /services/{service_id}                     (soft-delete cascade)
//   - PATCH  /services/{service_id}/machine/{machine_id} (partial revision update)
//
// Handlers are transport-thin: they validate input, call the workflow
// service, and translate results (including the sentinel errors) into HTTP
// responses.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpalhares/go-maintenance-backend/internal/domain"
	"github.com/rpalhares/go-maintenance-backend/internal/repo"
	"github.com/rpalhares/go-maintenance-backend/internal/services"
	"github.com/rpalhares/go-maintenance-backend/internal/utils"
)

//
// Service contract (context-aware)
//

// ServiceWorkflow defines the workflow operations consumed by the HTTP
// handlers. Implementations must be safe for concurrent use and must honor
// the provided context for cancellation and timeouts.
type ServiceWorkflow interface {
	// Create opens a service for a department and fans revisions out.
	Create(ctx context.Context, departmentID, actorID string) (*domain.ServiceDetail, error)
	// Get returns the expanded view of one service.
	Get(ctx context.Context, serviceID string) (*domain.ServiceDetail, error)
	// Patch refreshes the update stamps and optionally closes the service.
	Patch(ctx context.Context, serviceID, actorID string, closed bool) (*domain.ServiceDetail, error)
	// PatchMachineRevision partially updates one machine's revision.
	PatchMachineRevision(ctx context.Context, serviceID, machineID, actorID string, patch services.RevisionPatch) (*domain.Revision, error)
	// Remove soft-deletes a service and its revisions.
	Remove(ctx context.Context, serviceID, actorID string) error
	// List returns light service views matching the filter.
	List(ctx context.Context, f repo.ServiceFilter) ([]domain.ServiceView, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints of the service workflow. It depends on
// the abstract workflow interface to keep transport concerns separate from
// business logic.
type Handlers struct {
	svc ServiceWorkflow
}

// New constructs and returns a Handlers instance bound to the workflow.
func New(svc ServiceWorkflow) *Handlers {
	return &Handlers{svc: svc}
}

//
// DTOs
//

// CreateServiceRequest is the JSON payload for opening a service.
type CreateServiceRequest struct {
	// UserID is the acting user (created_by/updated_by stamp).
	UserID string `json:"user_id" binding:"required,uuid" example:"af275e22-a0ef-4e85-9926-c1abe1c1d192"`
	// DepartmentID is the department being serviced.
	DepartmentID string `json:"department_id" binding:"required,uuid" example:"1ed90dca-dd68-476a-bd48-63b2a5d66c2f"`
}

// PatchServiceRequest is the JSON payload for the service-level patch.
// closed=true triggers the close cascade; closed=false (or absent) only
// refreshes the update stamps — a closed service is never reopened.
type PatchServiceRequest struct {
	UserID string `json:"user_id" binding:"required,uuid" example:"af275e22-a0ef-4e85-9926-c1abe1c1d192"`
	Closed bool   `json:"closed"`
}

// PatchRevisionRequest is the JSON payload for a machine-revision patch.
// Omitted outcome fields are left unchanged.
type PatchRevisionRequest struct {
	UserID      string  `json:"user_id" binding:"required,uuid" example:"af275e22-a0ef-4e85-9926-c1abe1c1d192"`
	Maintained  *bool   `json:"maintained,omitempty"`
	Repaired    *bool   `json:"repaired,omitempty"`
	Operational *bool   `json:"operational,omitempty"`
	Comments    *string `json:"comments,omitempty" binding:"omitempty,max=255"`
}

// DeleteServiceRequest is the JSON payload for the soft delete; the actor
// is recorded as deleted_by.
type DeleteServiceRequest struct {
	UserID string `json:"user_id" binding:"required,uuid" example:"af275e22-a0ef-4e85-9926-c1abe1c1d192"`
}

// ServicesResponse wraps the listing view.
type ServicesResponse struct {
	Services []domain.ServiceView `json:"services"`
}

// ServiceResponse wraps a single expanded service.
type ServiceResponse struct {
	Service *domain.ServiceDetail `json:"service"`
}

// RevisionResponse wraps a single machine revision.
type RevisionResponse struct {
	Revision *domain.Revision `json:"revision"`
}

//
// Helpers
//

// uuidParam validates a path parameter as a UUID; on failure it writes a
// 400 and returns false.
func uuidParam(c *gin.Context, name string) (string, bool) {
	v := c.Param(name)
	if _, err := uuid.Parse(v); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, name+" must be a UUID")
		return "", false
	}
	return v, true
}

// uuidQuery validates an optional query parameter as a UUID; empty values
// pass through. On failure it writes a 400 and returns false.
func uuidQuery(c *gin.Context, name string) (string, bool) {
	v := c.Query(name)
	if v == "" {
		return "", true
	}
	if _, err := uuid.Parse(v); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, name+" must be a UUID")
		return "", false
	}
	return v, true
}

// failWorkflow maps workflow sentinel errors onto the HTTP taxonomy:
// missing entities are 404, business-rule violations are 400, anything
// else is a generic 500.
func failWorkflow(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrServiceNotFound),
		errors.Is(err, services.ErrDepartmentNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrMachineNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, services.ErrNoMachines),
		errors.Is(err, services.ErrNoRevisions):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
}

//
// Handlers
//

// ListServices godoc
// @ID          listServices
// @Summary     List services
// @Description Returns all services matching the filter. Soft-deleted services (and services of soft-deleted departments) are excluded unless show_deleted is set. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Services
// @Produce     json
//
// @Param       sort_by        query  string  false "Sort column"            Enums(created_at) default(created_at)
// @Param       order          query  string  false "Sort order"             Enums(asc, desc)  default(asc)
// @Param       department_id  query  string  false "Filter by department"   format(uuid)
// @Param       created_by     query  string  false "Filter by creating user" format(uuid)
// @Param       closed_by      query  string  false "Filter by closing user"  format(uuid)
// @Param       show_deleted   query  bool    false "Include soft-deleted services"
// @Param       If-None-Match  header string  false "Return 304 if ETag matches"
//
// @Success     200  {object} handlers.ServicesResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /services [get]
func (h *Handlers) ListServices(c *gin.Context) {
	ctx := c.Request.Context()

	departmentID, valid := uuidQuery(c, "department_id")
	if !valid {
		return
	}
	createdBy, valid := uuidQuery(c, "created_by")
	if !valid {
		return
	}
	closedBy, valid := uuidQuery(c, "closed_by")
	if !valid {
		return
	}
	f := repo.ServiceFilter{
		SortBy:       c.DefaultQuery("sort_by", "created_at"),
		Order:        c.DefaultQuery("order", "asc"),
		DepartmentID: departmentID,
		CreatedBy:    createdBy,
		ClosedBy:     closedBy,
		ShowDeleted:  utils.BoolDefault(c.Query("show_deleted"), false),
	}

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, isConcrete := h.svc.(*services.ServiceService); isConcrete {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.ServicesStats(ctx, db)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"services:%d:%d"`, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, err := h.svc.List(ctx, f)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "internal error")
		return
	}
	ok(c, http.StatusOK, ServicesResponse{Services: items})
}

// CreateService godoc
// @ID          createService
// @Summary     Open a service for a department
// @Description Creates a service and one revision per machine currently in the department. Fails with 400 when the department has no machines.
// @Tags        Services
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateServiceRequest  true  "Create service payload"
//
// @Success     201  {object} handlers.ServiceResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request / no machines"
// @Failure     404  {object} handlers.ErrorResponse "Department or user not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /services [post]
func (h *Handlers) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user_id and department_id are required UUIDs")
		return
	}

	detail, err := h.svc.Create(c.Request.Context(), req.DepartmentID, req.UserID)
	if err != nil {
		failWorkflow(c, err)
		return
	}
	ok(c, http.StatusCreated, ServiceResponse{Service: detail})
}

// GetService godoc
// @ID          getService
// @Summary     Fetch one service
// @Description Returns the expanded service view: department with client, user stamps, and every department machine with its revisions under this service.
// @Tags        Services
// @Produce     json
//
// @Param       service_id  path  string  true  "Service ID"  format(uuid)
//
// @Success     200  {object} handlers.ServiceResponse
// @Failure     400  {object} handlers.ErrorResponse "Malformed id"
// @Failure     404  {object} handlers.ErrorResponse "Service not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /services/{service_id} [get]
func (h *Handlers) GetService(c *gin.Context) {
	serviceID, valid := uuidParam(c, "service_id")
	if !valid {
		return
	}
	detail, err := h.svc.Get(c.Request.Context(), serviceID)
	if err != nil {
		failWorkflow(c, err)
		return
	}
	ok(c, http.StatusOK, ServiceResponse{Service: detail})
}

// PatchService godoc
// @ID          patchService
// @Summary     Patch a service (close workflow)
// @Description With closed=true, stamps closed_at/closed_by and closes every revision of the service; re-closing is accepted. With closed=false only the update stamps are refreshed. There is no reopen.
// @Tags        Services
// @Accept      json
// @Produce     json
//
// @Param       service_id  path  string                        true  "Service ID"  format(uuid)
// @Param       body        body  handlers.PatchServiceRequest  true  "Patch payload"
//
// @Success     200  {object} handlers.ServiceResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Service or user not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /services/{service_id} [patch]
func (h *Handlers) PatchService(c *gin.Context) {
	serviceID, valid := uuidParam(c, "service_id")
	if !valid {
		return
	}
	var req PatchServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user_id is a required UUID")
		return
	}

	detail, err := h.svc.Patch(c.Request.Context(), serviceID, req.UserID, req.Closed)
	if err != nil {
		failWorkflow(c, err)
		return
	}
	ok(c, http.StatusOK, ServiceResponse{Service: detail})
}

// PatchMachineRevision godoc
// @ID          patchMachineRevision
// @Summary     Patch one machine's revision
// @Description Applies the provided outcome fields to the revision of (service, machine); omitted fields are unchanged. Refreshes the parent service's update stamps. Machines without a revision under the service are rejected with 400.
// @Tags        Services
// @Accept      json
// @Produce     json
//
// @Param       service_id  path  string                         true  "Service ID"  format(uuid)
// @Param       machine_id  path  string                         true  "Machine ID"  format(uuid)
// @Param       body        body  handlers.PatchRevisionRequest  true  "Revision patch payload"
//
// @Success     200  {object} handlers.RevisionResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request / machine has no revisions"
// @Failure     404  {object} handlers.ErrorResponse "Service, machine, or user not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /services/{service_id}/machine/{machine_id} [patch]
func (h *Handlers) PatchMachineRevision(c *gin.Context) {
	serviceID, valid := uuidParam(c, "service_id")
	if !valid {
		return
	}
	machineID, valid := uuidParam(c, "machine_id")
	if !valid {
		return
	}
	var req PatchRevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user_id is a required UUID; comments max 255 chars")
		return
	}

	rev, err := h.svc.PatchMachineRevision(c.Request.Context(), serviceID, machineID, req.UserID, services.RevisionPatch{
		Maintained:  req.Maintained,
		Repaired:    req.Repaired,
		Operational: req.Operational,
		Comments:    req.Comments,
	})
	if err != nil {
		failWorkflow(c, err)
		return
	}
	ok(c, http.StatusOK, RevisionResponse{Revision: rev})
}

// DeleteService godoc
// @ID          deleteService
// @Summary     Soft-delete a service
// @Description Stamps deleted_at/deleted_by on the service and deleted_at on all of its revisions. Terminal: the service disappears from reads and a repeat delete is a 404.
// @Tags        Services
// @Accept      json
// @Produce     json
//
// @Param       service_id  path  string                         true  "Service ID"  format(uuid)
// @Param       body        body  handlers.DeleteServiceRequest  true  "Delete payload"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Service or user not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /services/{service_id} [delete]
func (h *Handlers) DeleteService(c *gin.Context) {
	serviceID, valid := uuidParam(c, "service_id")
	if !valid {
		return
	}
	var req DeleteServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user_id is a required UUID")
		return
	}

	if err := h.svc.Remove(c.Request.Context(), serviceID, req.UserID); err != nil {
		failWorkflow(c, err)
		return
	}
	noContent(c)
}
