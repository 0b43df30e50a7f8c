// Package services defines the business logic for the maintenance service
// workflow. This file centralizes common service-level error values so that
// they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler/controller layer: the not-found sentinels map to
// 404, the business-rule sentinels to 400.
package services

import "errors"

// Missing-entity errors (handler maps to 404).
var (
	// ErrServiceNotFound indicates that the requested service does not exist
	// or has been soft-deleted.
	ErrServiceNotFound = errors.New("service not found")

	// ErrDepartmentNotFound indicates that the referenced department does
	// not exist or has been soft-deleted.
	ErrDepartmentNotFound = errors.New("department not found")

	// ErrUserNotFound indicates that the acting user id does not resolve to
	// a live user.
	ErrUserNotFound = errors.New("user not found")

	// ErrMachineNotFound indicates that the referenced machine does not
	// exist or has been soft-deleted.
	ErrMachineNotFound = errors.New("machine not found")
)

// Business-rule errors (handler maps to 400).
var (
	// ErrNoMachines is returned when a service is opened for a department
	// that currently has no live machines, so there is nothing to fan out.
	ErrNoMachines = errors.New("department has no machines")

	// ErrNoRevisions is returned when a revision patch targets a machine
	// that has no revision under the service, i.e. the machine was not part
	// of the department when the service was created.
	ErrNoRevisions = errors.New("machine has no revisions")
)
