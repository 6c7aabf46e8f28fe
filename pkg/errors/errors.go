package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// InvalidConfigurationError indicates a planning input failed validation.
// The engine never clamps out-of-range tunables; a bad ratio or threshold is
// reported back with the offending field so the operator can correct it.
type InvalidConfigurationError struct {
	Field  string
	Reason string
}

func NewInvalidConfigurationError(field, reason string) *InvalidConfigurationError {
	return &InvalidConfigurationError{Field: field, Reason: reason}
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// IsInvalidConfigurationError checks if the error is an InvalidConfigurationError.
func IsInvalidConfigurationError(err error) bool {
	var e *InvalidConfigurationError
	return errors.As(err, &e)
}

// ResourceNotFoundError indicates a resource was not found.
type ResourceNotFoundError struct {
	Kind string
	Name string
}

func NewResourceNotFoundError(kind, name string) *ResourceNotFoundError {
	return &ResourceNotFoundError{Kind: kind, Name: name}
}

func NewProfileNotFoundError(name string) *ResourceNotFoundError {
	return NewResourceNotFoundError("hardware profile", name)
}

func NewInventoryNotFoundError() *ResourceNotFoundError {
	return NewResourceNotFoundError("inventory", "")
}

func NewPlanNotFoundError(id uuid.UUID) *ResourceNotFoundError {
	return NewResourceNotFoundError("plan", id.String())
}

func NewCredentialsNotFoundError() *ResourceNotFoundError {
	return NewResourceNotFoundError("credentials", "")
}

func (e *ResourceNotFoundError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s not found", e.Kind)
	}
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}

// CollectionInProgressError indicates an inventory collection is already running.
type CollectionInProgressError struct{}

func NewCollectionInProgressError() *CollectionInProgressError {
	return &CollectionInProgressError{}
}

func (e *CollectionInProgressError) Error() string {
	return "collection already in progress"
}

func IsCollectionInProgressError(err error) bool {
	var e *CollectionInProgressError
	return errors.As(err, &e)
}

// InvalidSpreadsheetError indicates an uploaded RVTools export could not be parsed.
type InvalidSpreadsheetError struct {
	Reason string
}

func NewInvalidSpreadsheetError(reason string) *InvalidSpreadsheetError {
	return &InvalidSpreadsheetError{Reason: reason}
}

func (e *InvalidSpreadsheetError) Error() string {
	return fmt.Sprintf("invalid RVTools export: %s", e.Reason)
}

func IsInvalidSpreadsheetError(err error) bool {
	var e *InvalidSpreadsheetError
	return errors.As(err, &e)
}

func NewVCenterError(err error) *VCenterError {
	vErr := &VCenterError{msg: "unknown error"}
	if strings.Contains(err.Error(), "Login failure") ||
		(strings.Contains(err.Error(), "incorrect") && strings.Contains(err.Error(), "password")) {
		vErr.msg = "invalid credentials"
	} else {
		vErr.msg = err.Error()
	}
	return vErr
}

// VCenterError indicates a vCenter connection or authentication failure.
type VCenterError struct {
	msg string
}

func (e *VCenterError) Error() string {
	return e.msg
}

func IsVCenterError(err error) bool {
	var e *VCenterError
	return errors.As(err, &e)
}
