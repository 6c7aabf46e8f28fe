// Package errors provides custom error types for the capacity-planner.
//
// Each error type includes a constructor, Error() method, and a type-checking
// helper using errors.As for proper error unwrapping.
//
// # Error Types Overview
//
//	┌───────────────────────────┬────────┬──────────────────────────────────────┐
//	│ Error Type                │ HTTP   │ Description                          │
//	├───────────────────────────┼────────┼──────────────────────────────────────┤
//	│ InvalidConfigurationError │ 400    │ Planning input outside valid range   │
//	│ ResourceNotFoundError     │ 404    │ Profile/inventory/plan doesn't exist │
//	│ CollectionInProgressError │ 409    │ Inventory collection already running │
//	│ InvalidSpreadsheetError   │ 400    │ RVTools export could not be parsed   │
//	│ VCenterError              │ 500    │ vCenter connection/auth failure      │
//	└───────────────────────────┴────────┴──────────────────────────────────────┘
//
// InvalidConfigurationError carries the offending field and the violated
// constraint. The planning engine reports it before any computation starts
// and never silently clamps a bad value: a replica factor of 0 or an
// overcommit ratio below 1 is a planning mistake the operator has to see.
//
// Note that a failing redundancy validation is NOT an error. Utilization over
// threshold or a missed quorum is a normal, reportable planning outcome
// (ValidationResult.AllPass = false) surfaced through the API as a 200.
//
// # Type Checking Pattern
//
// All error types provide Is* helper functions that use errors.As
// for proper error chain unwrapping:
//
//	func IsResourceNotFoundError(err error) bool {
//	    var e *ResourceNotFoundError
//	    return errors.As(err, &e)
//	}
//
// Handlers map errors to HTTP status codes:
//
//	switch {
//	case errors.IsResourceNotFoundError(err):
//	    c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
//	case errors.IsInvalidConfigurationError(err):
//	    c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
//	default:
//	    c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
//	}
package errors
