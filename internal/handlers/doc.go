// Package handlers implements the HTTP API layer of the capacity planner.
//
// This package contains HTTP handlers that expose the planner's functionality
// via a RESTful API. Handlers delegate business logic to the services layer and
// focus on request validation, response formatting, and HTTP semantics.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Request validation                                           │
//	│  - Parameter parsing                                            │
//	│  - Error mapping to HTTP status codes                           │
//	│  - Model-to-API conversion                                      │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Services Layer                             │
//	│  Catalog │ Inventory │ Collector │ Planner                      │
//	└─────────────────────────────────────────────────────────────────┘
//
// # Handler Structure
//
// All handlers are methods on a single Handler struct that holds its service
// dependencies behind small interfaces, keeping the handlers testable with
// hand-rolled mocks:
//
//	type Handler struct {
//	    catalogSrv   CatalogService
//	    inventorySrv InventoryService
//	    collectorSrv CollectorService
//	    plannerSrv   PlannerService
//	}
//
// # API Endpoints
//
// Catalog Endpoints (profiles.go):
//
//	┌────────┬──────────────────┬──────────────────────────────────────┐
//	│ Method │ Endpoint         │ Description                          │
//	├────────┼──────────────────┼──────────────────────────────────────┤
//	│ GET    │ /profiles        │ List catalog profiles with filters   │
//	│ GET    │ /profiles/{name} │ Get one profile                      │
//	│ PUT    │ /profiles/{name} │ Create or replace a profile          │
//	│ DELETE │ /profiles/{name} │ Delete a profile                     │
//	└────────┴──────────────────┴──────────────────────────────────────┘
//
// List query parameters: manufacturer (repeatable), supported (bool),
// minMemoryGiB, minCores, localStorage (bool), limit, offset.
//
// Inventory Endpoints (inventory.go):
//
//	┌────────┬─────────────────────┬───────────────────────────────────┐
//	│ Method │ Endpoint            │ Description                       │
//	├────────┼─────────────────────┼───────────────────────────────────┤
//	│ GET    │ /inventory          │ Get the stored fleet summary      │
//	│ PUT    │ /inventory          │ Replace it with manual totals     │
//	│ POST   │ /inventory/rvtools  │ Replace it from an RVTools export │
//	└────────┴─────────────────────┴───────────────────────────────────┘
//
// The RVTools upload accepts either a multipart "file" field or the raw
// xlsx bytes as the request body, capped at 64MB.
//
// Collector Endpoints (collector.go, credentials.go):
//
//	┌────────┬──────────────┬──────────────────────────────────────────┐
//	│ Method │ Endpoint     │ Description                              │
//	├────────┼──────────────┼──────────────────────────────────────────┤
//	│ GET    │ /collector   │ Get collector status                     │
//	│ POST   │ /collector   │ Start fleet collection from vCenter      │
//	│ DELETE │ /collector   │ Stop ongoing collection                  │
//	│ GET    │ /credentials │ Get the stored endpoint (no password)    │
//	│ PUT    │ /credentials │ Verify and store credentials             │
//	│ DELETE │ /credentials │ Delete the stored credentials            │
//	└────────┴──────────────┴──────────────────────────────────────────┘
//
// POST /collector verifies the credentials synchronously, persists them,
// and answers 202 Accepted while collection continues in the background.
// The stored password never appears in any response.
//
// Plan Endpoints (plans.go):
//
//	┌────────┬──────────────┬──────────────────────────────────────────┐
//	│ Method │ Endpoint     │ Description                              │
//	├────────┼──────────────┼──────────────────────────────────────────┤
//	│ POST   │ /plans       │ Evaluate the fleet against profiles      │
//	│ GET    │ /plans       │ List persisted plans, newest first       │
//	│ GET    │ /plans/{id}  │ Get one plan                             │
//	│ DELETE │ /plans/{id}  │ Delete a plan                            │
//	└────────┴──────────────┴──────────────────────────────────────────┘
//
// POST /plans takes the operator tunables plus an optional profile list;
// an empty list means every supported catalog profile. Absent tunables
// resolve to the planner defaults. A candidate that fails redundancy
// validation is still part of the 201 response, ranked after the passing
// ones; only malformed input is an error.
//
// # Error Handling
//
// Handlers use a consistent error response format:
//
//	{ "error": "error message" }
//
// HTTP Status Code Mapping:
//
//	┌─────────────────────────────┬────────┬──────────────────────────────┐
//	│ Error Type                  │ Status │ When                         │
//	├─────────────────────────────┼────────┼──────────────────────────────┤
//	│ Validation error            │ 400    │ Invalid request params       │
//	│ InvalidConfigurationError   │ 400    │ Rejected settings or figures │
//	│ InvalidSpreadsheetError     │ 400    │ Unusable RVTools export      │
//	│ ResourceNotFoundError       │ 404    │ Resource doesn't exist       │
//	│ CollectionInProgressError   │ 409    │ Collection already running   │
//	│ VCenterError                │ 502    │ vCenter rejected or down     │
//	│ Internal error              │ 500    │ Unexpected service errors    │
//	└─────────────────────────────┴────────┴──────────────────────────────┘
//
// # Model Conversion
//
// Handlers convert between internal models and API types using extension
// functions defined in api/v1/extension.go:
//
//   - v1.NewProfileList / v1.NewHardwareProfile
//   - v1.NewFleetSummary
//   - v1.NewCollectorStatus
//   - v1.NewPlan / v1.NewPlanList
//
// # Framework
//
// The package uses the Gin web framework. Routes are registered in
// internal/server.
package handlers
