package models

// CollectorStateType represents the current state of the inventory collector.
type CollectorStateType string

const (
	// CollectorStateReady - waiting for a collection request
	CollectorStateReady CollectorStateType = "ready"
	// CollectorStateConnecting - verifying credentials with vCenter
	CollectorStateConnecting CollectorStateType = "connecting"
	// CollectorStateCollecting - fleet aggregation in progress
	CollectorStateCollecting CollectorStateType = "collecting"
	// CollectorStateCollected - collection complete
	CollectorStateCollected CollectorStateType = "collected"
	// CollectorStateError - error during connecting or collecting
	CollectorStateError CollectorStateType = "error"
)

// CollectorStatus holds the current collector state and metadata.
type CollectorStatus struct {
	State          CollectorStateType
	Error          string
	HasCredentials bool
}

// Credentials identify a vCenter endpoint for fleet collection.
type Credentials struct {
	URL      string `json:"url"`
	Username string `json:"username"`
	Password string `json:"password"`
}
