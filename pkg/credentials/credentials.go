// Package credentials stores the vCenter credentials used by the fleet
// collector. The password never reaches the database; it lives in a
// restricted file under the data folder.
package credentials

import (
	"github.com/kubev2v/capacity-planner/internal/models"
)

// Store defines the interface for credential storage.
type Store interface {
	// Save persists the vCenter credentials.
	Save(creds models.Credentials) error

	// Load retrieves the stored credentials.
	// Returns a ResourceNotFoundError if no credentials are stored.
	Load() (*models.Credentials, error)

	// Delete removes the stored credentials.
	// Returns nil if no credentials exist.
	Delete() error

	// Exists checks if credentials are stored.
	Exists() bool
}
