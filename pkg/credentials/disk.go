package credentials

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/kubev2v/capacity-planner/internal/models"
	srvErrors "github.com/kubev2v/capacity-planner/pkg/errors"
)

const credentialsFileName = "credentials.json"

// DiskStore implements Store by persisting credentials to a JSON file.
type DiskStore struct {
	dataFolder string
	mu         sync.RWMutex
}

// NewDiskStore creates a new disk-based credential store. The credentials
// file lives at {dataFolder}/credentials.json.
func NewDiskStore(dataFolder string) *DiskStore {
	return &DiskStore{
		dataFolder: dataFolder,
	}
}

func (s *DiskStore) filePath() string {
	return filepath.Join(s.dataFolder, credentialsFileName)
}

// Save persists the vCenter credentials to disk.
func (s *DiskStore) Save(creds models.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dataFolder, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}

	// Owner read/write only; the file holds a plaintext password.
	return os.WriteFile(s.filePath(), data, 0600)
}

// Load retrieves the stored credentials from disk.
func (s *DiskStore) Load() (*models.Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.filePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, srvErrors.NewCredentialsNotFoundError()
		}
		return nil, err
	}

	var creds models.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}

	return &creds, nil
}

// Delete removes the stored credentials file.
func (s *DiskStore) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.filePath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Exists checks if the credentials file exists.
func (s *DiskStore) Exists() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := os.Stat(s.filePath())
	return err == nil
}
