package auth

import (
	"os"
	"time"
)

// EnvironmentStore implements CredentialStore using environment variables
type EnvironmentStore struct{}

// NewEnvironmentStore creates a new environment-based credential store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Store is not supported for environment variables
func (e *EnvironmentStore) Store(account *Account) error {
	return ErrStoreUnavailable
}

// Retrieve gets credentials from environment variables
func (e *EnvironmentStore) Retrieve(handle string) (*Account, error) {
	authToken := os.Getenv("TWSCRAPER_AUTH_TOKEN")
	csrfToken := os.Getenv("TWSCRAPER_CT0")
	userAgent := os.Getenv("TWSCRAPER_USER_AGENT")

	if authToken == "" || csrfToken == "" {
		return nil, ErrCredentialsNotFound
	}

	// Environment variables don't carry a handle, so use "default" or the provided one
	if handle == "" {
		handle = "default"
	}

	return &Account{
		Handle:       handle,
		AuthToken:    authToken,
		CSRFToken:    csrfToken,
		UserAgent:    userAgent,
		LastModified: time.Now(),
	}, nil
}

// List returns a single account if environment variables are set
func (e *EnvironmentStore) List() ([]*Account, error) {
	account, err := e.Retrieve("")
	if err != nil {
		return []*Account{}, nil
	}
	return []*Account{account}, nil
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete(handle string) error {
	return ErrStoreUnavailable
}

// Exists checks if environment credentials exist
func (e *EnvironmentStore) Exists(handle string) bool {
	return os.Getenv("TWSCRAPER_AUTH_TOKEN") != "" && os.Getenv("TWSCRAPER_CT0") != ""
}
