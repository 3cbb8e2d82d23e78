// Package crypto stores the database encryption passphrase in the
// operating system keyring.
package crypto

import (
	"errors"
	"fmt"
	"os"

	"github.com/zalando/go-keyring"
)

const (
	ServiceName = "joblist"
	KeyName     = "db-encryption-key"

	// EnvKey overrides the keyring, for headless machines and CI.
	EnvKey = "JOBLIST_DB_KEY"
)

// Keyring provides secure key storage abstraction
type Keyring interface {
	GetKey() (string, error)
	SetKey(password string) error
	DeleteKey() error
	IsAvailable() bool
}

type systemKeyring struct{}

// NewKeyring returns the system keyring, honoring the JOBLIST_DB_KEY
// environment override.
func NewKeyring() Keyring {
	return &systemKeyring{}
}

// GetKey retrieves the encryption key, preferring the environment
// override and falling back to the OS keyring.
func (k *systemKeyring) GetKey() (string, error) {
	if key := os.Getenv(EnvKey); key != "" {
		return key, nil
	}

	key, err := keyring.Get(ServiceName, KeyName)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("encryption key not found in keyring: %w", err)
		}
		return "", fmt.Errorf("failed to retrieve key from keyring: %w", err)
	}
	if key == "" {
		return "", errors.New("encryption key is empty")
	}
	return key, nil
}

// SetKey stores the encryption key in the OS keyring.
func (k *systemKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	if err := keyring.Set(ServiceName, KeyName, password); err != nil {
		return fmt.Errorf("failed to store key in keyring: %w", err)
	}
	return nil
}

// DeleteKey removes the encryption key from the OS keyring.
func (k *systemKeyring) DeleteKey() error {
	err := keyring.Delete(ServiceName, KeyName)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("encryption key not found in keyring: %w", err)
		}
		return fmt.Errorf("failed to delete key from keyring: %w", err)
	}
	return nil
}

// IsAvailable checks whether a keyring backend is usable by writing
// and removing a throwaway entry.
func (k *systemKeyring) IsAvailable() bool {
	if os.Getenv(EnvKey) != "" {
		return true
	}

	testKey := "__joblist_availability_test__"
	if err := keyring.Set(ServiceName, testKey, "test"); err != nil {
		return false
	}
	_ = keyring.Delete(ServiceName, testKey)
	return true
}
