//go:build !darwin

package crypto

import (
	"errors"
	"fmt"
	"os"
)

type envKeyring struct{}

func newPlatformKeyring() Keyring {
	return &envKeyring{}
}

// GetKey reads the records password from AGENCYFLOW_DB_PASSWORD
func (k *envKeyring) GetKey() (string, error) {
	key := os.Getenv(EnvKey)
	if key == "" {
		return "", fmt.Errorf("%s environment variable not set", EnvKey)
	}
	return key, nil
}

// SetKey cannot persist anything here, so it tells the user what to export
func (k *envKeyring) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	return fmt.Errorf("no keychain on this platform: add %s to your environment or .env file", EnvKey)
}

func (k *envKeyring) DeleteKey() error {
	return fmt.Errorf("no keychain on this platform: remove %s from your environment manually", EnvKey)
}

func (k *envKeyring) IsAvailable() bool {
	return os.Getenv(EnvKey) != ""
}
