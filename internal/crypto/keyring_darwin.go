//go:build darwin

package crypto

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

type keychain struct{}

func newPlatformKeyring() Keyring {
	return &keychain{}
}

// GetKey reads the records password from the macOS Keychain
func (k *keychain) GetKey() (string, error) {
	key, err := keyring.Get(ServiceName, KeyName)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", fmt.Errorf("records password not found in keychain: %w", err)
		}
		return "", fmt.Errorf("failed to read records password from keychain: %w", err)
	}
	if key == "" {
		return "", errors.New("records password is empty")
	}
	return key, nil
}

// SetKey stores the records password in the macOS Keychain
func (k *keychain) SetKey(password string) error {
	if password == "" {
		return errors.New("password cannot be empty")
	}
	if err := keyring.Set(ServiceName, KeyName, password); err != nil {
		return fmt.Errorf("failed to store records password in keychain: %w", err)
	}
	return nil
}

func (k *keychain) DeleteKey() error {
	if err := keyring.Delete(ServiceName, KeyName); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("records password not found in keychain: %w", err)
		}
		return fmt.Errorf("failed to delete records password from keychain: %w", err)
	}
	return nil
}

// IsAvailable writes and removes a throwaway entry
func (k *keychain) IsAvailable() bool {
	check := "__agencyflow_check__"
	if err := keyring.Set(ServiceName, check, "check"); err != nil {
		return false
	}
	_ = keyring.Delete(ServiceName, check)
	return true
}
