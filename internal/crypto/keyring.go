package crypto

// Keyring provides secure key storage abstraction
type Keyring interface {
	GetKey() (string, error)
	SetKey(password string) error
	DeleteKey() error
	IsAvailable() bool
}

const (
	ServiceName = "agencyflow"
	KeyName     = "records-encryption-key"

	// EnvKey holds the database password on platforms without a keychain
	EnvKey = "AGENCYFLOW_DB_PASSWORD"
)

// NewKeyring returns the best available keyring implementation
func NewKeyring() Keyring {
	return newPlatformKeyring()
}
