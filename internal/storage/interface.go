package storage

import "errors"

// ErrNotInitialized is returned by Load when the backing store has not been created yet.
var ErrNotInitialized = errors.New("storage not initialized, run 'habitual init' first")

// Provider is a string-keyed store of raw JSON values, shaped like browser local storage.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Items
	GetItem(key string) ([]byte, bool, error)
	SetItem(key string, value []byte) error
	RemoveItem(key string) error
	Keys() ([]string, error)

	// Utils
	GetConfigPath() string
}
