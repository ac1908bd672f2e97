package storage

import (
	"strings"
)

// MemoryLocation selects the in-memory provider.
const MemoryLocation = ":memory:"

// IsPostgres reports whether location is a PostgreSQL connection URL.
func IsPostgres(location string) bool {
	return strings.HasPrefix(location, "postgres://") || strings.HasPrefix(location, "postgresql://")
}

// Open picks a provider for location without touching the backing store.
// Callers still run Init or Load.
func Open(location string) Provider {
	switch {
	case location == MemoryLocation:
		return NewMemoryStore()
	case IsPostgres(location):
		return NewPostgresStore(location)
	case strings.HasSuffix(strings.ToLower(location), ".json"):
		return NewJSONStore(location)
	default:
		return NewSQLiteStore(location)
	}
}
