package constants

import "time"

const (
	AppName            = "habitual"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/habitual/habits.db"
	DefaultAPIAddr     = "127.0.0.1:8080"
	DefaultTimeout     = 10 * time.Second
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// StorageKey is the single local storage key holding the serialized habit collection.
	StorageKey = "habits"

	// TrailingDays is the number of days (today included) shown as toggles on every page.
	TrailingDays = 5

	// API paths
	HabitsPath  = "/api/habits"
	HealthPath  = "/healthz"
	MetricsPath = "/metrics"

	// Environment variables
	EnvDBConnection = "HABITUAL_DB_CONNECTION"

	// Backup constants
	MaxBackups    = 14
	BackupDirName = "backups"
	BackupPrefix  = "habitual-"
)
