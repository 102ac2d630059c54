package config

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./bookend.db"

	// DefaultIntegritySchedule runs the progress integrity audit nightly
	DefaultIntegritySchedule = "30 3 * * *"
)
