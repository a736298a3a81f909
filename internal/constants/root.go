package constants

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "toyplan"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/toyplan/toyplan.db"
	Version            = "v0.1.0"

	// ConnectionEnvVar overrides the keyring when the config is KeyringConfigValue
	ConnectionEnvVar   = "TOYPLAN_DB_CONNECTION"
	KeyringConfigValue = "keyring"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DisplayDateFormat is used for day headers in the schedule views
	DisplayDateFormat = "Mon Jan 02"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "toyplan-"
	BackupFileSuffix = ".db"

	// LockfileName guards the single-writer model across processes
	LockfileName = "toyplan.lock"

	// Seed data created on first open
	SeedGoalName        = "Daily"
	SeedGroupName       = "Default"
	SeedTaskName        = "First task"
	SeedTaskDescription = "A sample task."

	// Task field bounds
	MinDateStep      = 1
	MinExpectedTimes = 1
	MinImportance    = 0
	MaxImportance    = 100
)

// Session States
const (
	StateToday SessionState = iota
	StateSchedule
	StateGoals
	StateStats
	StateAddTask
	StateAddGoal
	StateAddGroup
)

// SeedTaskTags are attached to the example task created on first open.
var SeedTaskTags = []string{"first-time", "tutorial"}
