package constants

const (
	SettingHorizonDays        = "horizon_days"
	SettingDescriptionPreview = "description_preview"
	SettingAutoBackup         = "auto_backup"

	// Default Settings Values
	DefaultHorizonDays        = 7
	DefaultDescriptionPreview = 20
	DefaultAutoBackup         = true
)
