package models

import "github.com/julianstephens/toyplan/internal/constants"

type Settings struct {
	HorizonDays        int  `json:"horizon_days" yaml:"horizon_days"`
	DescriptionPreview int  `json:"description_preview" yaml:"description_preview"`
	AutoBackup         bool `json:"auto_backup" yaml:"auto_backup"`
}

// DefaultSettings returns the settings a fresh store starts with.
func DefaultSettings() Settings {
	return Settings{
		HorizonDays:        constants.DefaultHorizonDays,
		DescriptionPreview: constants.DefaultDescriptionPreview,
		AutoBackup:         constants.DefaultAutoBackup,
	}
}
