package storage

import (
	"errors"

	"github.com/julianstephens/toyplan/internal/models"
)

var (
	// ErrNotInitialized means the backing file or database has no schema yet.
	ErrNotInitialized = errors.New("storage not initialized, run 'toyplan init' first")
	// ErrNoSnapshot means the store is initialized but no tracker data was saved.
	ErrNoSnapshot = errors.New("no tracker data saved")
	ErrNotLoaded  = errors.New("storage not loaded")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Tracker data
	LoadSnapshot() (models.Snapshot, error)
	SaveSnapshot(models.Snapshot) error

	// Utils
	GetConfigPath() string
}
