package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/toyplan/internal/models"
)

// File is the on-disk layout of the JSON store.
type File struct {
	Version  int              `json:"version"`
	Settings models.Settings  `json:"settings"`
	Data     *models.Snapshot `json:"data,omitempty"`
}

// JSONStore keeps everything in one human-readable file. It is selected
// for config paths ending in .json.
type JSONStore struct {
	path string
	file *File
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

// Init creates the file with default settings, or loads it if it exists.
func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.file = &File{
		Version:  1,
		Settings: models.DefaultSettings(),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	file := &File{}
	if err := json.Unmarshal(data, file); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	s.file = file
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes to a temp file and renames it over the store so readers and
// file watchers never see a partial write.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set storage permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.file == nil {
		return models.Settings{}, ErrNotLoaded
	}
	return s.file.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if s.file == nil {
		return ErrNotLoaded
	}
	s.file.Settings = settings
	return s.save()
}

func (s *JSONStore) LoadSnapshot() (models.Snapshot, error) {
	if s.file == nil {
		return models.Snapshot{}, ErrNotLoaded
	}
	if s.file.Data == nil {
		return models.Snapshot{}, ErrNoSnapshot
	}
	return *s.file.Data, nil
}

func (s *JSONStore) SaveSnapshot(snapshot models.Snapshot) error {
	if s.file == nil {
		return ErrNotLoaded
	}
	s.file.Data = &snapshot
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
