package sqlite

import (
	"github.com/julianstephens/toyplan/internal/models"
	"github.com/julianstephens/toyplan/internal/storage"
)

func (s *Store) GetSettings() (models.Settings, error) {
	return storage.ReadSettings(s.db)
}

func (s *Store) SaveSettings(settings models.Settings) error {
	return storage.WriteSettings(s.db, storage.DialectSQLite, settings)
}
