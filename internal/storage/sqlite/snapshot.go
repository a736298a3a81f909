package sqlite

import (
	"github.com/julianstephens/toyplan/internal/models"
	"github.com/julianstephens/toyplan/internal/storage"
)

func (s *Store) LoadSnapshot() (models.Snapshot, error) {
	if s.db == nil {
		return models.Snapshot{}, storage.ErrNotLoaded
	}
	return storage.ReadSnapshot(s.db)
}

func (s *Store) SaveSnapshot(snapshot models.Snapshot) error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}
	return storage.WriteSnapshot(s.db, storage.DialectSQLite, snapshot)
}
