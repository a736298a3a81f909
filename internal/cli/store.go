package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/julianstephens/toyplan/internal/constants"
	"github.com/julianstephens/toyplan/internal/keyring"
	"github.com/julianstephens/toyplan/internal/logger"
	"github.com/julianstephens/toyplan/internal/storage"
	"github.com/julianstephens/toyplan/internal/storage/postgres"
	"github.com/julianstephens/toyplan/internal/storage/sqlite"
	"github.com/julianstephens/toyplan/internal/utils"
)

// OpenStore picks a storage provider for the --config value:
//   - "keyring": PostgreSQL, connection string from the environment or keyring
//   - postgres:// or postgresql:// URL: PostgreSQL, no embedded password
//   - path ending in .json: JSON file
//   - any other path: SQLite
//
// The store is not loaded.
func OpenStore(config string) (storage.Provider, error) {
	if config == constants.KeyringConfigValue {
		connStr, source, err := keyring.ResolveConnectionString()
		if err != nil {
			return nil, err
		}
		logger.Debug("Using PostgreSQL connection", "source", source, "conn", keyring.MaskPassword(connStr))
		// The keyring is allowed to hold a password.
		return postgres.New(connStr), nil
	}

	if postgres.IsConnString(config) {
		if err := postgres.ValidateConnString(config); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("%w: store it with 'toyplan keyring set' and pass --config keyring, or use %s or .pgpass",
					err, constants.ConnectionEnvVar)
			}
			return nil, err
		}
		return postgres.New(config), nil
	}

	path, err := utils.ExpandPath(config)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

// ConfigDir returns the directory a store keeps its lockfile and logs in:
// next to the file for file stores, the default config directory otherwise.
func ConfigDir(store storage.Provider) (string, error) {
	switch store.(type) {
	case *sqlite.Store, *storage.JSONStore:
		return filepath.Dir(store.GetConfigPath()), nil
	}
	return DefaultConfigDir()
}

// DefaultConfigDir is the directory of the default SQLite path.
func DefaultConfigDir() (string, error) {
	path, err := utils.ExpandPath(constants.DefaultConfigPath)
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}
