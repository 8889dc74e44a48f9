package db

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

const Driver = "sqlite3"

// Store is the bot's SQLite-backed storage: guild prefix overrides and
// per-plugin key/value resources.
type Store struct {
	*sql.DB
}

// Open opens the store, creating its tables if needed
func Open(dsn string) (*Store, error) {
	conn, err := sql.Open(Driver, dsn)
	if err != nil {
		return nil, err
	}

	s := &Store{conn}
	if err := s.init(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Store) init() error {
	_, err := s.Exec(`
CREATE TABLE IF NOT EXISTS guild_prefixes (
	guild_id TEXT NOT NULL,
	prefix TEXT NOT NULL,
	PRIMARY KEY (guild_id)
);

CREATE TABLE IF NOT EXISTS plugin_resources (
	plugin TEXT NOT NULL,
	key TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (plugin, key)
);
`)
	if err != nil {
		return err
	}

	return nil
}

// GuildPrefix loads the prefix override for a guild, or "" when unset
func (s *Store) GuildPrefix(guildID string) string {
	var prefix string
	err := s.QueryRow("SELECT prefix FROM guild_prefixes WHERE guild_id = ?", guildID).Scan(&prefix)
	if err != nil {
		return ""
	}
	return prefix
}

// SetGuildPrefix stores the prefix override for a guild
func (s *Store) SetGuildPrefix(guildID, prefix string) error {
	_, err := s.Exec(`INSERT INTO guild_prefixes (guild_id, prefix) VALUES (?, ?)
ON CONFLICT (guild_id) DO UPDATE SET prefix = excluded.prefix`, guildID, prefix)
	return err
}

// Resource loads a plugin resource, or "" when unset
func (s *Store) Resource(plugin, key string) string {
	var value string
	err := s.QueryRow("SELECT value FROM plugin_resources WHERE plugin = ? AND key = ?", plugin, key).Scan(&value)
	if err != nil {
		return ""
	}
	return value
}

// SetResource stores a plugin resource
func (s *Store) SetResource(plugin, key, value string) error {
	_, err := s.Exec(`INSERT INTO plugin_resources (plugin, key, value) VALUES (?, ?, ?)
ON CONFLICT (plugin, key) DO UPDATE SET value = excluded.value`, plugin, key, value)
	return err
}
