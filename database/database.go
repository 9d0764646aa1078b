// This file is part of Sprocket.
//
// Sprocket is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Sprocket is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Sprocket.  If not, see <https://www.gnu.org/licenses/>.

package database

import (
	"database/sql"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sprocketfe/sprocket/curated"
	"github.com/sprocketfe/sprocket/logger"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultDatabaseFile is the name of the database file in the resource
// directory.
const DefaultDatabaseFile = "sprocket.db"

// Sentinal errors.
const (
	DatabaseError = "database: %v"
	NoSuchState   = "database: no state in slot %s"
	NoSaveMemory  = "database: no save memory for %s"
)

// Session is an open database.
type Session struct {
	db   *sql.DB
	path string
}

//go:embed migrations/*.sql
var migrations embed.FS

// StartSession opens the database at path, creating it if necessary. The
// schema is brought up to date.
func StartSession(path string) (*Session, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, curated.Errorf(DatabaseError, err)
	}

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, curated.Errorf(DatabaseError, err)
	}

	logger.Logf(logger.Allow, "database", "session started (%s)", path)

	return &Session{db: db, path: path}, nil
}

func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return curated.Errorf("sqlite driver: %v", err)
	}

	d, err := iofs.New(migrations, "migrations")
	if err != nil {
		return curated.Errorf("migration source: %v", err)
	}

	m, err := migrate.NewWithInstance("iofs", d, "sqlite3", driver)
	if err != nil {
		return curated.Errorf("migration: %v", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return curated.Errorf("migration: %v", err)
	}

	return nil
}

// EndSession closes the database.
func (db *Session) EndSession() error {
	if err := db.db.Close(); err != nil {
		return curated.Errorf(DatabaseError, err)
	}
	return nil
}

// Path returns the path of the database file.
func (db *Session) Path() string {
	return db.path
}
