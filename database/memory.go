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
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sprocketfe/sprocket/curated"
)

// SaveMemory stores the engine's save memory.
func (db *Session) SaveMemory(ctx context.Context, engineID string, data []byte) error {
	_, err := db.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO save_memory(engine_id, data, updated) VALUES (?,?,?)`,
		engineID, data, time.Now().Unix(),
	)
	if err != nil {
		return curated.Errorf(DatabaseError, err)
	}
	return nil
}

// LoadMemory returns the engine's save memory. Returns the NoSaveMemory error
// if nothing has been saved for the engine.
func (db *Session) LoadMemory(ctx context.Context, engineID string) ([]byte, error) {
	row := db.db.QueryRowContext(ctx,
		`SELECT data FROM save_memory WHERE engine_id = ?`,
		engineID,
	)

	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, curated.Errorf(NoSaveMemory, engineID)
		}
		return nil, curated.Errorf(DatabaseError, err)
	}

	return data, nil
}
