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
	"fmt"
	"io"
	"time"

	"github.com/sprocketfe/sprocket/curated"
)

// AutoSlot is the name of the slot used for automatic save states.
const AutoSlot = "auto"

// SlotName returns the name for a numbered slot.
func SlotName(slot int) string {
	return fmt.Sprintf("%d", slot)
}

// Entry describes a save state in the database.
type Entry struct {
	Slot    string
	Size    int
	Created time.Time
}

func (e Entry) String() string {
	return fmt.Sprintf("%-6s %8d bytes  %s", e.Slot, e.Size, e.Created.Format(time.DateTime))
}

// SaveState stores the state in the named slot. Any previous state in the slot
// is replaced.
func (db *Session) SaveState(ctx context.Context, engineID string, slot string, state []byte) error {
	_, err := db.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO save_states(engine_id, slot, state, created) VALUES (?,?,?,?)`,
		engineID, slot, state, time.Now().Unix(),
	)
	if err != nil {
		return curated.Errorf(DatabaseError, err)
	}
	return nil
}

// LoadState returns the state stored in the named slot. Returns the
// NoSuchState error if the slot is empty.
func (db *Session) LoadState(ctx context.Context, engineID string, slot string) ([]byte, error) {
	row := db.db.QueryRowContext(ctx,
		`SELECT state FROM save_states WHERE engine_id = ? AND slot = ?`,
		engineID, slot,
	)

	var state []byte
	if err := row.Scan(&state); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, curated.Errorf(NoSuchState, slot)
		}
		return nil, curated.Errorf(DatabaseError, err)
	}

	return state, nil
}

// DeleteState removes the state in the named slot. It is not an error for the
// slot to be empty.
func (db *Session) DeleteState(ctx context.Context, engineID string, slot string) error {
	_, err := db.db.ExecContext(ctx,
		`DELETE FROM save_states WHERE engine_id = ? AND slot = ?`,
		engineID, slot,
	)
	if err != nil {
		return curated.Errorf(DatabaseError, err)
	}
	return nil
}

// ListStates returns the save states for the engine, ordered by slot name.
func (db *Session) ListStates(ctx context.Context, engineID string) ([]Entry, error) {
	rows, err := db.db.QueryContext(ctx,
		`SELECT slot, length(state), created FROM save_states WHERE engine_id = ? ORDER BY slot`,
		engineID,
	)
	if err != nil {
		return nil, curated.Errorf(DatabaseError, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created int64
		if err := rows.Scan(&e.Slot, &e.Size, &created); err != nil {
			return nil, curated.Errorf(DatabaseError, err)
		}
		e.Created = time.Unix(created, 0)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, curated.Errorf(DatabaseError, err)
	}

	return entries, nil
}

// List the save states for the engine in slot order.
func (db *Session) List(ctx context.Context, engineID string, output io.Writer) error {
	entries, err := db.ListStates(ctx, engineID)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		if _, err := output.Write([]byte("no save states\n")); err != nil {
			return err
		}
		return nil
	}

	for _, e := range entries {
		if _, err := output.Write([]byte(e.String())); err != nil {
			return err
		}
		if _, err := output.Write([]byte("\n")); err != nil {
			return err
		}
	}

	if _, err := output.Write([]byte(fmt.Sprintf("Total: %d\n", len(entries)))); err != nil {
		return err
	}

	return nil
}
