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

// Package database stores save states and save memory for each engine. The
// data is kept in an SQLite database. The schema is created and upgraded
// automatically when the session starts.
//
// Use of the database requires starting a "session". We do this with the
// StartSession() function, coupled with an EndSession() once we're done. For
// example (error handling removed for clarity):
//
//	db, _ := database.StartSession(dbPath)
//	defer db.EndSession()
//
// Entries are keyed by the engine's ID. For save states there is the
// additional key of the slot name. Slots are normally numbered (see the
// SlotName() function) but any name can be used. The AutoSlot is used for
// the state that is saved automatically at the end of a playback session.
package database
