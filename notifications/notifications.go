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

package notifications

// Notice is the text of a user-facing notification.
type Notice string

// List of fixed notices. Notices that include a value are created with
// fmt.Sprintf() and converted to the Notice type.
const (
	NotifyRewinding        Notice = "Rewinding."
	NotifyRewindEnd        Notice = "Reached end of rewind buffer."
	NotifySlowMotion       Notice = "Slow motion."
	NotifySlowMotionRewind Notice = "Slow motion rewind."
	NotifyMuted            Notice = "Audio muted."
	NotifyUnmuted          Notice = "Audio unmuted."
	NotifyReset            Notice = "Reset."
	NotifyPaused           Notice = "Paused."
	NotifyLoadWhileRecord  Notice = "Cannot load states while recording."
	NotifyPlaybackEnded    Notice = "Movie playback ended."
	NotifyPlaybackStarted  Notice = "Starting movie playback."

	// notices that require formatting
	NotifyInputRate  Notice = "Audio input rate: %.2f Hz"
	NotifyStateSlot  Notice = "Save state/movie slot: %d"
	NotifySaveState  Notice = "Saved state to slot #%d."
	NotifyLoadState  Notice = "Loaded state from slot #%d."
	NotifySaveFailed Notice = "Failed to save state to slot #%d."
	NotifyLoadFailed Notice = "Failed to load state from slot #%d."
	NotifyRecording  Notice = "Starting movie record to \"%s\"."
	NotifyAutoLoaded Notice = "Auto-loaded save state."
)

// Default priority and duration (in frames) of a notice.
const (
	DefaultPriority = 1
	DefaultDuration = 180
)

// Message is a notice with a priority and a duration measured in frames.
type Message struct {
	Notice   Notice
	Priority int
	Duration int
}

// Notify is implemented by types that can show notices to the user. The
// notice replaces any notices currently being shown.
type Notify interface {
	Notify(msg Message)
}
