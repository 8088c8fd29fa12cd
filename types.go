// Package motivation defines the core types used by the quote-reminder engine.
package motivation

import (
	"fmt"
	"time"
)

// Quote is a single motivational quote in the library.
// JSON tags are included for serialization, used by the storage layer and
// the HTTP API alike.
type Quote struct {
	// ID uniquely identifies the quote within the library.
	ID string `json:"id"`
	// Text is the quote body.
	Text string `json:"text"`
	// Author is the attributed author; may be empty for anonymous quotes.
	Author string `json:"author,omitempty"`
	// Category is the lowercase category slug the quote belongs to
	// (e.g. "success", "perseverance").
	Category string `json:"category,omitempty"`
	// CreatedAt records when the quote was added to the library.
	CreatedAt time.Time `json:"created_at"`
}

// ShareText renders the quote in the canonical share format.
func (q Quote) ShareText() string {
	if q.Author == "" {
		return fmt.Sprintf("%q", q.Text)
	}
	return fmt.Sprintf("%q — %s", q.Text, q.Author)
}

// Profile holds a user's account data and preference filter.
type Profile struct {
	// UserID is the unique identifier for the user.
	UserID string `json:"user_id"`
	// Name is the display name.
	Name string `json:"name,omitempty"`
	// Email is the contact address; not validated beyond being a string.
	Email string `json:"email,omitempty"`
	// AvatarPath points at the user's avatar image, if any.
	AvatarPath string `json:"avatar_path,omitempty"`
	// Categories is the set of preferred category slugs, stored lowercase.
	// An empty set means no filtering: the whole library is in play.
	Categories []string `json:"categories,omitempty"`
	// UpdatedAt records the last modification time.
	UpdatedAt time.Time `json:"updated_at"`
}

// Favorite records a quote a user marked as favorite.
type Favorite struct {
	QuoteID string    `json:"quote_id"`
	AddedAt time.Time `json:"added_at"`
}

// Reminder is one scheduled daily quote delivery for a user.
// Reminders are always tracked by ID so they can be listed, edited and
// canceled individually.
type Reminder struct {
	// ID is the tracking handle for the registered trigger.
	ID string `json:"id"`
	// UserID is the owner of the reminder.
	UserID string `json:"user_id"`
	// At is the daily wall-clock delivery time.
	At TimeOfDay `json:"at"`
	// QuoteID is the quote picked for this slot at scheduling time.
	QuoteID string `json:"quote_id"`
	// CreatedAt records when the reminder was registered.
	CreatedAt time.Time `json:"created_at"`
}

// TimeOfDay is a 24-hour wall-clock time with minute resolution.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// String formats the time as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// MarshalText implements encoding.TextMarshaler so TimeOfDay serializes as
// "HH:MM" in JSON.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TimeOfDay) UnmarshalText(data []byte) error {
	parsed, err := ParseTimeOfDay(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Before reports whether t is earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	if t.Hour != other.Hour {
		return t.Hour < other.Hour
	}
	return t.Minute < other.Minute
}

// Backup is a portable snapshot of every entry in the key-value store.
type Backup struct {
	// Version identifies the snapshot format.
	Version int `json:"version"`
	// CreatedAt records when the snapshot was taken.
	CreatedAt time.Time `json:"created_at"`
	// Entries maps each storage key to its raw serialized value.
	Entries map[string]string `json:"entries"`
}

// BackupVersion is the snapshot format produced by Manager.Export.
const BackupVersion = 1
