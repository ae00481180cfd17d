package storage

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"
)

// Key names a value owned by the local state.
type Key string

const (
	KeyFormDraft              Key = "vintedFormData"
	KeyRecentItems            Key = "recentItems"
	KeyTheme                  Key = "theme"
	KeyWatchedMarkets         Key = "watchedMarkets"
	KeyInstallPromptDismissed Key = "installPromptDismissed"
)

// State is a best-effort typed view over a KeyValueStore. Reads report
// whether a value was available instead of failing; writes report whether
// they were persisted. Storage errors and corrupt values are logged and
// otherwise treated as "absent".
type State struct {
	kv KeyValueStore

	// mu serialises read-modify-write sequences such as the watched set.
	mu sync.Mutex
}

// NewState wraps kv. A nil kv yields a state whose storage is unavailable:
// every read is absent and every write is a no-op.
func NewState(kv KeyValueStore) *State {
	return &State{kv: kv}
}

// Available reports whether a backing store is attached.
func (s *State) Available() bool {
	return s != nil && s.kv != nil
}

// Get decodes the JSON value stored under key into dst.
// Returns false if the value is absent, unreadable or corrupt.
func (s *State) Get(key Key, dst any) bool {
	if !s.Available() {
		return false
	}

	raw, err := s.kv.Get(string(key))
	if err != nil {
		log.Warn().Err(err).Str("key", string(key)).Msg("failed to read local state")
		return false
	}
	if raw == nil {
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		log.Warn().Err(err).Str("key", string(key)).Msg("ignoring corrupt local state")
		return false
	}
	return true
}

// Set encodes v as JSON and stores it under key.
// Returns false if the value could not be persisted.
func (s *State) Set(key Key, v any) bool {
	if !s.Available() {
		return false
	}

	raw, err := json.Marshal(v)
	if err != nil {
		log.Warn().Err(err).Str("key", string(key)).Msg("failed to encode local state")
		return false
	}

	if err := s.kv.Set(string(key), raw); err != nil {
		log.Warn().Err(err).Str("key", string(key)).Msg("failed to write local state")
		return false
	}
	return true
}

// Remove deletes the value stored under key.
func (s *State) Remove(key Key) bool {
	if !s.Available() {
		return false
	}
	if err := s.kv.Delete(string(key)); err != nil {
		log.Warn().Err(err).Str("key", string(key)).Msg("failed to delete local state")
		return false
	}
	return true
}

// Load is the generic form of State.Get.
func Load[T any](s *State, key Key) (T, bool) {
	var v T
	if !s.Get(key, &v) {
		var zero T
		return zero, false
	}
	return v, true
}

// FormDraft holds the raw, unvalidated entry form fields as typed by the user.
type FormDraft struct {
	ItemName   string `json:"item_name"`
	Price      string `json:"price"`
	Days       string `json:"days"`
	Interested string `json:"interested"`
	Views      string `json:"views"`
}

// FormDraft returns the saved form draft.
func (s *State) FormDraft() (FormDraft, bool) {
	return Load[FormDraft](s, KeyFormDraft)
}

// SaveFormDraft persists the form draft.
func (s *State) SaveFormDraft(d FormDraft) bool {
	return s.Set(KeyFormDraft, d)
}

// Theme is the display theme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ParseTheme maps a string to a theme. Anything unrecognised is light.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	default:
		return ThemeLight, false
	}
}

// Theme returns the saved theme, defaulting to light.
func (s *State) Theme() Theme {
	raw, ok := Load[string](s, KeyTheme)
	if !ok {
		return ThemeLight
	}
	theme, _ := ParseTheme(raw)
	return theme
}

// SetTheme persists the theme preference.
func (s *State) SetTheme(t Theme) bool {
	return s.Set(KeyTheme, string(t))
}

// InstallPromptDismissed reports whether the first-run hint was dismissed.
func (s *State) InstallPromptDismissed() bool {
	dismissed, _ := Load[bool](s, KeyInstallPromptDismissed)
	return dismissed
}

// DismissInstallPrompt records that the first-run hint was dismissed.
func (s *State) DismissInstallPrompt() bool {
	return s.Set(KeyInstallPromptDismissed, true)
}
