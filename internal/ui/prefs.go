package ui

import "fyne.io/fyne/v2"

// PrefsStore keeps save blobs in the application's Fyne preferences. An
// empty value counts as missing.
type PrefsStore struct {
	prefs fyne.Preferences
}

// NewPrefsStore wraps the given preferences.
func NewPrefsStore(p fyne.Preferences) *PrefsStore {
	return &PrefsStore{prefs: p}
}

func (s *PrefsStore) Get(key string) (string, bool, error) {
	v := s.prefs.String(key)
	return v, v != "", nil
}

func (s *PrefsStore) Set(key, value string) error {
	s.prefs.SetString(key, value)
	return nil
}
