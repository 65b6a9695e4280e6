package prefs

// Dev toggles gate parts of the app that are still in development.
// Users flip them from the dev toggle screen; they persist in the prefs store.

// Toggle names. We can only have three.
const (
	ToggleEnhancedSearch = "enhanced-search" // live grouped autocomplete instead of plain submit
	ToggleEmailInvites   = "email-invites"   // invite-by-email on the team invite pop-over
	ToggleShowNewStuff   = "show-new-stuff"  // the "new stuff" changelog notice
)

const togglePrefix = "toggle:"

// ToggleEnabled reports whether a dev toggle is switched on
func (s *Store) ToggleEnabled(name string) bool {
	return s.GetBool(togglePrefix+name, false)
}

// SetToggle switches a dev toggle on or off
func (s *Store) SetToggle(name string, enabled bool) error {
	return s.Set(togglePrefix+name, enabled)
}

// SubscribeToggle registers fn to run when a toggle changes
func (s *Store) SubscribeToggle(name string, fn func(enabled bool)) func() {
	return s.Subscribe(togglePrefix+name, func(value any) {
		b, _ := value.(bool)
		fn(b)
	})
}
