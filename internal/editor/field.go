package editor

import (
	"errors"
	"sync"

	"hubgrip/internal/api"
)

// Field manages one text field whose committed value may lag a pending
// server update. Edits show immediately; a rejected commit reverts the
// display to the last known-good value and surfaces a field-level error.
//
// Concurrent edits are serialized by sequence number: every Change bumps
// the sequence, and only the newest commit's resolution may touch state,
// so an out-of-order resolution from a superseded edit is ignored.
type Field struct {
	mu        sync.Mutex
	committed string
	display   string
	errMsg    string
	seq       uint64
	inFlight  int
	commit    func(value string) error
}

// NewField creates a field seeded with the server-confirmed value
func NewField(committed string, commit func(value string) error) *Field {
	return &Field{
		committed: committed,
		display:   committed,
		commit:    commit,
	}
}

// Display returns the value to show, which may be ahead of the server
func (f *Field) Display() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.display
}

// Err returns the current field-level error message, if any
func (f *Field) Err() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// Pending reports whether a commit is in flight
func (f *Field) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inFlight > 0
}

// SetCommitted records a new server-confirmed value. With no local edit
// pending, the display tracks it directly.
func (f *Field) SetCommitted(value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.committed = value
	if f.inFlight == 0 {
		f.display = value
	}
}

// Change applies the value optimistically and runs the commit. Blocking;
// run it off the UI loop. The returned flag reports whether this commit's
// resolution touched the field: a commit superseded by a newer edit
// resolves without applying, so its failure reverted nothing and its
// error carries no field message.
func (f *Field) Change(value string) (bool, error) {
	f.mu.Lock()
	f.seq++
	seq := f.seq
	f.inFlight++
	f.display = value
	f.errMsg = ""
	commit := f.commit
	f.mu.Unlock()

	err := commit(value)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight--
	if seq != f.seq {
		// a newer edit superseded this one; its resolution decides
		return false, err
	}
	if err != nil {
		f.display = f.committed
		f.errMsg = userMessage(err)
		return true, err
	}
	f.committed = value
	f.errMsg = ""
	return true, nil
}

// userMessage converts a commit error into a displayable message
func userMessage(err error) string {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		return statusErr.Message
	}
	return "Something went wrong; your change was not saved"
}
