package models

// SessionEvent notifies subscribers that an owner's session opened or
// closed. Sessions themselves are owned by the identity layer; the rest
// of the system only observes these changes.
type SessionEvent struct {
	UID    string
	Active bool
}
