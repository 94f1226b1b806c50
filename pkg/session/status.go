package session

// SessionStatus is an enum for all possible lifecycle states of a tag session
type SessionStatus int

const (
	// Connecting indicates a session exists but Start has not completed yet
	Connecting SessionStatus = iota
	// Connected indicates the session is healthy and polling the tag
	Connected
	// Disconnected indicates the session lost its tag; terminal, reconnecting requires a new session
	Disconnected
)

func (s SessionStatus) String() string {
	return []string{"Connecting", "Connected", "Disconnected"}[s]
}
