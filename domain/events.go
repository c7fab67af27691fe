package domain

import "time"

// AuthEventType names the provider-pushed auth-change events.
type AuthEventType string

const (
	InitialSessionEvent AuthEventType = "INITIAL_SESSION"
	SignedInEvent       AuthEventType = "SIGNED_IN"
	SignedOutEvent      AuthEventType = "SIGNED_OUT"
	TokenRefreshedEvent AuthEventType = "TOKEN_REFRESHED"
	UserUpdatedEvent    AuthEventType = "USER_UPDATED"
)

// AuthChange is a single event on the provider's push channel: the event name
// plus the session that is now current (nil when signed out).
type AuthChange struct {
	Event     AuthEventType
	Session   *Session
	Timestamp time.Time
}

// NewAuthChange creates an auth-change event stamped with the current time.
func NewAuthChange(event AuthEventType, session *Session) AuthChange {
	return AuthChange{
		Event:     event,
		Session:   session,
		Timestamp: time.Now().UTC(),
	}
}
