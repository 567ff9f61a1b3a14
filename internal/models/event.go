package models

// Auth event actions published to the audit topic.
const (
	ActionUserRegistered = "user.registered"
	ActionPasswordReset  = "password.reset"
)

// AuthEvent is the Kafka payload published after account changes.
type AuthEvent struct {
	EventID   string `json:"event_id"`  // Unique event identifier
	UserID    string `json:"user_id"`   // Affected user
	Email     string `json:"email"`     // Email at the time of the event
	Action    string `json:"action"`    // One of the Action* constants
	Timestamp int64  `json:"timestamp"` // Unix seconds
}
