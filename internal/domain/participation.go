package domain

import "time"

// Participation links a user to an event they joined. DidAttend is
// tri-state: nil until the creator marks attendance.
type Participation struct {
	EventID   uint      `json:"eventId"`
	UserID    uint      `json:"userId"`
	DidAttend *bool     `json:"didAttend"`
	CreatedAt time.Time `json:"createdAt"`
}
