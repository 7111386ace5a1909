package domain

import "time"

type User struct {
	ID            uint      `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	Password      string    `json:"-"`
	FirstName     string    `json:"firstName"`
	Bio           string    `json:"bio"`
	ProfilePicKey string    `json:"profilePicPath"`
	IsAdmin       bool      `json:"isAdmin"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Profile is a user enriched with derived aggregates for display.
type Profile struct {
	User

	EventsCount   int64   `json:"eventsCount"`
	AverageRating float64 `json:"averageRating"`
}
