package domain

type Feedback struct {
	EventID  uint   `json:"eventId"`
	UserID   uint   `json:"userId"`
	Rating   int    `json:"rating"`
	Comments string `json:"comments"`

	User User `json:"user"`
}
