package domain

type Rating struct {
	RatedUserID uint   `json:"ratedUserId"`
	RatedByID   uint   `json:"ratedById"`
	Rating      int    `json:"rating"`
	Reason      string `json:"reason"`

	RatedBy User `json:"ratedBy"`
}
