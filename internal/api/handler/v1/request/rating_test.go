package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateRatingRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		rating  int
		wantErr bool
	}{
		{name: "below band", rating: 0, wantErr: true},
		{name: "lower bound", rating: 1, wantErr: false},
		{name: "upper bound", rating: 5, wantErr: false},
		{name: "above band", rating: 6, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := CreateRatingRequest{RatedUserID: 1, Rating: tt.rating}

			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateFeedbackRequestValidate(t *testing.T) {
	assert.NoError(t, (&CreateFeedbackRequest{EventID: 1, Rating: 3}).Validate())
	assert.Error(t, (&CreateFeedbackRequest{EventID: 1, Rating: 9}).Validate())
	assert.Error(t, (&CreateFeedbackRequest{Rating: 3}).Validate(), "missing event id")
}
