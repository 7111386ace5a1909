package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validCreateEventRequest() CreateEventRequest {
	return CreateEventRequest{
		Name:      "Beach Cleanup",
		Type:      "cleanup",
		StartTime: time.Now().Add(24 * time.Hour),
		EndTime:   time.Now().Add(26 * time.Hour),
		IssueIDs:  []uint{1},
		Rules:     []string{"bring gloves"},
	}
}

func TestCreateEventRequestValidate(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req := validCreateEventRequest()

		assert.NoError(t, req.Validate())
	})

	t.Run("issue id count bounds", func(t *testing.T) {
		tests := []struct {
			name     string
			issueIDs []uint
			wantErr  bool
		}{
			{name: "zero issues", issueIDs: nil, wantErr: true},
			{name: "one issue", issueIDs: []uint{1}, wantErr: false},
			{name: "three issues", issueIDs: []uint{1, 2, 3}, wantErr: false},
			{name: "four issues", issueIDs: []uint{1, 2, 3, 4}, wantErr: true},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				req := validCreateEventRequest()
				req.IssueIDs = tt.issueIDs

				err := req.Validate()
				if tt.wantErr {
					assert.Error(t, err)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})

	t.Run("empty rules rejected", func(t *testing.T) {
		req := validCreateEventRequest()
		req.Rules = nil

		assert.Error(t, req.Validate())
	})

	t.Run("missing name rejected", func(t *testing.T) {
		req := validCreateEventRequest()
		req.Name = ""

		assert.Error(t, req.Validate())
	})
}

func TestUpdateEventRequestChanges(t *testing.T) {
	name := "New Name"
	capacity := 50
	req := UpdateEventRequest{
		EventID:  42,
		Name:     &name,
		Capacity: &capacity,
	}

	assert.NoError(t, req.Validate())
	assert.Equal(t, map[string]interface{}{
		"name":     "New Name",
		"capacity": 50,
	}, req.Changes())
}

func TestUpdateEventRequestRequiresEventID(t *testing.T) {
	req := UpdateEventRequest{}

	assert.Error(t, req.Validate())
}

func TestListEventsRequestGeoAllOrNone(t *testing.T) {
	lat, lon, radius := 48.8566, 2.3522, 5000.0

	tests := []struct {
		name    string
		req     ListEventsRequest
		wantErr bool
	}{
		{name: "no geo", req: ListEventsRequest{}, wantErr: false},
		{name: "full geo", req: ListEventsRequest{Latitude: &lat, Longitude: &lon, Radius: &radius}, wantErr: false},
		{name: "latitude only", req: ListEventsRequest{Latitude: &lat}, wantErr: true},
		{name: "missing radius", req: ListEventsRequest{Latitude: &lat, Longitude: &lon}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestListEventsRequestStatus(t *testing.T) {
	assert.NoError(t, (&ListEventsRequest{Status: "upcoming"}).Validate())
	assert.Error(t, (&ListEventsRequest{Status: "bogus"}).Validate())
}
