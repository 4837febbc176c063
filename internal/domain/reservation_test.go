package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationStatus_IsActive(t *testing.T) {
	assert.True(t, StatusPending.IsActive())
	assert.True(t, StatusConfirmed.IsActive())
	assert.False(t, StatusCancelled.IsActive())
	assert.False(t, ReservationStatus("pending").IsActive(), "only canonical statuses")
}

func TestParseReservationStatus(t *testing.T) {
	tests := map[string]ReservationStatus{
		"pending":    StatusPending,
		"CONFIRMED":  StatusConfirmed,
		"Cancelled":  StatusCancelled,
		"canceled":   StatusCancelled,
		" CANCELED ": StatusCancelled,
	}

	for in, want := range tests {
		got, err := ParseReservationStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseReservationStatus("done")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestReservationStatus_TransitionTo(t *testing.T) {
	tests := []struct {
		from, to    ReservationStatus
		wantChanged bool
		wantErr     bool
	}{
		{from: StatusPending, to: StatusConfirmed, wantChanged: true},
		{from: StatusPending, to: StatusCancelled, wantChanged: true},
		{from: StatusConfirmed, to: StatusCancelled, wantChanged: true},
		{from: StatusConfirmed, to: StatusConfirmed},
		{from: StatusCancelled, to: StatusCancelled},
		{from: StatusCancelled, to: StatusConfirmed, wantErr: true},
		{from: StatusCancelled, to: StatusPending, wantErr: true},
		{from: StatusConfirmed, to: StatusPending, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			changed, err := tt.from.TransitionTo(tt.to)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantChanged, changed)
		})
	}
}

func TestReservation_Summary(t *testing.T) {
	r := &Reservation{
		FirstName: "Amina",
		LastName:  "Benali",
		Items: []ServiceItem{
			{Service: ServiceSofa, Label: "Canapé/Fauteuil 3 places Tissu"},
			{Service: ServiceMattress},
		},
	}

	assert.Equal(t, "Amina Benali", r.CustomerName())
	assert.Equal(t, "Canapé/Fauteuil 3 places Tissu, Matelas", r.ServiceSummary())
	assert.Equal(t, "pending", StatusPending.Lower())
}
