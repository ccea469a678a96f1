package cache

import (
	"testing"

	"github.com/Freeeeeet/room_booking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotEncoding(t *testing.T) {
	snap := model.NewSnapshot(model.Booking{ID: 3, Candidate: model.Candidate{
		BookingDate: "2025-03-10",
		StartTime:   "09:00:00",
		EndTime:     "10:00:00",
		PersonName:  "Ravi",
	}})

	bs, err := encodeSnapshot(snap)
	require.NoError(t, err)

	got, err := decodeSnapshot(bs)
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestDecodeSnapshotRejectsGarbage(t *testing.T) {
	_, err := decodeSnapshot([]byte("{not json"))
	assert.Error(t, err)

	_, err = decodeSnapshot([]byte(`{"rows":[]}`))
	assert.Error(t, err)
}

func TestSnapshotKey(t *testing.T) {
	assert.Equal(t, "room_booking:bookings:snapshot", snapshotKey(""))
	assert.Equal(t, "staging:bookings:snapshot", snapshotKey("staging"))
}
