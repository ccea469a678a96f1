package state

import (
	"sync"
	"testing"

	"github.com/Freeeeeet/room_booking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingDialogFillsFormInOrder(t *testing.T) {
	sm := NewManager()
	const user = int64(100)

	first := sm.StartBooking(user)
	assert.Equal(t, StateBookingDate, first.State)
	assert.Equal(t, StateBookingDate, sm.GetState(user))

	values := []string{"2025-03-10", "09:00", "10:00", "Mendeleev", "Ravi", "Quantech", "AIC", "ravi@example.org"}
	for i, v := range values {
		next, done, ok := sm.Advance(user, v)
		require.True(t, ok)
		if i == len(values)-1 {
			assert.True(t, done)
		} else {
			assert.False(t, done)
			assert.Equal(t, BookingSteps[i+1], next)
		}
	}

	assert.Equal(t, model.Candidate{
		BookingDate:    "2025-03-10",
		StartTime:      "09:00",
		EndTime:        "10:00",
		ConferenceType: "Mendeleev",
		PersonName:     "Ravi",
		CompanyName:    "Quantech",
		Affiliation:    "AIC",
		Email:          "ravi@example.org",
	}, sm.Form(user))

	sm.ClearState(user)
	assert.Equal(t, StateNone, sm.GetState(user))
	assert.Equal(t, model.Candidate{}, sm.Form(user))
}

func TestAdvanceWithoutDialog(t *testing.T) {
	sm := NewManager()
	_, _, ok := sm.Advance(1, "x")
	assert.False(t, ok)

	_, _, ok = sm.CurrentStep(1)
	assert.False(t, ok)
}

func TestStartBookingResetsForm(t *testing.T) {
	sm := NewManager()
	sm.StartBooking(1)
	sm.Advance(1, "2025-03-10")
	sm.StartBooking(1)

	assert.Empty(t, sm.Form(1).BookingDate)
	step, idx, ok := sm.CurrentStep(1)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Equal(t, model.FieldBookingDate, step.Field)
}

func TestManagerConcurrentUsers(t *testing.T) {
	sm := NewManager()
	var wg sync.WaitGroup
	for i := int64(0); i < 20; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			sm.StartBooking(id)
			sm.Advance(id, "2025-03-10")
		}(i)
	}
	wg.Wait()

	for i := int64(0); i < 20; i++ {
		assert.Equal(t, StateBookingStartTime, sm.GetState(i))
	}
}
