package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestBookingPredicates(t *testing.T) {
	cases := []struct {
		name          string
		start         time.Time
		status        BookingStatus
		upcoming      bool
		past          bool
		canBeCanceled bool
	}{
		{"confirmed in the future", now.Add(48 * time.Hour), StatusConfirmed, true, false, true},
		{"confirmed in the past", now.Add(-48 * time.Hour), StatusConfirmed, false, true, false},
		{"confirmed starting right now", now, StatusConfirmed, true, false, false},
		{"cancelled in the future", now.Add(48 * time.Hour), StatusCancelled, false, false, false},
		{"cancelled in the past", now.Add(-48 * time.Hour), StatusCancelled, false, false, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := &Booking{StartTime: tc.start, Status: tc.status}
			assert.Equal(t, tc.upcoming, b.IsUpcoming(now), "IsUpcoming")
			assert.Equal(t, tc.past, b.IsPast(now), "IsPast")
			assert.Equal(t, tc.canBeCanceled, b.CanBeCancelled(now), "CanBeCancelled")
		})
	}
}

func TestBookingPredicates_InstantBasedAcrossZones(t *testing.T) {
	// Один и тот же инстант в другой зоне не меняет классификацию
	offset := time.FixedZone("UTC+5", 5*3600)
	b := &Booking{StartTime: now.Add(time.Hour).In(offset), Status: StatusConfirmed}

	assert.True(t, b.IsUpcoming(now))
	assert.True(t, b.CanBeCancelled(now.In(offset)))
}

func TestAvailableSlotEqual(t *testing.T) {
	start := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)
	slot := AvailableSlot{Start: start, End: start.Add(30 * time.Minute)}

	assert.True(t, slot.Equal(AvailableSlot{Start: start, End: start.Add(30 * time.Minute)}))
	// Равенство инстантное: та же точка времени в другой зоне совпадает
	offset := time.FixedZone("UTC+3", 3*3600)
	assert.True(t, slot.Equal(AvailableSlot{Start: start.In(offset), End: start.Add(30 * time.Minute).In(offset)}))
	assert.False(t, slot.Equal(AvailableSlot{Start: start.Add(30 * time.Minute), End: start.Add(time.Hour)}))
}

func TestDayAvailabilityHasSlots(t *testing.T) {
	empty := &DayAvailability{Date: "2026-03-15"}
	assert.False(t, empty.HasSlots())

	withSlots := &DayAvailability{
		Date:  "2026-03-15",
		Slots: []AvailableSlot{{Start: now, End: now.Add(30 * time.Minute)}},
	}
	assert.True(t, withSlots.HasSlots())
}
