package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnnouncementText(t *testing.T) {
	ev := ReservationCreatedEvent{
		ReservationID: 7,
		Date:          "2025-07-01",
		StartTime:     "10:00",
		EndTime:       "12:00",
		OwnerName:     "Alice",
		Purpose:       "practice",
	}
	assert.Equal(t,
		"New session: Jul 1 10:00 to 12:00\nOrganizer: Alice\nPurpose: practice",
		AnnouncementText(ev))
}

func TestAnnouncementTextFallbacks(t *testing.T) {
	ev := ReservationCreatedEvent{
		Date:      "someday",
		StartTime: "10:00",
		EndTime:   "11:00",
		OwnerName: "Bob",
	}
	// Malformed dates pass through untouched and an empty purpose reads "unset".
	assert.Equal(t,
		"New session: someday 10:00 to 11:00\nOrganizer: Bob\nPurpose: unset",
		AnnouncementText(ev))
}
