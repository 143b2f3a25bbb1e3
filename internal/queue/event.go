// Package queue defines message payloads exchanged over the message broker
// and the consumer that turns them into LINE notifications.
package queue

// ReservationCreatedEvent is published after a new roster reservation is
// committed.  It carries everything the notifier needs to announce the slot
// to the group chat without querying the primary database.  Notification is
// best-effort: a publish or delivery failure never fails the reservation.
type ReservationCreatedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	OwnerName     string `json:"owner_name"`
	Purpose       string `json:"purpose"`
	MaxMembers    *int   `json:"max_members"`
	CreatedAt     string `json:"created_at"`
}
