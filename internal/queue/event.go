// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published when a booking is successfully
// committed. It carries enough information for the mail worker to compose
// a confirmation without querying the primary database.
type BookingCreatedEvent struct {
    EventID      int    `json:"event_id"`
    CategoryID   int    `json:"category_id"`
    CategoryName string `json:"category_name"`
    BookingName  string `json:"booking_name"`
    BookingEmail string `json:"booking_email"`
    StartTime    string `json:"start_time"`
    EndTime      string `json:"end_time"`
    DurationMin  int    `json:"duration_min"`
    Notes        string `json:"notes,omitempty"`
    CreatedAt    string `json:"created_at"`
}
