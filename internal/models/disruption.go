package models

import "time"

// DisruptionKind classifies an event requiring remediation.
type DisruptionKind string

const (
	// KindCrewGap is a flight with a null captain or first officer slot.
	KindCrewGap DisruptionKind = "CREW_GAP"
	// KindGhostFlight is a flight missing crew or aircraft entirely.
	KindGhostFlight DisruptionKind = "GHOST_FLIGHT"
	// KindCancelledBooking is a passenger stranded by a cancellation.
	KindCancelledBooking DisruptionKind = "CANCELLED_BOOKING"
)

// Disruption is an event requiring remediation. Disruptions are created
// when upstream data shows a gap and are only ever marked resolved,
// never deleted.
type Disruption struct {
	ID       string         `json:"id"`
	Kind     DisruptionKind `json:"kind"`
	FlightID string         `json:"flight_id"`

	// Context the eligibility filter needs. RequiredRole is set for
	// CREW_GAP; BookingID for CANCELLED_BOOKING.
	Origin       string   `json:"origin,omitempty"`
	AircraftType string   `json:"aircraft_type,omitempty"`
	RequiredRole CrewRole `json:"required_role,omitempty"`
	BookingID    string   `json:"booking_id,omitempty"`

	// Priority is the upstream severity score; higher is more urgent.
	Priority  float64   `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
	Resolved  bool      `json:"resolved"`
}

// Assignment records the single committed remediation for a disruption.
type Assignment struct {
	DisruptionID string    `json:"disruption_id"`
	SessionID    string    `json:"session_id"`
	CandidateID  string    `json:"candidate_id"`
	Committer    string    `json:"committer"`
	CommittedAt  time.Time `json:"committed_at"`
}
