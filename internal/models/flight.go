// Package models defines the typed projections shared across the
// service. Rows coming back from the analytics warehouse are converted
// into these records at the client boundary; nothing downstream touches
// raw rows.
package models

import "time"

// FlightStatus is the operational status of a scheduled flight.
type FlightStatus string

const (
	StatusScheduled FlightStatus = "SCHEDULED"
	StatusOnTime    FlightStatus = "ON_TIME"
	StatusDelayed   FlightStatus = "DELAYED"
	StatusInFlight  FlightStatus = "IN_FLIGHT"
	StatusArrived   FlightStatus = "ARRIVED"
	StatusCancelled FlightStatus = "CANCELLED"
)

// Flight is a single scheduled flight as projected from the warehouse.
type Flight struct {
	ID           string       `json:"flight_id"`
	Number       string       `json:"flight_number"`
	Origin       string       `json:"origin"`
	Destination  string       `json:"destination"`
	AircraftType string       `json:"aircraft_type,omitempty"`
	ScheduledDep time.Time    `json:"scheduled_departure"`
	Status       FlightStatus `json:"status"`

	// Crew assignment nullability drives CREW_GAP disruptions.
	CaptainNeeded      bool `json:"captain_needed"`
	FirstOfficerNeeded bool `json:"fo_needed"`

	DelayMinutes     int `json:"delay_minutes"`
	PassengersBooked int `json:"pax_booked"`
}

// GhostFlight is a flight missing a required operational resource.
type GhostFlight struct {
	Flight
	Reason        string  `json:"ghost_flight_reason"`
	PriorityScore float64 `json:"recovery_priority_score"`
	TailNumber    string  `json:"aircraft_registration,omitempty"`
	CaptainName   string  `json:"captain_name,omitempty"`
	FOName        string  `json:"fo_name,omitempty"`
}
