package models

import "time"

// CrewRole distinguishes the two cockpit seats a gap can require.
type CrewRole string

const (
	RoleCaptain      CrewRole = "CAPTAIN"
	RoleFirstOfficer CrewRole = "FIRST_OFFICER"
)

// CrewAvailability mirrors the warehouse availability status values.
type CrewAvailability string

const (
	CrewAvailable   CrewAvailability = "AVAILABLE"
	CrewOnDuty      CrewAvailability = "ON_DUTY"
	CrewUnavailable CrewAvailability = "UNAVAILABLE"
)

// CrewCandidate is a crew member considered for a reassignment. It is a
// read-only snapshot fetched per query and may be shared across several
// ranking operations.
type CrewCandidate struct {
	ID             string           `json:"crew_id"`
	FullName       string           `json:"full_name"`
	Role           CrewRole         `json:"crew_type"`
	BaseAirport    string           `json:"base_airport"`
	QualifiedTypes []string         `json:"qualified_aircraft"`
	HoursRemaining float64          `json:"hours_remaining"`
	YearsOfService float64          `json:"years_of_service"`
	Availability   CrewAvailability `json:"status"`
}

// QualifiedFor reports whether the candidate holds a type rating for
// the given aircraft type code.
func (c CrewCandidate) QualifiedFor(aircraftType string) bool {
	for _, t := range c.QualifiedTypes {
		if t == aircraftType {
			return true
		}
	}
	return false
}

// AircraftCandidate is an airframe considered for a swap.
type AircraftCandidate struct {
	ID              string `json:"aircraft_id"`
	TailNumber      string `json:"registration"`
	Type            string `json:"aircraft_type"`
	CurrentLocation string `json:"current_location"`
	Operational     bool   `json:"is_operationally_available"`
}

// LoyaltyTier is a passenger status level governing rebooking priority.
type LoyaltyTier string

const (
	TierDiamond  LoyaltyTier = "DIAMOND"
	TierPlatinum LoyaltyTier = "PLATINUM"
	TierGold     LoyaltyTier = "GOLD"
	TierSilver   LoyaltyTier = "SILVER"
)

// PriorityRank converts a tier into its fixed ordering rank. Lower ranks
// board the rebooking queue first; unknown tiers sort last.
func (t LoyaltyTier) PriorityRank() int {
	switch t {
	case TierDiamond:
		return 1
	case TierPlatinum:
		return 2
	case TierGold:
		return 3
	case TierSilver:
		return 4
	default:
		return 5
	}
}

// RebookingCandidate is one pre-ranked alternate-flight option for a
// passenger stranded by a cancellation.
type RebookingCandidate struct {
	BookingID        string      `json:"booking_id"`
	ConfirmationCode string      `json:"confirmation_code"`
	PassengerName    string      `json:"passenger_name"`
	LoyaltyTier      LoyaltyTier `json:"loyalty_tier"`

	OriginalFlight string `json:"original_flight_number"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`

	TargetFlightID  string    `json:"rebook_flight_number"`
	TargetDeparture time.Time `json:"rebook_departure"`
	SeatsAvailable  int       `json:"available_seats"`
	WaitMinutes     int       `json:"minutes_after_original"`
	OptionRank      int       `json:"option_rank"`
}
