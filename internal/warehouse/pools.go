package warehouse

import (
	"context"
	"strings"
	"time"

	"github.com/phantom-air/irops/internal/models"
)

// CrewPool returns every crew member of the given role with their duty
// figures. Eligibility filtering happens in the recovery core; the
// query only narrows by role to keep the projection small.
// Implements part of recovery.CandidateSource.
func (c *Client) CrewPool(ctx context.Context, role models.CrewRole) ([]models.CrewCandidate, error) {
	rows, err := c.query(ctx, `
		SELECT
			CREW_ID,
			FULL_NAME,
			CREW_TYPE,
			BASE_AIRPORT,
			COALESCE(QUALIFIED_AIRCRAFT_TYPES, '') AS QUALIFIED_AIRCRAFT,
			MONTHLY_HOURS_REMAINING,
			COALESCE(YEARS_OF_SERVICE, 0) AS YEARS_OF_SERVICE,
			AVAILABILITY_STATUS
		FROM STAGING.STG_CREW
		WHERE CREW_TYPE = ?`, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.CrewCandidate
	for rows.Next() {
		var (
			cc        models.CrewCandidate
			role      string
			qualified string
			status    string
		)
		if err := rows.Scan(&cc.ID, &cc.FullName, &role, &cc.BaseAirport, &qualified,
			&cc.HoursRemaining, &cc.YearsOfService, &status); err != nil {
			return nil, wrapScan(err)
		}
		cc.Role = models.CrewRole(role)
		cc.Availability = models.CrewAvailability(status)
		cc.QualifiedTypes = splitTypes(qualified)
		out = append(out, cc)
	}
	return out, wrapScan(rows.Err())
}

// CountAvailableCrew returns how many crew of a role are currently
// notifiable (available and above the hours floor), for batch notify.
func (c *Client) CountAvailableCrew(ctx context.Context, role models.CrewRole) (int, error) {
	var n int
	err := c.queryRow(ctx, `
		SELECT COUNT(*)
		FROM STAGING.STG_CREW
		WHERE AVAILABILITY_STATUS = 'AVAILABLE'
			AND MONTHLY_HOURS_REMAINING > 8
			AND CREW_TYPE = ?`, string(role),
	).Scan(&n)
	if err != nil {
		return 0, wrapScan(err)
	}
	return n, nil
}

// AircraftPool returns every airframe with its location and
// availability flag. Implements part of recovery.CandidateSource.
func (c *Client) AircraftPool(ctx context.Context) ([]models.AircraftCandidate, error) {
	rows, err := c.query(ctx, `
		SELECT
			AIRCRAFT_ID,
			TAIL_NUMBER,
			AIRCRAFT_TYPE_CODE,
			CURRENT_LOCATION,
			IS_OPERATIONALLY_AVAILABLE
		FROM STAGING.STG_AIRCRAFT
		ORDER BY CURRENT_LOCATION`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.AircraftCandidate
	for rows.Next() {
		var a models.AircraftCandidate
		if err := rows.Scan(&a.ID, &a.TailNumber, &a.Type, &a.CurrentLocation, &a.Operational); err != nil {
			return nil, wrapScan(err)
		}
		out = append(out, a)
	}
	return out, wrapScan(rows.Err())
}

// RebookingPool returns the pre-ranked alternate options for cancelled
// bookings today. An empty bookingID fetches the whole queue.
// Implements part of recovery.CandidateSource.
func (c *Client) RebookingPool(ctx context.Context, bookingID string) ([]models.RebookingCandidate, error) {
	q := `
		SELECT
			BOOKING_ID,
			CONFIRMATION_CODE,
			FIRST_NAME || ' ' || LAST_NAME AS PASSENGER_NAME,
			LOYALTY_TIER,
			ORIGINAL_FLIGHT_NUMBER,
			ORIGIN,
			DESTINATION,
			REBOOK_FLIGHT_NUMBER,
			REBOOK_DEPARTURE,
			AVAILABLE_SEATS,
			MINUTES_AFTER_ORIGINAL,
			OPTION_RANK
		FROM ANALYTICS.REBOOKING_OPTIONS
		WHERE ORIGINAL_STATUS = 'CANCELLED'
			AND DATE(ORIGINAL_DEPARTURE) = CURRENT_DATE()
			AND OPTION_RANK <= 3`
	args := []any{}
	if bookingID != "" {
		q += ` AND BOOKING_ID = ?`
		args = append(args, bookingID)
	}

	rows, err := c.query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.RebookingCandidate
	for rows.Next() {
		var (
			r    models.RebookingCandidate
			tier string
			dep  time.Time
		)
		if err := rows.Scan(&r.BookingID, &r.ConfirmationCode, &r.PassengerName, &tier,
			&r.OriginalFlight, &r.Origin, &r.Destination, &r.TargetFlightID, &dep,
			&r.SeatsAvailable, &r.WaitMinutes, &r.OptionRank); err != nil {
			return nil, wrapScan(err)
		}
		r.LoyaltyTier = models.LoyaltyTier(tier)
		r.TargetDeparture = dep
		out = append(out, r)
	}
	return out, wrapScan(rows.Err())
}

// splitTypes parses the comma-separated qualified-types column.
func splitTypes(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
