package warehouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/phantom-air/irops/internal/models"
)

// CrewGapFlights returns today's flights missing a captain or first
// officer, earliest departure first.
func (c *Client) CrewGapFlights(ctx context.Context) ([]models.Flight, error) {
	rows, err := c.query(ctx, `
		SELECT
			f.FLIGHT_ID,
			f.FLIGHT_NUMBER,
			f.ORIGIN,
			f.DESTINATION,
			f.SCHEDULED_DEPARTURE_UTC,
			f.STATUS,
			f.CAPTAIN_ID IS NULL AS CAPTAIN_NEEDED,
			f.FIRST_OFFICER_ID IS NULL AS FO_NEEDED,
			COALESCE(f.DEPARTURE_DELAY_MINUTES, 0) AS DELAY_MINUTES,
			COALESCE(f.PASSENGERS_BOOKED, 0) AS PAX_BOOKED
		FROM STAGING.STG_FLIGHTS f
		WHERE f.FLIGHT_DATE = CURRENT_DATE()
			AND (f.CAPTAIN_ID IS NULL OR f.FIRST_OFFICER_ID IS NULL)
			AND f.STATUS != 'CANCELLED'
		ORDER BY f.SCHEDULED_DEPARTURE_UTC
		LIMIT 20`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Flight
	for rows.Next() {
		var (
			f      models.Flight
			status string
			dep    time.Time
		)
		if err := rows.Scan(&f.ID, &f.Number, &f.Origin, &f.Destination, &dep, &status,
			&f.CaptainNeeded, &f.FirstOfficerNeeded, &f.DelayMinutes, &f.PassengersBooked); err != nil {
			return nil, wrapScan(err)
		}
		f.ScheduledDep = dep
		f.Status = models.FlightStatus(status)
		out = append(out, f)
	}
	return out, wrapScan(rows.Err())
}

// FlightContext loads the origin and aircraft type a disruption needs
// for eligibility and scoring.
func (c *Client) FlightContext(ctx context.Context, flightID string) (origin, aircraftType string, err error) {
	err = c.queryRow(ctx, `
		SELECT ORIGIN, AIRCRAFT_TYPE_CODE
		FROM STAGING.STG_FLIGHTS
		WHERE FLIGHT_ID = ?`, flightID,
	).Scan(&origin, &aircraftType)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", fmt.Errorf("flight %s not found", flightID)
	}
	if err != nil {
		return "", "", wrapScan(err)
	}
	return origin, aircraftType, nil
}

// GhostFlights returns today's ghost flights ordered by recovery
// priority score, highest first.
func (c *Client) GhostFlights(ctx context.Context) ([]models.GhostFlight, error) {
	rows, err := c.query(ctx, `
		SELECT
			FLIGHT_ID,
			FLIGHT_NUMBER,
			ORIGIN,
			DESTINATION,
			SCHEDULED_DEPARTURE_UTC,
			FLIGHT_STATUS,
			GHOST_FLIGHT_REASON,
			RECOVERY_PRIORITY_SCORE,
			COALESCE(PASSENGERS_BOOKED, 0) AS PAX_BOOKED,
			COALESCE(TAIL_NUMBER, '') AS TAIL_NUMBER,
			COALESCE(CAPTAIN_NAME, '') AS CAPTAIN_NAME,
			COALESCE(FIRST_OFFICER_NAME, '') AS FO_NAME
		FROM ANALYTICS.MART_GOLDEN_RECORD
		WHERE IS_GHOST_FLIGHT = TRUE
			AND FLIGHT_DATE = CURRENT_DATE()
		ORDER BY RECOVERY_PRIORITY_SCORE DESC
		LIMIT 50`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.GhostFlight
	for rows.Next() {
		var (
			g      models.GhostFlight
			status string
			dep    time.Time
		)
		if err := rows.Scan(&g.ID, &g.Number, &g.Origin, &g.Destination, &dep, &status,
			&g.Reason, &g.PriorityScore, &g.PassengersBooked, &g.TailNumber, &g.CaptainName, &g.FOName); err != nil {
			return nil, wrapScan(err)
		}
		g.ScheduledDep = dep
		g.Status = models.FlightStatus(status)
		out = append(out, g)
	}
	return out, wrapScan(rows.Err())
}

// AssignCrew fills a crew slot on a flight.
func (c *Client) AssignCrew(ctx context.Context, flightID string, role models.CrewRole, crewID string) error {
	column := "FIRST_OFFICER_ID"
	if role == models.RoleCaptain {
		column = "CAPTAIN_ID"
	}
	return c.exec(ctx,
		fmt.Sprintf(`UPDATE RAW.FLIGHTS SET %s = ? WHERE FLIGHT_ID = ?`, column),
		crewID, flightID)
}

// RepositionAircraft moves an airframe to the given airport, resolving
// an aircraft-side ghost flight.
func (c *Client) RepositionAircraft(ctx context.Context, aircraftID, airport string) error {
	return c.exec(ctx,
		`UPDATE RAW.AIRCRAFT SET CURRENT_LOCATION = ? WHERE AIRCRAFT_ID = ?`,
		airport, aircraftID)
}

// CancelFlight marks a flight cancelled; rebooking picks it up from
// there.
func (c *Client) CancelFlight(ctx context.Context, flightID string) error {
	return c.exec(ctx,
		`UPDATE RAW.FLIGHTS SET STATUS = 'CANCELLED' WHERE FLIGHT_ID = ?`,
		flightID)
}

// DelayFlight adds delay minutes and flags the flight delayed.
func (c *Client) DelayFlight(ctx context.Context, flightID string, minutes int) error {
	return c.exec(ctx, `
		UPDATE RAW.FLIGHTS
		SET DEPARTURE_DELAY_MINUTES = COALESCE(DEPARTURE_DELAY_MINUTES, 0) + ?,
			STATUS = 'DELAYED'
		WHERE FLIGHT_ID = ?`,
		minutes, flightID)
}

// RecordRebooking moves a cancelled booking onto its chosen alternate.
func (c *Client) RecordRebooking(ctx context.Context, bookingID, targetFlightID string) error {
	return c.exec(ctx, `
		UPDATE RAW.BOOKINGS
		SET REBOOKED_FLIGHT_NUMBER = ?, STATUS = 'REBOOKED'
		WHERE BOOKING_ID = ?`,
		targetFlightID, bookingID)
}

// ResolveDisruption applies a committed remediation to the warehouse.
// Implements recovery.Resolver.
func (c *Client) ResolveDisruption(ctx context.Context, d models.Disruption, candidateID string) error {
	switch d.Kind {
	case models.KindCrewGap:
		return c.AssignCrew(ctx, d.FlightID, d.RequiredRole, candidateID)
	case models.KindGhostFlight:
		return c.RepositionAircraft(ctx, candidateID, d.Origin)
	case models.KindCancelledBooking:
		return c.RecordRebooking(ctx, d.BookingID, candidateID)
	default:
		return fmt.Errorf("unknown disruption kind %q", d.Kind)
	}
}
