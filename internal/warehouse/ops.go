package warehouse

import (
	"context"

	"github.com/phantom-air/irops/internal/models"
)

// dateFilter maps a dashboard time range onto the warehouse predicate.
// The default is today.
func dateFilter(tr models.TimeRange) string {
	switch tr {
	case models.RangeNext2Hours:
		return "SCHEDULED_DEPARTURE_UTC BETWEEN CURRENT_TIMESTAMP() AND TIMESTAMPADD('hour', 2, CURRENT_TIMESTAMP())"
	case models.RangeNext6Hours:
		return "SCHEDULED_DEPARTURE_UTC BETWEEN CURRENT_TIMESTAMP() AND TIMESTAMPADD('hour', 6, CURRENT_TIMESTAMP())"
	case models.RangeTomorrow:
		return "FLIGHT_DATE = DATEADD('day', 1, CURRENT_DATE())"
	case models.RangeLast7Days:
		return "FLIGHT_DATE BETWEEN DATEADD('day', -7, CURRENT_DATE()) AND CURRENT_DATE()"
	default:
		return "FLIGHT_DATE = CURRENT_DATE()"
	}
}

// FlightSummary returns the top-line status rollup for the range. A
// departure more than 15 minutes late counts as delayed even after
// arrival.
func (c *Client) FlightSummary(ctx context.Context, tr models.TimeRange) (models.OpsSummary, error) {
	var s models.OpsSummary
	err := c.queryRow(ctx, `
		SELECT
			COUNT(*) AS TOTAL_FLIGHTS,
			COUNT(CASE WHEN STATUS = 'DELAYED' OR (STATUS = 'ARRIVED' AND DEPARTURE_DELAY_MINUTES > 15) THEN 1 END) AS DELAYED_FLIGHTS,
			COUNT(CASE WHEN STATUS = 'CANCELLED' THEN 1 END) AS CANCELLED_FLIGHTS,
			COUNT(CASE WHEN STATUS IN ('ON_TIME', 'SCHEDULED') OR (STATUS = 'ARRIVED' AND (DEPARTURE_DELAY_MINUTES IS NULL OR DEPARTURE_DELAY_MINUTES <= 15)) THEN 1 END) AS ON_TIME_FLIGHTS,
			COUNT(CASE WHEN STATUS = 'IN_FLIGHT' THEN 1 END) AS IN_PROGRESS_FLIGHTS,
			COALESCE(SUM(CASE WHEN STATUS IN ('DELAYED', 'CANCELLED') OR (STATUS = 'ARRIVED' AND DEPARTURE_DELAY_MINUTES > 15) THEN PASSENGERS_BOOKED ELSE 0 END), 0) AS TOTAL_PASSENGERS_AFFECTED,
			COALESCE(AVG(CASE WHEN DEPARTURE_DELAY_MINUTES > 0 THEN DEPARTURE_DELAY_MINUTES END), 0) AS AVG_DELAY_MINUTES
		FROM STAGING.STG_FLIGHTS
		WHERE `+dateFilter(tr),
	).Scan(&s.TotalFlights, &s.DelayedFlights, &s.CancelledFlights, &s.OnTimeFlights,
		&s.InProgressFlights, &s.PassengersAffected, &s.AvgDelayMinutes)
	if err != nil {
		return models.OpsSummary{}, wrapScan(err)
	}
	return s, nil
}

// HubStats returns the eight origins with the most delays in the range.
func (c *Client) HubStats(ctx context.Context, tr models.TimeRange) ([]models.HubStat, error) {
	rows, err := c.query(ctx, `
		SELECT
			ORIGIN,
			COUNT(*) AS FLIGHT_COUNT,
			COUNT(CASE WHEN STATUS = 'DELAYED' OR (STATUS = 'ARRIVED' AND DEPARTURE_DELAY_MINUTES > 15) THEN 1 END) AS DELAYED_COUNT,
			COALESCE(AVG(DEPARTURE_DELAY_MINUTES), 0) AS AVG_DELAY
		FROM STAGING.STG_FLIGHTS
		WHERE `+dateFilter(tr)+`
		GROUP BY ORIGIN
		ORDER BY DELAYED_COUNT DESC
		LIMIT 8`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.HubStat
	for rows.Next() {
		var h models.HubStat
		if err := rows.Scan(&h.Origin, &h.FlightCount, &h.DelayedCount, &h.AvgDelay); err != nil {
			return nil, wrapScan(err)
		}
		out = append(out, h)
	}
	return out, wrapScan(rows.Err())
}

// OTPTrend returns the on-time-performance trend: daily buckets for the
// 7-day range, hourly buckets otherwise. Cancelled flights are excluded
// from the denominator.
func (c *Client) OTPTrend(ctx context.Context, tr models.TimeRange) ([]models.OTPPoint, error) {
	bucket := "TO_CHAR(HOUR(SCHEDULED_DEPARTURE_UTC), 'FM00') || ':00'"
	group := "HOUR(SCHEDULED_DEPARTURE_UTC)"
	window := "FLIGHT_DATE = CURRENT_DATE()"
	if tr == models.RangeLast7Days {
		bucket = "TO_CHAR(FLIGHT_DATE, 'MM/DD')"
		group = "FLIGHT_DATE"
		window = "FLIGHT_DATE BETWEEN DATEADD('day', -7, CURRENT_DATE()) AND CURRENT_DATE()"
	}

	rows, err := c.query(ctx, `
		SELECT
			`+bucket+` AS DATE_LABEL,
			COALESCE(ROUND(100.0 * COUNT(CASE WHEN STATUS IN ('ON_TIME', 'SCHEDULED') OR (STATUS = 'ARRIVED' AND (DEPARTURE_DELAY_MINUTES IS NULL OR DEPARTURE_DELAY_MINUTES <= 15)) THEN 1 END) / NULLIF(COUNT(CASE WHEN STATUS NOT IN ('CANCELLED') THEN 1 END), 0), 1), 0) AS OTP,
			COUNT(*) AS FLIGHTS
		FROM STAGING.STG_FLIGHTS
		WHERE `+window+`
		GROUP BY `+group+`
		ORDER BY `+group)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.OTPPoint
	for rows.Next() {
		var p models.OTPPoint
		if err := rows.Scan(&p.Label, &p.OTP, &p.Flights); err != nil {
			return nil, wrapScan(err)
		}
		out = append(out, p)
	}
	return out, wrapScan(rows.Err())
}

// DisruptionEvents returns tracked IROPS events with cost exposure for
// the disruption analytics view.
func (c *Client) DisruptionEvents(ctx context.Context) ([]models.DisruptionEvent, error) {
	rows, err := c.query(ctx, `
		SELECT
			EVENT_ID,
			EVENT_TYPE,
			SEVERITY,
			HUB,
			DESCRIPTION,
			FLIGHTS_AFFECTED,
			PASSENGERS_AFFECTED,
			EST_COST_THOUSANDS,
			STATUS
		FROM ANALYTICS.DISRUPTION_EVENTS
		WHERE EVENT_DATE = CURRENT_DATE()
		ORDER BY EST_COST_THOUSANDS DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.DisruptionEvent
	for rows.Next() {
		var (
			e        models.DisruptionEvent
			severity string
		)
		if err := rows.Scan(&e.ID, &e.Type, &severity, &e.Hub, &e.Description,
			&e.Flights, &e.Passengers, &e.EstCostK, &e.Status); err != nil {
			return nil, wrapScan(err)
		}
		e.Severity = models.DisruptionSeverity(severity)
		out = append(out, e)
	}
	return out, wrapScan(rows.Err())
}
