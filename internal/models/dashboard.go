package models

// TimeRange selects the dashboard window. The warehouse client maps it
// to the matching date filter.
type TimeRange string

const (
	RangeNext2Hours TimeRange = "next2hours"
	RangeNext6Hours TimeRange = "next6hours"
	RangeToday      TimeRange = "today"
	RangeTomorrow   TimeRange = "tomorrow"
	RangeLast7Days  TimeRange = "last7days"
)

// OpsSummary is the top-line flight status rollup for one time range.
type OpsSummary struct {
	TotalFlights       int     `json:"total_flights"`
	DelayedFlights     int     `json:"delayed_flights"`
	CancelledFlights   int     `json:"cancelled_flights"`
	OnTimeFlights      int     `json:"on_time_flights"`
	InProgressFlights  int     `json:"in_progress_flights"`
	PassengersAffected int     `json:"total_passengers_affected"`
	AvgDelayMinutes    float64 `json:"avg_delay_minutes"`
}

// HubStat is per-origin delay pressure for the hub table.
type HubStat struct {
	Origin       string  `json:"origin"`
	FlightCount  int     `json:"flight_count"`
	DelayedCount int     `json:"delayed_count"`
	AvgDelay     float64 `json:"avg_delay"`
}

// OTPPoint is one bucket of the on-time-performance trend, hourly for a
// single day or daily across a week.
type OTPPoint struct {
	Label   string  `json:"date_label"`
	OTP     float64 `json:"otp"`
	Flights int     `json:"flights"`
}

// DisruptionSeverity grades an IROPS event.
type DisruptionSeverity string

const (
	SeverityCritical DisruptionSeverity = "CRITICAL"
	SeveritySevere   DisruptionSeverity = "SEVERE"
	SeverityModerate DisruptionSeverity = "MODERATE"
	SeverityMinor    DisruptionSeverity = "MINOR"
)

// DisruptionEvent is one tracked IROPS event with its cost exposure,
// used by the disruption cost analytics.
type DisruptionEvent struct {
	ID          string             `json:"id"`
	Type        string             `json:"type"` // WEATHER, MECHANICAL, CREW, ATC, GROUND_OPS
	Severity    DisruptionSeverity `json:"severity"`
	Hub         string             `json:"hub"`
	Description string             `json:"description"`
	Flights     int                `json:"flights"`
	Passengers  int                `json:"passengers"`
	EstCostK    float64            `json:"est_cost_k"` // thousands of dollars
	Status      string             `json:"status"`     // PENDING, IN_PROGRESS, RESOLVED
}
