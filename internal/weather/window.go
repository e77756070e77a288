package weather

import (
	"math"
	"time"
)

// HorizonDays is how far ahead the provider forecasts. Trips ending beyond it are
// looked up a year earlier so the response carries last year's figures instead.
const HorizonDays = 15

const dateLayout = "2006-01-02"

// Window is the date range sent to the provider.
type Window struct {
	Arrival   string `json:"arrival_date"`
	Departure string `json:"departure_date"`
	Shifted   bool   `json:"shifted"`
}

// AdjustWindow returns the query window for a trip. When the departure lies more than
// HorizonDays whole days from now (rounded up, either direction) both dates move back one
// calendar year.
func AdjustWindow(now, arrival, departure time.Time) Window {
	arrival = calendarDay(arrival)
	departure = calendarDay(departure)

	days := math.Ceil(math.Abs(float64(departure.Sub(now))) / float64(24*time.Hour))
	shifted := days > HorizonDays
	if shifted {
		arrival = arrival.AddDate(-1, 0, 0)
		departure = departure.AddDate(-1, 0, 0)
	}

	return Window{
		Arrival:   arrival.Format(dateLayout),
		Departure: departure.Format(dateLayout),
		Shifted:   shifted,
	}
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
