package phenology

import (
	"strings"
	"time"
)

// Location is a geographic point in WGS84 latitude/longitude degrees.
// It is a plain value: two Locations built from the same coordinates compare
// equal and are interchangeable as map-key components.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// NewLocation validates both coordinates so that an out-of-range Location can
// never exist. Violations are reported as *ValidationError naming the field
// and the offending value; they are never clamped or corrected.
func NewLocation(lat, lon float64) (Location, error) {
	if lat < -90.0 || lat > 90.0 {
		return Location{}, &ValidationError{Field: "lat", Value: lat, Min: -90.0, Max: 90.0}
	}
	if lon < -180.0 || lon > 180.0 {
		return Location{}, &ValidationError{Field: "lon", Value: lon, Min: -180.0, Max: 180.0}
	}
	return Location{Lat: lat, Lon: lon}, nil
}

const dateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day component, serialized as
// YYYY-MM-DD. The embedded time is always midnight UTC.
type Date struct {
	time.Time
}

// NewDate builds a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DaysUntil returns the whole-day span from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.Sub(d.Time).Hours() / 24)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Metric is the derived seasonal-vegetation record for a single location and
// year. It is immutable once constructed; a repository holds at most one
// Metric per (location, year) pair and later writes replace earlier ones
// wholesale.
//
// The seasonal fields are either all absent (no season detected) or populated
// together. SeasonLength is not checked against the SOS/EOS day span here;
// the fields may be filled by independent pipeline stages.
type Metric struct {
	Year         int      `json:"year"`
	Location     Location `json:"location"`
	SOSDate      *Date    `json:"sos_date,omitempty"`
	EOSDate      *Date    `json:"eos_date,omitempty"`
	SeasonLength *int     `json:"season_length,omitempty"`
	IsForest     bool     `json:"is_forest"`
}
