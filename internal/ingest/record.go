// Package ingest implements the batch pipeline that turns raw bulk-source
// records into validated, deduplicated Mission and Rocket entities. The
// pipeline has three stages: per-record normalization (this file), rocket
// resolution (resolver.go) and the orchestrating importer (importer.go).
package ingest

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RawRecord is one row of the external bulk source. All fields arrive as
// strings; Time and Price are optional at the structural level.
type RawRecord struct {
	Company       string
	Location      string
	Date          string
	Time          string
	Rocket        string
	Mission       string
	RocketStatus  string
	Price         string
	MissionStatus string
}

// Rejection reasons attached to skipped records.
const (
	ReasonMissingRequiredField = "missing-required-field"
	ReasonInvalidDateTime      = "invalid-datetime"
)

// RejectError reports why a single record was rejected during
// normalization. Rejected records are skipped, never fatal.
type RejectError struct {
	Reason string
}

func (e *RejectError) Error() string {
	return fmt.Sprintf("record rejected: %s", e.Reason)
}

// Candidate is a normalized, typed record ready for rocket resolution.
type Candidate struct {
	Company        string
	Location       string
	LaunchDateTime time.Time // always UTC
	MissionName    string
	MissionStatus  string
	Price          *float64 // nil when the source discloses no price
	RocketName     string
	RocketActive   bool
}

// dateOnlyLayouts are the accepted forms when the Time field is absent.
// Layouts without a zone are interpreted as UTC; RFC3339 values carrying a
// zone are adjusted to UTC.
var dateOnlyLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// Normalize validates and types one raw record. It returns a *RejectError
// when the record must be skipped: a blank rocket or mission name rejects
// with ReasonMissingRequiredField, an unparsable launch instant with
// ReasonInvalidDateTime. An empty or unparsable price never rejects; the
// candidate simply carries no price.
func Normalize(rec RawRecord) (Candidate, error) {
	if strings.TrimSpace(rec.Rocket) == "" || strings.TrimSpace(rec.Mission) == "" {
		return Candidate{}, &RejectError{Reason: ReasonMissingRequiredField}
	}
	launch, ok := parseLaunchTime(rec.Date, rec.Time)
	if !ok {
		return Candidate{}, &RejectError{Reason: ReasonInvalidDateTime}
	}
	return Candidate{
		Company:        rec.Company,
		Location:       rec.Location,
		LaunchDateTime: launch,
		MissionName:    rec.Mission,
		MissionStatus:  rec.MissionStatus,
		Price:          parsePrice(rec.Price),
		RocketName:     rec.Rocket,
		RocketActive:   strings.EqualFold(strings.TrimSpace(rec.RocketStatus), "Active"),
	}, nil
}

// combinedLayout is the only accepted form for a record that carries both a
// date and a time. The trailing Z is a literal, so offsets are rejected.
const combinedLayout = "2006-01-02T15:04:05Z"

// parseLaunchTime resolves the Date/Time pair into a UTC instant. With no
// Time the date alone is parsed against dateOnlyLayouts; with a Time the
// combined value must match the exact form YYYY-MM-DDTHH:MM:SSZ.
func parseLaunchTime(date, clock string) (time.Time, bool) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)
	if date == "" {
		return time.Time{}, false
	}
	if clock == "" {
		for _, layout := range dateOnlyLayouts {
			if t, err := time.Parse(layout, date); err == nil {
				return t.UTC(), true
			}
		}
		return time.Time{}, false
	}
	// time.Parse tolerates a fractional second after the seconds field no
	// matter the layout, so the exact HH:MM:SS shape is enforced by length.
	if len(clock) != len("15:04:05") {
		return time.Time{}, false
	}
	t, err := time.Parse(combinedLayout, date+"T"+clock+"Z")
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// parsePrice strips the currency symbol and thousands separators and parses
// the remainder as a decimal. Lenient: an empty or unparsable price yields
// nil rather than a rejection.
func parsePrice(price string) *float64 {
	cleaned := strings.ReplaceAll(price, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &v
}
