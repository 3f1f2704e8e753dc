package shared

import "time"

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// DateRange is a calendar date interval with inclusive bounds. A nil End
// means the range is open ended (still current).
type DateRange struct {
	Start time.Time
	End   *time.Time
}

// NewDateRange normalises both bounds to midnight UTC
func NewDateRange(start time.Time, end *time.Time) DateRange {
	r := DateRange{Start: TruncateDate(start)}
	if end != nil {
		e := TruncateDate(*end)
		r.End = &e
	}
	return r
}

// TruncateDate drops the time of day
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, NewDomainErrorf("INVALID_INPUT", "Invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseOptionalDate parses an optional YYYY-MM-DD string; empty yields nil
func ParseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// IsOpenEnded reports whether the range has no end date
func (r DateRange) IsOpenEnded() bool {
	return r.End == nil
}

// Validate checks the bounds. With strict the end must be after the start,
// otherwise it may equal the start.
func (r DateRange) Validate(strict bool) error {
	if r.Start.IsZero() {
		return NewDomainError("INVALID_INPUT", "Start date is required")
	}
	if r.End == nil {
		return nil
	}
	if strict && !r.End.After(r.Start) {
		return NewDomainError("INVALID_DATE_RANGE", "End date must be after start date")
	}
	if r.End.Before(r.Start) {
		return NewDomainError("INVALID_DATE_RANGE", "End date cannot be before start date")
	}
	return nil
}

// Contains reports whether day falls within the range
func (r DateRange) Contains(day time.Time) bool {
	d := TruncateDate(day)
	if d.Before(r.Start) {
		return false
	}
	return r.End == nil || !d.After(*r.End)
}

// Overlaps reports whether the two ranges share at least one day.
// Open-ended ranges extend indefinitely.
func (r DateRange) Overlaps(other DateRange) bool {
	if r.End != nil && other.Start.After(*r.End) {
		return false
	}
	if other.End != nil && r.Start.After(*other.End) {
		return false
	}
	return true
}
