package entities

import "time"

// UnavailableLabel is how an unavailable PlanDate is rendered on output sheets
const UnavailableLabel = "Insufficient Stock/Capacity"

// PlanDate is a calendar day produced by planning, or the unavailable marker
// when stock or capacity could not satisfy the order
type PlanDate struct {
	Date  time.Time
	Known bool
}

// DateOf returns a concrete PlanDate for day
func DateOf(day time.Time) PlanDate {
	return PlanDate{Date: Day(day), Known: true}
}

// Unavailable returns the sentinel PlanDate
func Unavailable() PlanDate {
	return PlanDate{}
}

// AddDays shifts a concrete date; the sentinel stays unavailable
func (p PlanDate) AddDays(n int) PlanDate {
	if !p.Known {
		return p
	}
	return DateOf(AddDays(p.Date, n))
}

// Before orders plan dates with the sentinel after every concrete date
func (p PlanDate) Before(other PlanDate) bool {
	switch {
	case !p.Known:
		return false
	case !other.Known:
		return true
	default:
		return p.Date.Before(other.Date)
	}
}

// Equal reports whether both dates are the same day or both unavailable
func (p PlanDate) Equal(other PlanDate) bool {
	if p.Known != other.Known {
		return false
	}
	return !p.Known || p.Date.Equal(other.Date)
}

// Or resolves the sentinel to the configured far-future date
func (p PlanDate) Or(farFuture time.Time) time.Time {
	if !p.Known {
		return farFuture
	}
	return p.Date
}

// String formats the date, or the unavailable label for the sentinel
func (p PlanDate) String() string {
	if !p.Known {
		return UnavailableLabel
	}
	return p.Date.Format(DateLayout)
}

// MarshalJSON renders the date as YYYY-MM-DD or the unavailable label
func (p PlanDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}
