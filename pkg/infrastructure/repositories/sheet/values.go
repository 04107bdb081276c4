package sheet

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vsinha/etd/pkg/domain/entities"
)

// excelEpoch is day zero of spreadsheet serial dates
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

var dateLayouts = []string{
	entities.DateLayout,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"1/2/06",
	"02-Jan-2006",
	"2 January 2006",
	"Jan 2, 2006",
}

// ParseDate reads a calendar day from text or a spreadsheet serial number.
// Unparseable or empty cells yield false.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return entities.Day(t), true
		}
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil && serial > 0 && serial < 2958466 {
		days := math.Floor(serial)
		return entities.AddDays(excelEpoch, int(days)), true
	}
	return time.Time{}, false
}

// ParseQuantity reads a number, tolerating thousands separators. Unparseable
// or empty cells yield an invalid NullDecimal.
func ParseQuantity(raw string) decimal.NullDecimal {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		return decimal.NullDecimal{}
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(value)
}

// ParseForecast reports whether a forecast cell says yes
func ParseForecast(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), "yes")
}

func sortCapacityDays(days []entities.CapacityDay) {
	sort.SliceStable(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
}
