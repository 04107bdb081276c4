package entities

import (
	"strings"
	"time"
)

// LotStatusCode is the quality disposition of a first production lot
type LotStatusCode string

const (
	LotStatusOK      LotStatusCode = "OK"
	LotStatusExpired LotStatusCode = "EXPIRED"
)

// ParseLotStatusCode upper-cases and trims raw status text. Unknown values are
// kept as-is; only EXPIRED is actionable.
func ParseLotStatusCode(raw string) LotStatusCode {
	return LotStatusCode(strings.ToUpper(strings.TrimSpace(raw)))
}

// LotStatus is the first-lot record for a material and color
type LotStatus struct {
	Material MaterialCode  `json:"material"`
	ColorKey ColorKey      `json:"color_key"`
	Status   LotStatusCode `json:"status"`
	DueDate  time.Time     `json:"due_date,omitempty"` // zero = missing
}

// HasDueDate reports whether the record carries a due date
func (l LotStatus) HasDueDate() bool {
	return !l.DueDate.IsZero()
}
