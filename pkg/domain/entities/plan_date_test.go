package entities

import (
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPlanDate_Ordering(t *testing.T) {
	early := DateOf(time.Date(2025, 3, 1, 15, 30, 0, 0, time.UTC))
	late := DateOf(time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC))
	none := Unavailable()

	assert.True(t, early.Before(late))
	assert.False(t, late.Before(early))
	assert.True(t, late.Before(none), "concrete dates sort before the sentinel")
	assert.False(t, none.Before(early))
	assert.False(t, none.Before(none))

	dates := []PlanDate{none, late, early}
	sort.SliceStable(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	assert.Equal(t, []PlanDate{early, late, none}, dates)
}

func TestPlanDate_TruncatesToDay(t *testing.T) {
	d := DateOf(time.Date(2025, 3, 1, 15, 30, 0, 0, time.FixedZone("ICT", 7*3600)))
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), d.Date)
	assert.Equal(t, "2025-03-01", d.String())
}

func TestPlanDate_SentinelBehaviour(t *testing.T) {
	farFuture := time.Date(2200, 12, 31, 0, 0, 0, 0, time.UTC)
	none := Unavailable()

	assert.False(t, none.AddDays(40).Known)
	assert.Equal(t, farFuture, none.Or(farFuture))
	assert.Equal(t, UnavailableLabel, none.String())
	assert.True(t, none.Equal(Unavailable()))
	assert.False(t, none.Equal(DateOf(farFuture)))

	d := DateOf(time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "2025-03-12", d.AddDays(40).String())
	assert.Equal(t, d.Date, d.Or(farFuture))
}

func TestPlanDate_MarshalJSON(t *testing.T) {
	payload, err := json.Marshal(map[string]PlanDate{
		"known": DateOf(time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)),
		"none":  Unavailable(),
	})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"known":"2025-06-09","none":"Insufficient Stock/Capacity"}`, string(payload))
}
