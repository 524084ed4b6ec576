package clock

import (
	"testing"
	"time"

	"github.com/sitecrew/gantt/internal/dateonly"
	"github.com/stretchr/testify/assert"
)

func TestFixed(t *testing.T) {
	d := dateonly.MustParse("2024-06-03")
	var c Clock = Fixed(d)
	assert.Equal(t, d, c.Today())
}

func TestSystem_UsesCallerCalendar(t *testing.T) {
	east := time.FixedZone("UTC+14", 14*3600)
	west := time.FixedZone("UTC-12", -12*3600)

	e := System{Location: east}.Today()
	w := System{Location: west}.Today()
	diff := e.Sub(w)
	assert.True(t, diff == 1 || diff == 2, "zones 26 hours apart differ by one or two dates, got %d", diff)
}
