package cli

import (
	"strings"

	"github.com/sitecrew/gantt/internal/clock"
	"github.com/sitecrew/gantt/internal/dateonly"
	"github.com/spf13/pflag"
)

// dateFlag is a pflag.Value holding a calendar date. It accepts YYYY-MM-DD
// or "today".
type dateFlag struct {
	d     *dateonly.Date
	clock clock.Clock
}

var _ pflag.Value = (*dateFlag)(nil)

func newDateFlag(d *dateonly.Date, c clock.Clock) *dateFlag {
	return &dateFlag{d: d, clock: c}
}

func (f *dateFlag) String() string {
	if f.d == nil || f.d.IsZero() {
		return ""
	}
	return f.d.String()
}

func (f *dateFlag) Set(s string) error {
	if strings.EqualFold(strings.TrimSpace(s), "today") {
		*f.d = f.clock.Today()
		return nil
	}
	d, err := dateonly.Parse(s)
	if err != nil {
		return err
	}
	*f.d = d
	return nil
}

func (f *dateFlag) Type() string { return "date" }

// parseDateArg parses a positional date argument the same way.
func parseDateArg(app *App, s string) (dateonly.Date, error) {
	var d dateonly.Date
	err := newDateFlag(&d, app.clockOrSystem()).Set(s)
	return d, err
}
